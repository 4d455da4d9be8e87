// Package mapfetch discovers and downloads map files from a map library
// website. Map pages link to plain-text map files; the fetcher scrapes the
// index pages for those links and mirrors the files locally.
package mapfetch

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pwbot/game"
)

// Config holds fetcher configuration.
type Config struct {
	IndexURLs    []string      // Index pages to scrape for map links
	RequestDelay time.Duration // Delay between HTTP requests to be polite
	MaxMaps      int           // Maximum maps to download per index (0 = unlimited)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		IndexURLs: []string{
			"https://planetwars.dev/maps",
		},
		RequestDelay: 500 * time.Millisecond,
		MaxMaps:      100,
	}
}

// Fetcher scrapes map links and downloads map files.
type Fetcher struct {
	config Config
	client *http.Client
	nameRe *regexp.Regexp
}

// NewFetcher creates a map fetcher.
func NewFetcher(config Config) *Fetcher {
	return &Fetcher{
		config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		nameRe: regexp.MustCompile(`/maps/([a-zA-Z0-9_-]+\.txt)$`),
	}
}

// Discover scrapes every configured index page and returns the map links
// found, deduplicated, as absolute URLs.
func (f *Fetcher) Discover() ([]string, error) {
	var urls []string
	seen := make(map[string]bool)

	for _, indexURL := range f.config.IndexURLs {
		log.Printf("[Mapfetch] Scraping index: %s", indexURL)

		links, err := f.indexLinks(indexURL)
		if err != nil {
			log.Printf("[Mapfetch] Error scraping %s: %v", indexURL, err)
			continue
		}

		found := 0
		for _, link := range links {
			if seen[link] {
				continue
			}
			seen[link] = true
			urls = append(urls, link)
			found++
			if f.config.MaxMaps > 0 && found >= f.config.MaxMaps {
				break
			}
		}
		log.Printf("[Mapfetch] Found %d maps on %s", found, indexURL)

		time.Sleep(f.config.RequestDelay)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no map links found on %d index pages", len(f.config.IndexURLs))
	}
	return urls, nil
}

func (f *Fetcher) indexLinks(indexURL string) ([]string, error) {
	req, err := http.NewRequest("GET", indexURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "pwbot-mapfetch/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("parse index url: %w", err)
	}

	var links []string
	doc.Find("a[href*='/maps/']").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		if f.nameRe.FindStringSubmatch(href) == nil {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})

	return links, nil
}

// Download fetches one map file into outDir, validates that it parses, and
// returns the local path. Already-downloaded maps are skipped.
func (f *Fetcher) Download(mapURL, outDir string) (string, error) {
	matches := f.nameRe.FindStringSubmatch(mapURL)
	if matches == nil {
		return "", fmt.Errorf("not a map URL: %s", mapURL)
	}
	name := matches[1]

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(outDir, name)
	if _, err := os.Stat(outPath); err == nil {
		return outPath, nil
	}

	req, err := http.NewRequest("GET", mapURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "pwbot-mapfetch/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch map: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("status %d for %s", resp.StatusCode, mapURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read map: %w", err)
	}

	// Reject files that aren't valid maps before writing them out.
	if _, err := game.ParseState(0, string(body)); err != nil {
		return "", fmt.Errorf("map %s does not parse: %w", name, err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, body, 0o644); err != nil {
		return "", fmt.Errorf("write map: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename map: %w", err)
	}
	return outPath, nil
}

// Mirror downloads every discovered map into outDir, respecting the request
// delay between downloads. It returns the local paths of the maps fetched
// this run.
func (f *Fetcher) Mirror(outDir string) ([]string, error) {
	urls, err := f.Discover()
	if err != nil {
		return nil, err
	}

	var paths []string
	for i, u := range urls {
		path, err := f.Download(u, outDir)
		if err != nil {
			log.Printf("[Mapfetch] Skipping %s: %v", u, err)
			continue
		}
		paths = append(paths, path)

		if i < len(urls)-1 {
			time.Sleep(f.config.RequestDelay)
		}
	}
	return paths, nil
}
