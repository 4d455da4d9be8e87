// Package main mirrors map files from a map library website into a local
// directory for the match runner.
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"pwbot/mapfetch"
)

func main() {
	outDir := flag.String("out-dir", "maps", "Directory to mirror maps into")
	indexes := flag.String("indexes", "", "Comma-separated index URLs (defaults when empty)")
	maxMaps := flag.Int("max-maps", 100, "Maximum maps per index (0 = unlimited)")
	delay := flag.Duration("delay", 500*time.Millisecond, "Delay between HTTP requests")
	flag.Parse()

	cfg := mapfetch.DefaultConfig()
	cfg.MaxMaps = *maxMaps
	cfg.RequestDelay = *delay
	if *indexes != "" {
		cfg.IndexURLs = strings.Split(*indexes, ",")
	}

	paths, err := mapfetch.NewFetcher(cfg).Mirror(*outDir)
	if err != nil {
		log.Fatalf("mirror maps: %v", err)
	}

	log.Printf("Mirrored %d maps into %s", len(paths), *outDir)
	for _, p := range paths {
		log.Printf("  %s", p)
	}
}
