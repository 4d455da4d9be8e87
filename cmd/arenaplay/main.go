// Package main plays queued arena matches with a pool of workers. Finished
// match IDs are tracked in an append-only log so a restarted client doesn't
// replay them.
package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"pwbot/arena"
	"pwbot/engine"
	"pwbot/store"
	"pwbot/strategy"
)

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	arenaURL := flag.String("arena-url", getEnvOrDefault("PWBOT_ARENA_URL", arena.DefaultConfig().ArenaURL), "WebSocket URL template for matches")
	workers := flag.Int("workers", 2, "Number of concurrent matches")
	configPath := flag.String("config", getEnvOrDefault("PWBOT_CONFIG", ""), "Path to YAML weights file (defaults when empty)")
	matchList := flag.String("matches", "", "Comma-separated match IDs to play")
	playedLog := flag.String("played-log", getEnvOrDefault("PWBOT_PLAYED_LOG", "data/played.log"), "Append-only log of finished match IDs")
	readTimeout := flag.Duration("read-timeout", 60*time.Second, "WebSocket read timeout")
	flag.Parse()

	if *matchList == "" {
		log.Fatal("-matches is required")
	}

	cfg := strategy.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = strategy.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	played, err := store.OpenWrittenLog(*playedLog)
	if err != nil {
		log.Fatalf("open played log: %v", err)
	}
	defer played.Close()

	clientCfg := arena.DefaultConfig()
	clientCfg.ArenaURL = *arenaURL
	clientCfg.NumWorkers = *workers
	clientCfg.ReadTimeout = *readTimeout

	client := arena.NewClient(clientCfg, func() engine.Bot {
		return &engine.TreeBot{Label: "pwbot", Root: strategy.BuildTree(cfg)}
	})

	matchIDs := make(chan string)
	done := make(chan struct{})
	go client.Start(matchIDs, done)

	queued, skipped := 0, 0
	for _, id := range strings.Split(*matchList, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if played.Has(id) {
			skipped++
			continue
		}
		matchIDs <- id
		if err := played.Add(id); err != nil {
			log.Printf("record %s: %v", id, err)
		}
		queued++
	}
	close(matchIDs)
	<-done

	stats := client.GetStats()
	log.Printf("Queued %d matches (%d already played)", queued, skipped)
	log.Printf("Played %d, won %d, failed %d, %d turns total",
		stats.MatchesPlayed, stats.MatchesWon, stats.MatchesFailed, stats.TurnsTotal)
}
