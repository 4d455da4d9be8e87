// Package main runs local matches between bots on a map file and archives
// the turns as Parquet for the replay viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"pwbot/engine"
	"pwbot/game"
	"pwbot/store"
	"pwbot/strategy"
)

func main() {
	mapPath := flag.String("map", filepath.Join("maps", "map1.txt"), "Path to map file")
	p1Name := flag.String("p1", "tree", "Player one bot: tree, rage, passive")
	p2Name := flag.String("p2", "rage", "Player two bot: tree, rage, passive")
	configPath := flag.String("config", "", "Path to YAML weights file for tree bots")
	maxTurns := flag.Int("max-turns", engine.MaxTurns, "Turn limit before scoring on ships")
	count := flag.Int("count", 1, "Number of matches to run")
	outDir := flag.String("out-dir", "", "Directory for Parquet match records (disabled when empty)")
	flag.Parse()

	cfg := strategy.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = strategy.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	initial, err := loadMap(*mapPath)
	if err != nil {
		log.Fatalf("load map: %v", err)
	}

	p1, err := makeBot(*p1Name, cfg)
	if err != nil {
		log.Fatalf("player 1: %v", err)
	}
	p2, err := makeBot(*p2Name, cfg)
	if err != nil {
		log.Fatalf("player 2: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	wins := map[game.Owner]int{}
	for i := 0; i < *count; i++ {
		matchID := fmt.Sprintf("%s_vs_%s_%d", p1.Name(), p2.Name(), time.Now().UnixNano())

		var rows []store.TurnRow
		hook := func(turn int, s *game.State) {
			if *outDir != "" {
				rows = append(rows, store.SnapshotRow(matchID, s, nil, "local"))
			}
			if turn%20 == 0 {
				log.Printf("[%s] turn %3d | %d planets mine | %d fleets in flight",
					matchID, turn, len(s.MyPlanets()), len(s.Fleets))
			}
		}

		res, err := engine.Run(ctx, initial, p1, p2, *maxTurns, hook)
		if err != nil {
			log.Fatalf("match %s: %v", matchID, err)
		}
		wins[res.Winner]++
		log.Printf("Match complete: %d turns, winner: %s", res.Turns, winnerName(res.Winner, p1, p2))

		if *outDir != "" {
			path := filepath.Join(*outDir, matchID+".parquet")
			if err := store.WriteMatchParquet(path, rows); err != nil {
				log.Fatalf("archive match: %v", err)
			}
			log.Printf("Archived %d turns to %s", len(rows), path)
		}
	}

	fmt.Println()
	fmt.Printf("  %s: %d wins\n", p1.Name(), wins[game.OwnerMe])
	fmt.Printf("  %s: %d wins\n", p2.Name(), wins[game.OwnerEnemy])
	fmt.Printf("  draws: %d\n", wins[game.OwnerNeutral])
}

// loadMap parses a map file into the turn-zero state.
func loadMap(path string) (*game.State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := game.ParseState(0, string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func makeBot(name string, cfg strategy.Config) (engine.Bot, error) {
	switch strings.ToLower(name) {
	case "tree":
		return &engine.TreeBot{Label: "tree", Root: strategy.BuildTree(cfg)}, nil
	case "rage":
		return engine.RageBot{}, nil
	case "passive":
		return engine.PassiveBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot %q", name)
	}
}

func winnerName(w game.Owner, p1, p2 engine.Bot) string {
	switch w {
	case game.OwnerMe:
		return p1.Name()
	case game.OwnerEnemy:
		return p2.Name()
	default:
		return "draw"
	}
}
