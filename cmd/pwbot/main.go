// Package main implements the stdin/stdout Planet Wars bot.
//
// The engine sends the current state as text lines terminated by "go"; the
// bot answers with its orders for the turn, also terminated by "go". All
// diagnostics go to stderr since stdout belongs to the protocol.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"pwbot/bt"
	"pwbot/game"
	"pwbot/store"
	"pwbot/strategy"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML weights file (defaults when empty)")
	recordDir := flag.String("record-dir", "", "Directory to archive played turns as Parquet (disabled when empty)")
	flag.Parse()

	// stdout is the wire; everything else goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetPrefix("pwbot: ")

	cfg := strategy.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = strategy.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		log.Printf("loaded weights from %s", *configPath)
	}

	tree := strategy.BuildTree(cfg)
	log.Printf("policy:\n%s", bt.String(tree))

	rows, err := play(tree, os.Stdin, os.Stdout, *recordDir != "")
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *recordDir != "" && len(rows) > 0 {
		matchID := fmt.Sprintf("stdin_%d", time.Now().UnixNano())
		for i := range rows {
			rows[i].MatchID = matchID
		}
		path, err := store.WriteMatchBatchAtomic(*recordDir, rows)
		if err != nil {
			log.Fatalf("archive match: %v", err)
		}
		log.Printf("archived %d turns to %s", len(rows), path)
	}
}

// play runs the protocol loop until EOF and returns the recorded rows.
func play(tree bt.Node, in io.Reader, outFile io.Writer, record bool) ([]store.TurnRow, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := bufio.NewWriter(outFile)

	var rows []store.TurnRow
	var lines []string
	turn := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "go" {
			lines = append(lines, line)
			continue
		}

		turn++
		s, err := game.ParseState(turn, strings.Join(lines, "\n"))
		lines = lines[:0]
		if err != nil {
			return rows, fmt.Errorf("turn %d: %w", turn, err)
		}

		sink := &bt.Orders{}
		tree.Tick(s, sink)
		orders := sink.Issued()

		if err := game.WriteOrders(out, orders); err != nil {
			return rows, fmt.Errorf("turn %d: write orders: %w", turn, err)
		}
		if err := out.Flush(); err != nil {
			return rows, fmt.Errorf("turn %d: flush: %w", turn, err)
		}

		if record {
			rows = append(rows, store.SnapshotRow("", s, orders, "stdin"))
		}
	}
	if err := scanner.Err(); err != nil {
		return rows, fmt.Errorf("read stdin: %w", err)
	}

	log.Printf("engine closed the stream after %d turns", turn)
	return rows, nil
}
