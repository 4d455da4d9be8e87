package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// WrittenLog tracks which match IDs have been successfully archived.
// It is backed by an append-only file with one match ID per line.
//
// On startup the file is read into memory for fast dedupe; each successful
// archive appends the ID and fsyncs. Partial trailing lines from a crash are
// simply ignored on the next load. This is a dedupe list, not a WAL.
type WrittenLog struct {
	mu      sync.RWMutex
	path    string
	file    *os.File
	written map[string]struct{}
}

func OpenWrittenLog(path string) (*WrittenLog, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is required")
	}

	written := make(map[string]struct{})

	// Best-effort load of existing IDs.
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			id := strings.TrimSpace(scanner.Text())
			if id == "" {
				continue
			}
			written[id] = struct{}{}
		}
		_ = f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &WrittenLog{
		path:    path,
		file:    file,
		written: written,
	}, nil
}

func (l *WrittenLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *WrittenLog) Has(matchID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.written[matchID]
	return ok
}

func (l *WrittenLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.written)
}

func (l *WrittenLog) Add(matchID string) error {
	if matchID == "" {
		return fmt.Errorf("matchID is empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.written[matchID]; ok {
		return nil
	}
	if l.file == nil {
		return fmt.Errorf("log file is closed")
	}

	if _, err := l.file.WriteString(matchID + "\n"); err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}

	l.written[matchID] = struct{}{}
	return nil
}

// AddMany appends multiple match IDs and syncs once. IDs already present are
// ignored.
func (l *WrittenLog) AddMany(matchIDs []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return fmt.Errorf("log file is closed")
	}

	added := 0
	for _, id := range matchIDs {
		if id == "" {
			continue
		}
		if _, ok := l.written[id]; ok {
			continue
		}
		if _, err := l.file.WriteString(id + "\n"); err != nil {
			return fmt.Errorf("append log: %w", err)
		}
		l.written[id] = struct{}{}
		added++
	}

	if added == 0 {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}
	return nil
}
