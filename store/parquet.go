// Package store persists match records as Parquet and tracks which matches
// have already been archived.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"pwbot/game"
)

// TurnRow is a single (match, turn) snapshot intended for long-term storage
// and replay.
//
// It is optimized for compression: one row per turn, with planets and fleets
// as repeated groups rather than flattened per-entity rows. Orders are the
// moves player one issued on this turn, recorded as "src dst ships" triples.
type TurnRow struct {
	MatchID string `parquet:"match_id,dict"`
	Turn    int32  `parquet:"turn"`

	Planets []PlanetRow `parquet:"planets"`
	Fleets  []FleetRow  `parquet:"fleets"`

	OrderSrc   []int32 `parquet:"order_src"`
	OrderDst   []int32 `parquet:"order_dst"`
	OrderShips []int32 `parquet:"order_ships"`

	Source string `parquet:"source,dict"`
}

type PlanetRow struct {
	ID     int32   `parquet:"id"`
	Owner  int32   `parquet:"owner"`
	Ships  int32   `parquet:"ships"`
	Growth int32   `parquet:"growth"`
	X      float64 `parquet:"x"`
	Y      float64 `parquet:"y"`
}

type FleetRow struct {
	Owner          int32 `parquet:"owner"`
	Ships          int32 `parquet:"ships"`
	Src            int32 `parquet:"src"`
	Dst            int32 `parquet:"dst"`
	TotalTurns     int32 `parquet:"total_turns"`
	TurnsRemaining int32 `parquet:"turns_remaining"`
}

// SnapshotRow converts a live state into its archived form.
func SnapshotRow(matchID string, s *game.State, orders []game.Order, source string) TurnRow {
	row := TurnRow{
		MatchID: matchID,
		Turn:    int32(s.Turn),
		Source:  source,
	}
	for _, p := range s.Planets {
		row.Planets = append(row.Planets, PlanetRow{
			ID:     int32(p.ID),
			Owner:  int32(p.Owner),
			Ships:  int32(p.Ships),
			Growth: int32(p.Growth),
			X:      p.X,
			Y:      p.Y,
		})
	}
	for _, f := range s.Fleets {
		row.Fleets = append(row.Fleets, FleetRow{
			Owner:          int32(f.Owner),
			Ships:          int32(f.Ships),
			Src:            int32(f.Src),
			Dst:            int32(f.Dst),
			TotalTurns:     int32(f.TotalTurns),
			TurnsRemaining: int32(f.TurnsRemaining),
		})
	}
	for _, ord := range orders {
		row.OrderSrc = append(row.OrderSrc, int32(ord.Src))
		row.OrderDst = append(row.OrderDst, int32(ord.Dst))
		row.OrderShips = append(row.OrderShips, int32(ord.Ships))
	}
	return row
}

// RowState reconstructs the snapshot a row was taken from.
func RowState(row TurnRow) (*game.State, error) {
	planets := make([]game.Planet, 0, len(row.Planets))
	for _, p := range row.Planets {
		planets = append(planets, game.Planet{
			ID:     int(p.ID),
			Owner:  game.Owner(p.Owner),
			Ships:  int(p.Ships),
			Growth: int(p.Growth),
			X:      p.X,
			Y:      p.Y,
		})
	}
	fleets := make([]game.Fleet, 0, len(row.Fleets))
	for _, f := range row.Fleets {
		fleets = append(fleets, game.Fleet{
			Owner:          game.Owner(f.Owner),
			Ships:          int(f.Ships),
			Src:            int(f.Src),
			Dst:            int(f.Dst),
			TotalTurns:     int(f.TotalTurns),
			TurnsRemaining: int(f.TurnsRemaining),
		})
	}
	s, err := game.NewState(int(row.Turn), planets, fleets)
	if err != nil {
		return nil, fmt.Errorf("row turn %d: %w", row.Turn, err)
	}
	return s, nil
}

// WriteMatchParquet writes one match's turn rows to outPath. The file is
// written to a temp path and renamed so readers never observe a partial file.
func WriteMatchParquet(outPath string, rows []TurnRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "match_turn_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteMatchBatchAtomic writes rows from multiple matches into outDir under a
// timestamped name, staging through outDir/tmp. Long-running recorders use
// this so downstream consumers can watch outDir for complete files only.
func WriteMatchBatchAtomic(outDir string, rows []TurnRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "match_turn_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}

	return finalPath, nil
}

// ReadMatchParquet loads every turn row from a recorded file.
func ReadMatchParquet(path string) ([]TurnRow, error) {
	rows, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
