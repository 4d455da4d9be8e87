package game

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseState parses one turn's text dump in the Planet Wars wire format:
//
//	P <x> <y> <owner> <ships> <growth>
//	F <owner> <ships> <src> <dst> <total_turns> <turns_remaining>
//
// Planet ids are assigned in file order. Anything after '#' on a line is a
// comment. Blank lines are ignored.
func ParseState(turn int, text string) (*State, error) {
	var planets []Planet
	var fleets []Fleet

	for lineNo, raw := range strings.Split(text, "\n") {
		line := raw
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "P":
			if len(fields) != 6 {
				return nil, fmt.Errorf("line %d: planet line has %d fields, want 6", lineNo+1, len(fields))
			}
			x, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: planet x: %w", lineNo+1, err)
			}
			y, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: planet y: %w", lineNo+1, err)
			}
			nums, err := parseInts(fields[3:])
			if err != nil {
				return nil, fmt.Errorf("line %d: planet: %w", lineNo+1, err)
			}
			planets = append(planets, Planet{
				ID:     len(planets),
				X:      x,
				Y:      y,
				Owner:  Owner(nums[0]),
				Ships:  nums[1],
				Growth: nums[2],
			})

		case "F":
			if len(fields) != 7 {
				return nil, fmt.Errorf("line %d: fleet line has %d fields, want 7", lineNo+1, len(fields))
			}
			nums, err := parseInts(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: fleet: %w", lineNo+1, err)
			}
			fleets = append(fleets, Fleet{
				Owner:          Owner(nums[0]),
				Ships:          nums[1],
				Src:            nums[2],
				Dst:            nums[3],
				TotalTurns:     nums[4],
				TurnsRemaining: nums[5],
			})

		default:
			return nil, fmt.Errorf("line %d: unknown record type %q", lineNo+1, fields[0])
		}
	}

	state, err := NewState(turn, planets, fleets)
	if err != nil {
		return nil, fmt.Errorf("invalid state: %w", err)
	}
	return state, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f, err)
		}
		out[i] = n
	}
	return out, nil
}

// WriteOrders writes the issued orders followed by the end-of-turn marker.
func WriteOrders(w io.Writer, orders []Order) error {
	for _, o := range orders {
		if _, err := fmt.Fprintln(w, o.Line()); err != nil {
			return fmt.Errorf("write order: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, "go"); err != nil {
		return fmt.Errorf("write end of turn: %w", err)
	}
	return nil
}
