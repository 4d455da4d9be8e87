// Package main is a terminal replay viewer for recorded matches. It steps
// through the turn rows of a Parquet match file with the arrow keys.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pwbot/game"
	"pwbot/store"
)

type model struct {
	path string
	rows []store.TurnRow
	idx  int
}

func initialModel(path string, rows []store.TurnRow) model {
	return model{path: path, rows: rows}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			if m.idx > 0 {
				m.idx--
			}
		case "right", "l":
			if m.idx < len(m.rows)-1 {
				m.idx++
			}
		case "home", "g":
			m.idx = 0
		case "end", "G":
			m.idx = len(m.rows) - 1
		}
	}
	return m, nil
}

func (m model) View() string {
	row := m.rows[m.idx]

	s := fmt.Sprintf("Match: %s  (%s)\n", row.MatchID, m.path)
	s += fmt.Sprintf("Turn:  %d/%d\n\n", row.Turn, m.rows[len(m.rows)-1].Turn)
	s += renderTurn(row)
	s += "\nleft/right to step, home/end to jump, q to quit.\n"
	return s
}

func renderTurn(row store.TurnRow) string {
	state, err := store.RowState(row)
	if err != nil {
		return fmt.Sprintf("bad row: %v\n", err)
	}

	var b strings.Builder
	b.WriteString("Planets:\n")
	for _, p := range state.Planets {
		marker := " "
		switch p.Owner {
		case game.OwnerMe:
			marker = "*"
		case game.OwnerEnemy:
			marker = "!"
		}
		fmt.Fprintf(&b, " %s #%-3d %-7s ships=%-5d growth=%d  (%.1f, %.1f)\n",
			marker, p.ID, p.Owner, p.Ships, p.Growth, p.X, p.Y)
	}

	if len(state.Fleets) > 0 {
		b.WriteString("\nFleets:\n")
		for _, f := range state.Fleets {
			fmt.Fprintf(&b, "   %-7s %4d ships  %d -> %d  lands in %d\n",
				f.Owner, f.Ships, f.Src, f.Dst, f.TurnsRemaining)
		}
	}

	if len(row.OrderSrc) > 0 {
		b.WriteString("\nOrders this turn:\n")
		for i := range row.OrderSrc {
			fmt.Fprintf(&b, "   %d -> %d  %d ships\n", row.OrderSrc[i], row.OrderDst[i], row.OrderShips[i])
		}
	}
	return b.String()
}

func main() {
	matchPath := flag.String("match", "", "Path to a recorded match Parquet file")
	flag.Parse()

	if *matchPath == "" {
		log.Fatal("-match is required")
	}

	rows, err := store.ReadMatchParquet(*matchPath)
	if err != nil {
		log.Fatalf("load match: %v", err)
	}
	if len(rows) == 0 {
		log.Fatalf("no turns recorded in %s", *matchPath)
	}

	p := tea.NewProgram(initialModel(*matchPath, rows), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("replay viewer: %v", err)
	}
}
