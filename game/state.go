// Package game defines the core Planet Wars state types.
//
// A State is an immutable snapshot of one turn: every planet, every fleet in
// flight, and a precomputed distance table derived from the static map
// geometry. The decision layers above only ever read it; the engine (or the
// remote game server) builds a fresh one each turn.
package game

import (
	"fmt"
	"math"
)

// Owner identifies who controls a planet or fleet.
// The values match the wire encoding of the Planet Wars protocol,
// where owner 1 is always "us" (the engine flips perspective per player).
type Owner int

const (
	OwnerNeutral Owner = 0
	OwnerMe      Owner = 1
	OwnerEnemy   Owner = 2
)

func (o Owner) String() string {
	switch o {
	case OwnerNeutral:
		return "neutral"
	case OwnerMe:
		return "me"
	case OwnerEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("owner(%d)", int(o))
	}
}

// Planet is a persistent map node. IDs are assigned by map-file order and are
// stable for the whole game; owner and ship count change turn to turn.
type Planet struct {
	ID     int
	Owner  Owner
	Ships  int
	Growth int
	X, Y   float64
}

// Fleet is a group of ships in transit between two planets.
type Fleet struct {
	Owner          Owner
	Ships          int
	Src            int
	Dst            int
	TotalTurns     int
	TurnsRemaining int
}

// Order is a commitment to move Ships from planet Src to planet Dst.
// It is only valid if Src is owned by the issuer and Ships does not exceed
// the ships currently on Src.
type Order struct {
	Src   int
	Dst   int
	Ships int
}

// Line renders the order in the engine's wire format.
func (o Order) Line() string {
	return fmt.Sprintf("%d %d %d", o.Src, o.Dst, o.Ships)
}

// State is one turn's complete snapshot. All accessors iterate planets in
// id-ascending order, which makes linear best-score scans deterministic
// (first-seen wins ties).
type State struct {
	Turn    int
	Planets []Planet
	Fleets  []Fleet

	dist [][]int
}

// NewState builds a snapshot and precomputes the distance table.
// Planet IDs must equal their index in the slice.
func NewState(turn int, planets []Planet, fleets []Fleet) (*State, error) {
	for i := range planets {
		if planets[i].ID != i {
			return nil, fmt.Errorf("planet id %d at index %d", planets[i].ID, i)
		}
		if planets[i].Ships < 0 || planets[i].Growth < 0 {
			return nil, fmt.Errorf("planet %d has negative ships or growth", i)
		}
	}
	for _, f := range fleets {
		if f.Src < 0 || f.Src >= len(planets) || f.Dst < 0 || f.Dst >= len(planets) {
			return nil, fmt.Errorf("fleet references unknown planet (src=%d dst=%d)", f.Src, f.Dst)
		}
		if f.Ships <= 0 {
			return nil, fmt.Errorf("fleet from %d to %d has %d ships", f.Src, f.Dst, f.Ships)
		}
	}
	return &State{
		Turn:    turn,
		Planets: planets,
		Fleets:  fleets,
		dist:    distanceTable(planets),
	}, nil
}

// distanceTable computes the symmetric integer travel time between every
// planet pair: ceil of the Euclidean distance, the classic Planet Wars rule.
func distanceTable(planets []Planet) [][]int {
	n := len(planets)
	d := make([][]int, n)
	for i := range d {
		d[i] = make([]int, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := planets[i].X - planets[j].X
			dy := planets[i].Y - planets[j].Y
			t := int(math.Ceil(math.Sqrt(dx*dx + dy*dy)))
			d[i][j] = t
			d[j][i] = t
		}
	}
	return d
}

// Distance returns the precomputed travel time in turns between two planets.
// Passing an unknown id is a programming error, not a game-state condition,
// so it panics rather than failing silently.
func (s *State) Distance(a, b int) int {
	if a < 0 || a >= len(s.Planets) || b < 0 || b >= len(s.Planets) {
		panic(fmt.Sprintf("game: distance query for unknown planet id (%d, %d)", a, b))
	}
	return s.dist[a][b]
}

// PlanetByID returns a pointer into the snapshot's planet slice, or nil if
// the id is out of range. Callers must treat the result as read-only.
func (s *State) PlanetByID(id int) *Planet {
	if id < 0 || id >= len(s.Planets) {
		return nil
	}
	return &s.Planets[id]
}

func (s *State) planetsOwnedBy(o Owner) []*Planet {
	var out []*Planet
	for i := range s.Planets {
		if s.Planets[i].Owner == o {
			out = append(out, &s.Planets[i])
		}
	}
	return out
}

// MyPlanets returns the planets we own, in id order.
func (s *State) MyPlanets() []*Planet { return s.planetsOwnedBy(OwnerMe) }

// EnemyPlanets returns the opponent's planets, in id order.
func (s *State) EnemyPlanets() []*Planet { return s.planetsOwnedBy(OwnerEnemy) }

// NeutralPlanets returns unowned planets, in id order.
func (s *State) NeutralPlanets() []*Planet { return s.planetsOwnedBy(OwnerNeutral) }

func (s *State) fleetsOwnedBy(o Owner) []Fleet {
	var out []Fleet
	for _, f := range s.Fleets {
		if f.Owner == o {
			out = append(out, f)
		}
	}
	return out
}

// MyFleets returns our fleets currently in flight.
func (s *State) MyFleets() []Fleet { return s.fleetsOwnedBy(OwnerMe) }

// EnemyFleets returns the opponent's fleets currently in flight.
func (s *State) EnemyFleets() []Fleet { return s.fleetsOwnedBy(OwnerEnemy) }

// Clone performs a deep copy of the state. The distance table is shared:
// map geometry never changes during a game.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{Turn: s.Turn, dist: s.dist}
	if len(s.Planets) > 0 {
		out.Planets = make([]Planet, len(s.Planets))
		copy(out.Planets, s.Planets)
	}
	if len(s.Fleets) > 0 {
		out.Fleets = make([]Fleet, len(s.Fleets))
		copy(out.Fleets, s.Fleets)
	}
	return out
}
