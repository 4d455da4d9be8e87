// Package engine resolves Planet Wars turns: order legality, departures,
// fleet movement, growth and arrival combat. It operates on the canonical
// state where OwnerMe is player one and OwnerEnemy is player two; FlipView
// produces the mirrored snapshot player two's bot sees.
package engine

import (
	"fmt"

	"pwbot/game"
)

// MaxTurns is the default match length before the game is scored on ships.
const MaxTurns = 200

// ValidateOrders checks one player's orders against the snapshot. Ships are
// deducted cumulatively, so several orders from the same planet must fit its
// garrison together.
func ValidateOrders(s *game.State, owner game.Owner, orders []game.Order) error {
	remaining := make(map[int]int)
	for _, ord := range orders {
		src := s.PlanetByID(ord.Src)
		dst := s.PlanetByID(ord.Dst)
		if src == nil || dst == nil {
			return fmt.Errorf("order %d %d %d: unknown planet", ord.Src, ord.Dst, ord.Ships)
		}
		if src.Owner != owner {
			return fmt.Errorf("order %d %d %d: source not owned by player %d", ord.Src, ord.Dst, ord.Ships, owner)
		}
		if ord.Src == ord.Dst {
			return fmt.Errorf("order %d %d %d: source equals destination", ord.Src, ord.Dst, ord.Ships)
		}
		if _, ok := remaining[ord.Src]; !ok {
			remaining[ord.Src] = src.Ships
		}
		if ord.Ships <= 0 || ord.Ships > remaining[ord.Src] {
			return fmt.Errorf("order %d %d %d: %d ships available", ord.Src, ord.Dst, ord.Ships, remaining[ord.Src])
		}
		remaining[ord.Src] -= ord.Ships
	}
	return nil
}

// Advance resolves one full turn and returns the next state. The phases run
// in the fixed order departures, fleet movement, growth, arrivals; both
// players' orders are applied simultaneously against the same snapshot.
func Advance(s *game.State, p1, p2 []game.Order) (*game.State, error) {
	if err := ValidateOrders(s, game.OwnerMe, p1); err != nil {
		return nil, fmt.Errorf("player 1: %w", err)
	}
	if err := ValidateOrders(s, game.OwnerEnemy, p2); err != nil {
		return nil, fmt.Errorf("player 2: %w", err)
	}

	next := s.Clone()
	next.Turn++

	depart(next, game.OwnerMe, p1)
	depart(next, game.OwnerEnemy, p2)

	// Move fleets one step closer.
	for i := range next.Fleets {
		next.Fleets[i].TurnsRemaining--
	}

	// Owned planets grow; neutrals don't.
	for i := range next.Planets {
		if next.Planets[i].Owner != game.OwnerNeutral {
			next.Planets[i].Ships += next.Planets[i].Growth
		}
	}

	resolveArrivals(next)
	return next, nil
}

func depart(s *game.State, owner game.Owner, orders []game.Order) {
	for _, ord := range orders {
		src := s.PlanetByID(ord.Src)
		src.Ships -= ord.Ships
		d := s.Distance(ord.Src, ord.Dst)
		s.Fleets = append(s.Fleets, game.Fleet{
			Owner:          owner,
			Ships:          ord.Ships,
			Src:            ord.Src,
			Dst:            ord.Dst,
			TotalTurns:     d,
			TurnsRemaining: d,
		})
	}
}

// resolveArrivals lands every fleet with no turns remaining. At each contested
// planet the three possible forces (garrison plus each player's arrivals)
// fight: the largest force wins and keeps the difference to the second
// largest; an exact tie leaves the incumbent owner with zero ships.
func resolveArrivals(s *game.State) {
	arrivals := make(map[int]map[game.Owner]int)
	var inFlight []game.Fleet
	for _, f := range s.Fleets {
		if f.TurnsRemaining > 0 {
			inFlight = append(inFlight, f)
			continue
		}
		if arrivals[f.Dst] == nil {
			arrivals[f.Dst] = make(map[game.Owner]int)
		}
		arrivals[f.Dst][f.Owner] += f.Ships
	}
	s.Fleets = inFlight

	for dst, byOwner := range arrivals {
		p := s.PlanetByID(dst)
		forces := map[game.Owner]int{p.Owner: p.Ships}
		for owner, ships := range byOwner {
			forces[owner] += ships
		}

		if len(forces) == 1 {
			p.Ships = forces[p.Owner]
			continue
		}

		top, second := strongestForces(forces)
		if forces[top] == forces[second] {
			p.Ships = 0
			continue
		}
		p.Ships = forces[top] - forces[second]
		p.Owner = top
	}
}

// strongestForces returns the owners of the largest and second-largest
// forces. Ties between distinct owners are broken toward the lower owner
// value so resolution stays deterministic.
func strongestForces(forces map[game.Owner]int) (top, second game.Owner) {
	top, second = -1, -1
	for _, owner := range []game.Owner{game.OwnerNeutral, game.OwnerMe, game.OwnerEnemy} {
		ships, ok := forces[owner]
		if !ok {
			continue
		}
		switch {
		case top == -1 || ships > forces[top]:
			second = top
			top = owner
		case second == -1 || ships > forces[second]:
			second = owner
		}
	}
	return top, second
}

// FlipView returns the snapshot with the two players swapped, so a bot that
// always plays OwnerMe can drive player two.
func FlipView(s *game.State) *game.State {
	v := s.Clone()
	for i := range v.Planets {
		v.Planets[i].Owner = flipOwner(v.Planets[i].Owner)
	}
	for i := range v.Fleets {
		v.Fleets[i].Owner = flipOwner(v.Fleets[i].Owner)
	}
	return v
}

func flipOwner(o game.Owner) game.Owner {
	switch o {
	case game.OwnerMe:
		return game.OwnerEnemy
	case game.OwnerEnemy:
		return game.OwnerMe
	default:
		return o
	}
}

// alive reports whether the player still holds any planet or fleet.
func alive(s *game.State, owner game.Owner) bool {
	for i := range s.Planets {
		if s.Planets[i].Owner == owner {
			return true
		}
	}
	for i := range s.Fleets {
		if s.Fleets[i].Owner == owner {
			return true
		}
	}
	return false
}

// IsOver reports whether the match has ended: either player wiped out, or
// the turn limit reached.
func IsOver(s *game.State, maxTurns int) bool {
	if s.Turn >= maxTurns {
		return true
	}
	return !alive(s, game.OwnerMe) || !alive(s, game.OwnerEnemy)
}

// Winner returns who holds more total ships, planets and fleets combined.
// OwnerNeutral means a draw.
func Winner(s *game.State) game.Owner {
	totals := map[game.Owner]int{}
	for i := range s.Planets {
		totals[s.Planets[i].Owner] += s.Planets[i].Ships
	}
	for i := range s.Fleets {
		totals[s.Fleets[i].Owner] += s.Fleets[i].Ships
	}

	if !alive(s, game.OwnerMe) && !alive(s, game.OwnerEnemy) {
		return game.OwnerNeutral
	}
	if !alive(s, game.OwnerEnemy) {
		return game.OwnerMe
	}
	if !alive(s, game.OwnerMe) {
		return game.OwnerEnemy
	}

	switch {
	case totals[game.OwnerMe] > totals[game.OwnerEnemy]:
		return game.OwnerMe
	case totals[game.OwnerEnemy] > totals[game.OwnerMe]:
		return game.OwnerEnemy
	default:
		return game.OwnerNeutral
	}
}
