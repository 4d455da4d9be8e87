package strategy

import (
	"pwbot/game"
)

// Strongest returns the planet with the most ships, or nil for an empty set.
// Ties keep the first-seen planet.
func Strongest(planets []*game.Planet) *game.Planet {
	var best *game.Planet
	for _, p := range planets {
		if best == nil || p.Ships > best.Ships {
			best = p
		}
	}
	return best
}

// Weakest returns the planet with the fewest ships, or nil for an empty set.
func Weakest(planets []*game.Planet) *game.Planet {
	var best *game.Planet
	for _, p := range planets {
		if best == nil || p.Ships < best.Ships {
			best = p
		}
	}
	return best
}

// Closest returns the planet nearest to origin, or nil if origin is nil or
// the set is empty.
func Closest(s *game.State, origin *game.Planet, planets []*game.Planet) *game.Planet {
	if origin == nil {
		return nil
	}
	var best *game.Planet
	bestDist := 0
	for _, p := range planets {
		d := s.Distance(origin.ID, p.ID)
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// AverageAllyStrength is the mean ship count over owned planets, 0 if we own
// none.
func AverageAllyStrength(s *game.State) float64 {
	mine := s.MyPlanets()
	if len(mine) == 0 {
		return 0
	}
	total := 0
	for _, p := range mine {
		total += p.Ships
	}
	return float64(total) / float64(len(mine))
}

// Deployment is a planet able to donate ships and the surplus it holds above
// the fleet-wide average.
type Deployment struct {
	Planet  *game.Planet
	Surplus float64
}

// Deployable returns the owned planets whose ship count exceeds the average,
// paired with their surplus. These are the donors for expansion and
// consolidation moves: sending the surplus never drops a planet below the
// fleet's own baseline.
func Deployable(s *game.State) []Deployment {
	avg := AverageAllyStrength(s)
	var out []Deployment
	for _, p := range s.MyPlanets() {
		if float64(p.Ships) > avg {
			out = append(out, Deployment{Planet: p, Surplus: float64(p.Ships) - avg})
		}
	}
	return out
}

// shipsEnRoute sums the ships of owner's fleets headed to dst.
func shipsEnRoute(s *game.State, owner game.Owner, dst int) int {
	total := 0
	for _, f := range s.Fleets {
		if f.Owner == owner && f.Dst == dst {
			total += f.Ships
		}
	}
	return total
}
