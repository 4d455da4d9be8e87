package strategy

import (
	"pwbot/game"
)

// EnemiesExist reports whether the opponent holds any planets.
func (p *Policy) EnemiesExist(s *game.State) bool {
	return len(s.EnemyPlanets()) > 0
}

// NeutralAvailable reports whether any neutral planet remains to capture.
func (p *Policy) NeutralAvailable(s *game.State) bool {
	return len(s.NeutralPlanets()) > 0
}

// EnemyFleetIncoming reports whether any enemy fleet is headed to one of our
// planets.
func (p *Policy) EnemyFleetIncoming(s *game.State) bool {
	for _, f := range s.EnemyFleets() {
		dst := s.PlanetByID(f.Dst)
		if dst != nil && dst.Owner == game.OwnerMe {
			return true
		}
	}
	return false
}

// HaveLargestFleet reports whether our total ship count, planets plus fleets
// in flight, exceeds the enemy's.
func (p *Policy) HaveLargestFleet(s *game.State) bool {
	mine, theirs := 0, 0
	for _, pl := range s.MyPlanets() {
		mine += pl.Ships
	}
	for _, f := range s.MyFleets() {
		mine += f.Ships
	}
	for _, pl := range s.EnemyPlanets() {
		theirs += pl.Ships
	}
	for _, f := range s.EnemyFleets() {
		theirs += f.Ships
	}
	return mine > theirs
}

// StrongEnoughToAttack reports whether our strongest planet outguns the
// weakest enemy planet by the configured safety ratio.
func (p *Policy) StrongEnoughToAttack(s *game.State) bool {
	strongest := Strongest(s.MyPlanets())
	weakest := Weakest(s.EnemyPlanets())
	if strongest == nil || weakest == nil {
		return false
	}
	return float64(strongest.Ships) > float64(weakest.Ships)*p.cfg.AttackSafetyRatio
}

// SafeToExpand reports whether expansion is safe: no strong enemy planet
// close to our strongest planet, and incoming enemy ships within the horizon
// stay below a fraction of its strength.
func (p *Policy) SafeToExpand(s *game.State) bool {
	strongest := Strongest(s.MyPlanets())
	if strongest == nil {
		return false
	}

	for _, e := range s.EnemyPlanets() {
		d := s.Distance(strongest.ID, e.ID)
		if d < p.cfg.FrontlineDistance && float64(e.Ships) > float64(strongest.Ships)*p.cfg.ExpandStrengthRatio {
			return false
		}
	}

	incoming := 0
	for _, f := range s.EnemyFleets() {
		dst := s.PlanetByID(f.Dst)
		if dst != nil && dst.Owner == game.OwnerMe && f.TurnsRemaining < p.cfg.ExpandHorizon {
			incoming += f.Ships
		}
	}
	return float64(incoming) < float64(strongest.Ships)*p.cfg.ExpandIncomingRatio
}

// UnderHighDanger reports whether any owned planet's danger level reaches
// the configured threshold.
func (p *Policy) UnderHighDanger(s *game.State) bool {
	for _, pl := range s.MyPlanets() {
		if p.DangerLevel(s, pl) >= p.cfg.DangerThreshold {
			return true
		}
	}
	return false
}
