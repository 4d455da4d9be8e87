package strategy

import (
	"math"

	"pwbot/game"
)

// Policy binds the strategy library to one Config. All methods are pure
// reads over the snapshot; the only side effect anywhere is an Action
// issuing an order through its sink.
type Policy struct {
	cfg Config
}

func NewPolicy(cfg Config) *Policy {
	return &Policy{cfg: cfg}
}

// TargetScore ranks tgt as a destination for ships launched from src.
// Higher is more attractive. It is -Inf when either planet is missing or
// the pair is zero distance apart (self-target guard / division by zero).
func (p *Policy) TargetScore(s *game.State, src, tgt *game.Planet) float64 {
	if src == nil || tgt == nil {
		return math.Inf(-1)
	}
	d := s.Distance(src.ID, tgt.ID)
	if d == 0 {
		return math.Inf(-1)
	}
	return float64(tgt.Growth)*p.cfg.ScoreGrowthWeight +
		(1/float64(d))*p.cfg.ScoreDistanceWeight -
		float64(tgt.Ships)*p.cfg.ScoreShipsWeight
}

// DangerLevel is a unitless threat index for a planet. Two sums contribute:
//
// Incoming enemy fleets, each normalized so one fleet contributes a bounded
// amount: proximity 1/(turns+1) approaches 1 as arrival nears, and strength
// ships/(ships+100) saturates below 1 no matter the fleet size.
//
// Enemy planets, each contributing distance*weight + ships*weight. The
// distance term grows with distance by construction: the index accumulates
// pressure from the enemy's whole footprint, near and far, rather than
// estimating arrival risk. Do not invert it.
func (p *Policy) DangerLevel(s *game.State, planet *game.Planet) float64 {
	if planet == nil {
		return 0
	}
	score := 0.0

	for _, f := range s.EnemyFleets() {
		if f.Dst != planet.ID {
			continue
		}
		proximity := 1.0 / float64(f.TurnsRemaining+1)
		strength := float64(f.Ships) / float64(f.Ships+100)
		score += proximity*p.cfg.DangerFleetDistWeight + strength*p.cfg.DangerFleetShipsWeight
	}

	for _, e := range s.EnemyPlanets() {
		d := float64(s.Distance(e.ID, planet.ID))
		score += d*p.cfg.DangerPlanetDistWeight + float64(e.Ships)*p.cfg.DangerPlanetShipsWeight
	}

	return score
}

// bestTarget scans candidates in their given (id-ascending) order and keeps
// the strictly greatest score, so ties go to the first-seen candidate.
func (p *Policy) bestTarget(s *game.State, src *game.Planet, candidates []*game.Planet) *game.Planet {
	if src == nil {
		return nil
	}
	best := math.Inf(-1)
	var target *game.Planet
	for _, c := range candidates {
		if score := p.TargetScore(s, src, c); score > best {
			best = score
			target = c
		}
	}
	return target
}

// BestEnemyTarget returns the highest-scoring enemy planet as seen from src,
// or nil if there are none.
func (p *Policy) BestEnemyTarget(s *game.State, src *game.Planet) *game.Planet {
	return p.bestTarget(s, src, s.EnemyPlanets())
}

// BestNeutralTarget returns the highest-scoring neutral planet as seen from
// src, or nil if there are none.
func (p *Policy) BestNeutralTarget(s *game.State, src *game.Planet) *game.Planet {
	return p.bestTarget(s, src, s.NeutralPlanets())
}
