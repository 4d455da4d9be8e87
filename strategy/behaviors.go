package strategy

import (
	"pwbot/bt"
	"pwbot/game"
)

// AttackBestTarget launches at the highest-scoring enemy planet from our
// strongest planet. It needs the strongest planet to hold at least
// AttackMinShips, and to keep AttackMargin ships behind after sending
// target.Ships+1.
func (p *Policy) AttackBestTarget(s *game.State, out *bt.Orders) bool {
	strongest := Strongest(s.MyPlanets())
	if strongest == nil || strongest.Ships < p.cfg.AttackMinShips {
		return false
	}
	target := p.BestEnemyTarget(s, strongest)
	if target == nil {
		return false
	}
	required := target.Ships + 1
	if strongest.Ships > required+p.cfg.AttackMargin {
		return out.Issue(s, game.Order{Src: strongest.ID, Dst: target.ID, Ships: required})
	}
	return false
}

// AttackWeakestEnemy is the simpler fallback: strongest planet against the
// weakest enemy planet, keeping SimpleAttackMargin ships home.
func (p *Policy) AttackWeakestEnemy(s *game.State, out *bt.Orders) bool {
	strongest := Strongest(s.MyPlanets())
	if strongest == nil {
		return false
	}
	target := Weakest(s.EnemyPlanets())
	if target == nil {
		return false
	}
	required := target.Ships + 1
	if strongest.Ships > required+p.cfg.SimpleAttackMargin {
		return out.Issue(s, game.Order{Src: strongest.ID, Dst: target.ID, Ships: required})
	}
	return false
}

// ExpandToValuableNeutral captures the highest-scoring neutral planet.
// Ships already in flight toward the target count against the requirement,
// so repeated evaluations across turns don't over-commit to one capture.
func (p *Policy) ExpandToValuableNeutral(s *game.State, out *bt.Orders) bool {
	strongest := Strongest(s.MyPlanets())
	if strongest == nil || strongest.Ships < p.cfg.ExpandMinShips {
		return false
	}
	target := p.BestNeutralTarget(s, strongest)
	if target == nil {
		return false
	}
	required := target.Ships + 1 - shipsEnRoute(s, game.OwnerMe, target.ID)
	if required <= 0 {
		// Capture already fully committed.
		return false
	}
	if strongest.Ships > required+p.cfg.ExpandMargin {
		return out.Issue(s, game.Order{Src: strongest.ID, Dst: target.ID, Ships: required})
	}
	return false
}

// SpreadToWeakestNeutral is the cheaper expansion fallback: take the
// emptiest neutral planet with a small margin.
func (p *Policy) SpreadToWeakestNeutral(s *game.State, out *bt.Orders) bool {
	strongest := Strongest(s.MyPlanets())
	if strongest == nil {
		return false
	}
	target := Weakest(s.NeutralPlanets())
	if target == nil {
		return false
	}
	required := target.Ships + 1
	if strongest.Ships > required+p.cfg.SpreadMargin {
		return out.Issue(s, game.Order{Src: strongest.ID, Dst: target.ID, Ships: required})
	}
	return false
}

// DefendUnderAttack reinforces the first owned planet (in id order) that
// would fall to its incoming enemy fleets, sourcing the deficit plus the
// safety margin from the closest planet that can spare it. Only one planet
// is handled per turn: if several are threatened at once, the later ones
// wait for the next evaluation.
func (p *Policy) DefendUnderAttack(s *game.State, out *bt.Orders) bool {
	margin := p.cfg.DefendSafetyMargin
	for _, mine := range s.MyPlanets() {
		incoming := shipsEnRoute(s, game.OwnerEnemy, mine.ID)
		if incoming == 0 || incoming < mine.Ships {
			continue
		}

		var reinforcers []*game.Planet
		for _, other := range s.MyPlanets() {
			if other.ID != mine.ID && other.Ships > incoming+margin {
				reinforcers = append(reinforcers, other)
			}
		}
		source := Closest(s, mine, reinforcers)
		if source == nil {
			continue
		}

		send := incoming - mine.Ships + margin
		if send > 0 && source.Ships > send+margin {
			return out.Issue(s, game.Order{Src: source.ID, Dst: mine.ID, Ships: send})
		}
	}
	return false
}

// ReinforceFrontline tops up the owned planet closest to enemy territory
// from the strongest planet that can spare a wave.
func (p *Policy) ReinforceFrontline(s *game.State, out *bt.Orders) bool {
	if len(s.EnemyPlanets()) == 0 || len(s.MyPlanets()) == 0 {
		return false
	}

	var frontline *game.Planet
	minDist := 0
	for _, mine := range s.MyPlanets() {
		for _, enemy := range s.EnemyPlanets() {
			d := s.Distance(mine.ID, enemy.ID)
			if frontline == nil || d < minDist {
				minDist = d
				frontline = mine
			}
		}
	}
	if frontline == nil {
		return false
	}

	var reinforcers []*game.Planet
	for _, other := range s.MyPlanets() {
		if other.ID != frontline.ID && other.Ships > frontline.Ships+p.cfg.ReinforceKeep {
			reinforcers = append(reinforcers, other)
		}
	}
	source := Strongest(reinforcers)
	if source == nil {
		return false
	}

	send := source.Ships - p.cfg.ReinforceKeep
	if send > p.cfg.WaveSize {
		send = p.cfg.WaveSize
	}
	if send <= p.cfg.ReinforceMinSend {
		return false
	}
	return out.Issue(s, game.Order{Src: source.ID, Dst: frontline.ID, Ships: send})
}

// Consolidate moves surplus from the richest above-average planet toward our
// weakest planet, evening the line when nothing better is on offer.
func (p *Policy) Consolidate(s *game.State, out *bt.Orders) bool {
	weakest := Weakest(s.MyPlanets())
	if weakest == nil {
		return false
	}

	var donor *Deployment
	for _, d := range Deployable(s) {
		if d.Planet.ID == weakest.ID {
			continue
		}
		if donor == nil || d.Surplus > donor.Surplus {
			tmp := d
			donor = &tmp
		}
	}
	if donor == nil {
		return false
	}

	send := int(donor.Surplus)
	if send > p.cfg.WaveSize {
		send = p.cfg.WaveSize
	}
	if send < p.cfg.ReinforceMinSend {
		return false
	}
	return out.Issue(s, game.Order{Src: donor.Planet.ID, Dst: weakest.ID, Ships: send})
}
