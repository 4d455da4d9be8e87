package strategy

import (
	"pwbot/bt"
)

// BuildTree assembles the baseline priority policy:
//
//  1. defend a planet that would fall to incoming fleets
//  2. attack the best enemy target
//  3. expand to the most valuable neutral, when it's safe
//  4. reinforce the frontline while under pressure
//  5. consolidate surplus toward our weakest planet
//
// Selector semantics stop the turn at the first behavior that issues an
// order. The tree is static after this call.
func BuildTree(cfg Config) bt.Node {
	p := NewPolicy(cfg)

	return bt.NewSelector("bot",
		bt.NewSequence("defend",
			bt.NewCheck("enemy fleet incoming", p.EnemyFleetIncoming),
			bt.NewAction("defend under attack", p.DefendUnderAttack),
		),
		bt.NewSequence("attack",
			bt.NewCheck("enemies exist", p.EnemiesExist),
			bt.NewAction("attack best target", p.AttackBestTarget),
		),
		bt.NewSequence("expand",
			bt.NewCheck("neutral available", p.NeutralAvailable),
			bt.NewCheck("safe to expand", p.SafeToExpand),
			bt.NewAction("expand to valuable neutral", p.ExpandToValuableNeutral),
		),
		bt.NewSequence("reinforce",
			bt.NewCheck("enemies exist", p.EnemiesExist),
			bt.NewCheck("under high danger", p.UnderHighDanger),
			bt.NewAction("reinforce frontline", p.ReinforceFrontline),
		),
		bt.NewAction("consolidate", p.Consolidate),
	)
}
