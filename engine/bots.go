package engine

import (
	"pwbot/bt"
	"pwbot/game"
)

// Bot produces a turn's orders from the player-one view of the state.
type Bot interface {
	Name() string
	Act(s *game.State) []game.Order
}

// TreeBot runs a behavior tree each turn.
type TreeBot struct {
	Label string
	Root  bt.Node
}

func (b *TreeBot) Name() string { return b.Label }

func (b *TreeBot) Act(s *game.State) []game.Order {
	out := &bt.Orders{}
	b.Root.Tick(s, out)
	return out.Issued()
}

// RageBot sends every planet's full garrison at the weakest enemy planet
// every turn. Loses to anything with a plan, beats anything that stalls.
type RageBot struct{}

func (RageBot) Name() string { return "rage" }

func (RageBot) Act(s *game.State) []game.Order {
	var target *game.Planet
	for _, e := range s.EnemyPlanets() {
		if target == nil || e.Ships < target.Ships {
			target = e
		}
	}
	if target == nil {
		return nil
	}

	var orders []game.Order
	for _, mine := range s.MyPlanets() {
		if mine.Ships > 0 {
			orders = append(orders, game.Order{Src: mine.ID, Dst: target.ID, Ships: mine.Ships})
		}
	}
	return orders
}

// PassiveBot never issues an order. Useful as a growth baseline.
type PassiveBot struct{}

func (PassiveBot) Name() string { return "passive" }

func (PassiveBot) Act(*game.State) []game.Order { return nil }
