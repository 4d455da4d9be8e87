package engine

import (
	"context"
	"fmt"

	"pwbot/game"
)

// Result summarizes a finished match.
type Result struct {
	Winner game.Owner
	Turns  int
}

// TurnHook observes each resolved turn. The state is the live canonical
// snapshot; hooks must not mutate it.
type TurnHook func(turn int, s *game.State)

// Run plays p1 against p2 from the initial state until the game ends or ctx
// is cancelled. Player two receives the flipped view and its orders are
// applied as OwnerEnemy.
func Run(ctx context.Context, initial *game.State, p1, p2 Bot, maxTurns int, hook TurnHook) (Result, error) {
	if maxTurns <= 0 {
		maxTurns = MaxTurns
	}

	s := initial.Clone()
	if hook != nil {
		hook(s.Turn, s)
	}

	for !IsOver(s, maxTurns) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		o1 := p1.Act(s)
		o2 := p2.Act(FlipView(s))

		next, err := Advance(s, o1, o2)
		if err != nil {
			return Result{}, fmt.Errorf("turn %d: %w", s.Turn, err)
		}
		s = next
		if hook != nil {
			hook(s.Turn, s)
		}
	}

	return Result{Winner: Winner(s), Turns: s.Turn}, nil
}
