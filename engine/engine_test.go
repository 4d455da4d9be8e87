package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"pwbot/game"
)

func mustState(t *testing.T, planets []game.Planet, fleets []game.Fleet) *game.State {
	t.Helper()
	s, err := game.NewState(0, planets, fleets)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

// dumpState renders the board for failure messages.
func dumpState(s *game.State) string {
	var b strings.Builder
	for _, p := range s.Planets {
		fmt.Fprintf(&b, "planet %d owner=%s ships=%d growth=%d\n", p.ID, p.Owner, p.Ships, p.Growth)
	}
	for _, f := range s.Fleets {
		fmt.Fprintf(&b, "fleet owner=%s ships=%d %d->%d eta=%d\n", f.Owner, f.Ships, f.Src, f.Dst, f.TurnsRemaining)
	}
	return b.String()
}

func TestAdvance_Departure(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 50, Growth: 5},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 10, Growth: 1, X: 3, Y: 4},
	}, nil)

	next, err := Advance(s, []game.Order{{Src: 0, Dst: 1, Ships: 20}}, nil)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}

	// 50 - 20 departed + 5 growth.
	if got := next.PlanetByID(0).Ships; got != 35 {
		t.Fatalf("source ships=%d want=35", got)
	}
	if len(next.Fleets) != 1 {
		t.Fatalf("fleets=%d want=1", len(next.Fleets))
	}
	f := next.Fleets[0]
	if f.Owner != game.OwnerMe || f.Ships != 20 || f.Src != 0 || f.Dst != 1 {
		t.Fatalf("fleet=%+v", f)
	}
	// Distance 5, already moved one step this turn.
	if f.TotalTurns != 5 || f.TurnsRemaining != 4 {
		t.Fatalf("fleet turns=%d/%d want 4/5", f.TurnsRemaining, f.TotalTurns)
	}
}

func TestAdvance_GrowthSkipsNeutrals(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 5},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 10, Growth: 3, X: 5},
		{ID: 2, Owner: game.OwnerNeutral, Ships: 10, Growth: 4, X: 10},
	}, nil)

	next, err := Advance(s, nil, nil)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	for id, want := range map[int]int{0: 15, 1: 13, 2: 10} {
		if got := next.PlanetByID(id).Ships; got != want {
			t.Fatalf("planet %d ships=%d want=%d", id, got, want)
		}
	}
	if next.Turn != 1 {
		t.Fatalf("turn=%d want=1", next.Turn)
	}
}

func TestAdvance_ReinforcementLands(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerMe, Ships: 5, Growth: 1, X: 4},
	}, []game.Fleet{
		{Owner: game.OwnerMe, Ships: 8, Src: 0, Dst: 1, TotalTurns: 4, TurnsRemaining: 1},
	})

	next, err := Advance(s, nil, nil)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	// 5 + 1 growth + 8 landed.
	if got := next.PlanetByID(1).Ships; got != 14 {
		t.Fatalf("ships=%d want=14", got)
	}
	if len(next.Fleets) != 0 {
		t.Fatalf("fleets=%d want=0", len(next.Fleets))
	}
}

func TestAdvance_Conquest(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 6, Growth: 1, X: 4},
	}, []game.Fleet{
		{Owner: game.OwnerMe, Ships: 20, Src: 0, Dst: 1, TotalTurns: 4, TurnsRemaining: 1},
	})

	next, err := Advance(s, nil, nil)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	p := next.PlanetByID(1)
	// Garrison grows to 7 before the 20 land: 20 - 7 survive.
	if p.Owner != game.OwnerMe || p.Ships != 13 {
		t.Fatalf("planet=%+v want mine with 13 ships", p)
	}
}

func TestAdvance_TieLeavesIncumbentAtZero(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 6, Growth: 1, X: 4},
	}, []game.Fleet{
		{Owner: game.OwnerMe, Ships: 7, Src: 0, Dst: 1, TotalTurns: 4, TurnsRemaining: 1},
	})

	next, err := Advance(s, nil, nil)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	p := next.PlanetByID(1)
	if p.Owner != game.OwnerEnemy || p.Ships != 0 {
		t.Fatalf("planet=%+v want enemy-held with 0 ships", p)
	}
}

func TestAdvance_NeutralCapture(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerNeutral, Ships: 6, Growth: 3, X: 4},
	}, []game.Fleet{
		{Owner: game.OwnerMe, Ships: 10, Src: 0, Dst: 1, TotalTurns: 4, TurnsRemaining: 1},
	})

	next, err := Advance(s, nil, nil)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	p := next.PlanetByID(1)
	// Neutral garrison stays at 6: 10 - 6 survive.
	if p.Owner != game.OwnerMe || p.Ships != 4 {
		t.Fatalf("planet=%+v want mine with 4 ships", p)
	}
}

func TestAdvance_ThreeWayBattle(t *testing.T) {
	// Both players land on a neutral at once: the larger force wins and
	// keeps the difference to the second largest, not to the sum.
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 10, Growth: 2, X: 8},
		{ID: 2, Owner: game.OwnerNeutral, Ships: 5, Growth: 3, X: 4},
	}, []game.Fleet{
		{Owner: game.OwnerMe, Ships: 20, Src: 0, Dst: 2, TotalTurns: 4, TurnsRemaining: 1},
		{Owner: game.OwnerEnemy, Ships: 12, Src: 1, Dst: 2, TotalTurns: 4, TurnsRemaining: 1},
	})

	next, err := Advance(s, nil, nil)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	p := next.PlanetByID(2)
	if p.Owner != game.OwnerMe || p.Ships != 8 {
		t.Fatalf("planet=%+v want mine with 8 ships (20-12)", p)
	}
}

func TestValidateOrders(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 10, Growth: 2, X: 8},
	}, nil)

	cases := []struct {
		name   string
		orders []game.Order
		ok     bool
	}{
		{"legal split", []game.Order{{Src: 0, Dst: 1, Ships: 6}, {Src: 0, Dst: 1, Ships: 4}}, true},
		{"overdrawn across orders", []game.Order{{Src: 0, Dst: 1, Ships: 6}, {Src: 0, Dst: 1, Ships: 5}}, false},
		{"not owned", []game.Order{{Src: 1, Dst: 0, Ships: 1}}, false},
		{"self move", []game.Order{{Src: 0, Dst: 0, Ships: 1}}, false},
		{"zero ships", []game.Order{{Src: 0, Dst: 1, Ships: 0}}, false},
		{"unknown planet", []game.Order{{Src: 0, Dst: 9, Ships: 1}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOrders(s, game.OwnerMe, tc.orders)
			if (err == nil) != tc.ok {
				t.Fatalf("err=%v ok=%v", err, tc.ok)
			}
		})
	}
}

func TestAdvance_RejectsIllegalOrders(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 10, Growth: 2, X: 8},
	}, nil)

	if _, err := Advance(s, []game.Order{{Src: 0, Dst: 1, Ships: 99}}, nil); err == nil {
		t.Fatalf("overdrawn order accepted")
	}
	if _, err := Advance(s, nil, []game.Order{{Src: 0, Dst: 1, Ships: 1}}); err == nil {
		t.Fatalf("player 2 order from player 1 planet accepted")
	}
}

func TestFlipView(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 20, Growth: 2, X: 8},
		{ID: 2, Owner: game.OwnerNeutral, Ships: 5, Growth: 1, X: 4},
	}, []game.Fleet{
		{Owner: game.OwnerEnemy, Ships: 3, Src: 1, Dst: 0, TotalTurns: 8, TurnsRemaining: 2},
	})

	v := FlipView(s)
	if v.PlanetByID(0).Owner != game.OwnerEnemy || v.PlanetByID(1).Owner != game.OwnerMe {
		t.Fatalf("planet owners not swapped: %s", dumpState(v))
	}
	if v.PlanetByID(2).Owner != game.OwnerNeutral {
		t.Fatalf("neutral owner changed")
	}
	if v.Fleets[0].Owner != game.OwnerMe {
		t.Fatalf("fleet owner not swapped")
	}
	// Original untouched.
	if s.PlanetByID(0).Owner != game.OwnerMe {
		t.Fatalf("FlipView mutated its input")
	}
}

func TestIsOverAndWinner(t *testing.T) {
	both := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 20, Growth: 2, X: 8},
	}, nil)
	if IsOver(both, MaxTurns) {
		t.Fatalf("game over with both players alive")
	}
	if got := Winner(both); got != game.OwnerEnemy {
		t.Fatalf("winner=%v want enemy on ship count", got)
	}

	wiped := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerNeutral, Ships: 20, Growth: 2, X: 8},
	}, nil)
	if !IsOver(wiped, MaxTurns) {
		t.Fatalf("game not over with player 2 wiped out")
	}
	if got := Winner(wiped); got != game.OwnerMe {
		t.Fatalf("winner=%v want me", got)
	}

	// A surviving fleet keeps a player in the game.
	fleetOnly := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 2},
		{ID: 1, Owner: game.OwnerNeutral, Ships: 20, Growth: 2, X: 8},
	}, []game.Fleet{
		{Owner: game.OwnerEnemy, Ships: 3, Src: 1, Dst: 0, TotalTurns: 8, TurnsRemaining: 2},
	})
	if IsOver(fleetOnly, MaxTurns) {
		t.Fatalf("game over despite enemy fleet in flight")
	}
}

func TestRun_RageBeatsPassive(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 50, Growth: 5},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 10, Growth: 1, X: 2},
	}, nil)

	turns := 0
	res, err := Run(context.Background(), s, RageBot{}, PassiveBot{}, 100, func(turn int, _ *game.State) {
		turns++
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Winner != game.OwnerMe {
		t.Fatalf("winner=%v want player 1", res.Winner)
	}
	if res.Turns >= 100 {
		t.Fatalf("rage failed to close out: %d turns", res.Turns)
	}
	if turns != res.Turns+1 {
		t.Fatalf("hook saw %d states for %d turns", turns, res.Turns)
	}
}

func TestRun_SymmetricPassivesDraw(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 1},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 10, Growth: 1, X: 6},
	}, nil)

	res, err := Run(context.Background(), s, PassiveBot{}, PassiveBot{}, 50, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Winner != game.OwnerNeutral {
		t.Fatalf("winner=%v want draw", res.Winner)
	}
	if res.Turns != 50 {
		t.Fatalf("turns=%d want=50", res.Turns)
	}
}

func TestRun_Cancellation(t *testing.T) {
	s := mustState(t, []game.Planet{
		{ID: 0, Owner: game.OwnerMe, Ships: 10, Growth: 1},
		{ID: 1, Owner: game.OwnerEnemy, Ships: 10, Growth: 1, X: 6},
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, s, PassiveBot{}, PassiveBot{}, 50, nil); err == nil {
		t.Fatalf("cancelled run returned no error")
	}
}
