package game

import (
	"testing"
)

func mustState(t *testing.T, planets []Planet, fleets []Fleet) *State {
	t.Helper()
	s, err := NewState(0, planets, fleets)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func TestState_OwnershipPartition(t *testing.T) {
	s := mustState(t, []Planet{
		{ID: 0, Owner: OwnerMe, Ships: 50, Growth: 5},
		{ID: 1, Owner: OwnerEnemy, Ships: 20, Growth: 3, X: 3},
		{ID: 2, Owner: OwnerNeutral, Ships: 10, Growth: 2, Y: 4},
		{ID: 3, Owner: OwnerMe, Ships: 5, Growth: 1, X: 3, Y: 4},
	}, nil)

	mine := s.MyPlanets()
	if len(mine) != 2 || mine[0].ID != 0 || mine[1].ID != 3 {
		t.Fatalf("MyPlanets ids wrong: %+v", mine)
	}
	if got := s.EnemyPlanets(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("EnemyPlanets wrong: %+v", got)
	}
	if got := s.NeutralPlanets(); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("NeutralPlanets wrong: %+v", got)
	}
}

func TestState_FleetPartition(t *testing.T) {
	s := mustState(t, []Planet{
		{ID: 0, Owner: OwnerMe, Ships: 50},
		{ID: 1, Owner: OwnerEnemy, Ships: 20, X: 5},
	}, []Fleet{
		{Owner: OwnerMe, Ships: 10, Src: 0, Dst: 1, TotalTurns: 5, TurnsRemaining: 2},
		{Owner: OwnerEnemy, Ships: 7, Src: 1, Dst: 0, TotalTurns: 5, TurnsRemaining: 4},
	})

	if got := s.MyFleets(); len(got) != 1 || got[0].Ships != 10 {
		t.Fatalf("MyFleets wrong: %+v", got)
	}
	if got := s.EnemyFleets(); len(got) != 1 || got[0].Ships != 7 {
		t.Fatalf("EnemyFleets wrong: %+v", got)
	}
}

func TestState_DistanceTable(t *testing.T) {
	// 3-4-5 triangle: distance is the ceiling of the Euclidean distance.
	s := mustState(t, []Planet{
		{ID: 0},
		{ID: 1, X: 3},
		{ID: 2, X: 3, Y: 4},
	}, nil)

	cases := []struct {
		a, b, want int
	}{
		{0, 0, 0},
		{0, 1, 3},
		{1, 0, 3},
		{1, 2, 4},
		{0, 2, 5},
		{2, 0, 5},
	}
	for _, c := range cases {
		if got := s.Distance(c.a, c.b); got != c.want {
			t.Fatalf("Distance(%d,%d)=%d want=%d", c.a, c.b, got, c.want)
		}
	}
}

func TestState_DistanceRoundsUp(t *testing.T) {
	s := mustState(t, []Planet{
		{ID: 0},
		{ID: 1, X: 1, Y: 1}, // sqrt(2) -> 2
	}, nil)
	if got := s.Distance(0, 1); got != 2 {
		t.Fatalf("Distance=%d want=2", got)
	}
}

func TestState_DistanceUnknownIDPanics(t *testing.T) {
	s := mustState(t, []Planet{{ID: 0}}, nil)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown planet id")
		}
	}()
	s.Distance(0, 99)
}

func TestState_RejectsBadInput(t *testing.T) {
	if _, err := NewState(0, []Planet{{ID: 1}}, nil); err == nil {
		t.Fatalf("expected error for id/index mismatch")
	}
	if _, err := NewState(0, []Planet{{ID: 0}}, []Fleet{{Owner: OwnerMe, Ships: 5, Src: 0, Dst: 3}}); err == nil {
		t.Fatalf("expected error for fleet to unknown planet")
	}
	if _, err := NewState(0, []Planet{{ID: 0}}, []Fleet{{Owner: OwnerMe, Ships: 0, Src: 0, Dst: 0}}); err == nil {
		t.Fatalf("expected error for empty fleet")
	}
}

func TestState_CloneIsDeep(t *testing.T) {
	s := mustState(t, []Planet{
		{ID: 0, Owner: OwnerMe, Ships: 50},
		{ID: 1, Owner: OwnerEnemy, Ships: 20, X: 5},
	}, []Fleet{
		{Owner: OwnerMe, Ships: 10, Src: 0, Dst: 1, TotalTurns: 5, TurnsRemaining: 2},
	})

	c := s.Clone()
	c.Planets[0].Ships = 1
	c.Fleets[0].TurnsRemaining = 0

	if s.Planets[0].Ships != 50 {
		t.Fatalf("clone mutated original planet: %d", s.Planets[0].Ships)
	}
	if s.Fleets[0].TurnsRemaining != 2 {
		t.Fatalf("clone mutated original fleet: %d", s.Fleets[0].TurnsRemaining)
	}
	if c.Distance(0, 1) != s.Distance(0, 1) {
		t.Fatalf("clone lost distance table")
	}
}
