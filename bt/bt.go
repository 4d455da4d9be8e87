// Package bt implements the behavior tree that drives per-turn decisions.
//
// A tree is assembled once at startup from four node kinds and evaluated
// fresh from the root every turn. Nodes carry no per-turn state: the only
// inputs are the turn's game.State and the Orders sink the evaluation owns,
// so re-evaluating the same tree against the same snapshot always yields the
// same outcome.
package bt

import (
	"fmt"
	"strings"

	"pwbot/game"
)

// Orders collects the orders issued during one tree evaluation. It replaces
// the global issue-order state a bot loop would otherwise carry: each turn
// gets its own sink and the caller reads the result after the tick.
type Orders struct {
	issued []game.Order
}

// Issue validates and records an order. It returns false (and records
// nothing) if the order is not legal against the given snapshot: source not
// owned by us, more ships than the source holds, a non-positive ship count,
// or a self-targeted move.
func (o *Orders) Issue(s *game.State, ord game.Order) bool {
	src := s.PlanetByID(ord.Src)
	if src == nil || s.PlanetByID(ord.Dst) == nil {
		return false
	}
	if src.Owner != game.OwnerMe {
		return false
	}
	if ord.Ships <= 0 || ord.Ships > src.Ships {
		return false
	}
	if ord.Src == ord.Dst {
		return false
	}
	o.issued = append(o.issued, ord)
	return true
}

// Issued returns the orders recorded so far, in issue order.
func (o *Orders) Issued() []game.Order {
	return o.issued
}

// Node is a behavior tree node. Tick returns whether the node succeeded;
// Action nodes may additionally issue orders through the sink.
type Node interface {
	Name() string
	Tick(s *game.State, out *Orders) bool
}

// CheckFunc is a side-effect-free predicate over the snapshot.
type CheckFunc func(s *game.State) bool

// ActionFunc attempts to issue at most one order through the sink and
// reports whether it did.
type ActionFunc func(s *game.State, out *Orders) bool

// Selector tries children in order and succeeds at the first child that
// succeeds (priority dispatch). It fails only if every child fails.
type Selector struct {
	name     string
	children []Node
}

func NewSelector(name string, children ...Node) *Selector {
	return &Selector{name: name, children: children}
}

func (n *Selector) Name() string { return n.name }

func (n *Selector) Tick(s *game.State, out *Orders) bool {
	for _, c := range n.children {
		if c.Tick(s, out) {
			return true
		}
	}
	return false
}

// Sequence runs children in order and fails at the first child that fails.
// It succeeds only if every child succeeds. Models "preconditions, then act".
type Sequence struct {
	name     string
	children []Node
}

func NewSequence(name string, children ...Node) *Sequence {
	return &Sequence{name: name, children: children}
}

func (n *Sequence) Name() string { return n.name }

func (n *Sequence) Tick(s *game.State, out *Orders) bool {
	for _, c := range n.children {
		if !c.Tick(s, out) {
			return false
		}
	}
	return true
}

// Check wraps a predicate. It never issues orders.
type Check struct {
	name string
	fn   CheckFunc
}

func NewCheck(name string, fn CheckFunc) *Check {
	return &Check{name: name, fn: fn}
}

func (n *Check) Name() string { return n.name }

func (n *Check) Tick(s *game.State, _ *Orders) bool {
	return n.fn(s)
}

// Action wraps a behavior. It succeeds iff the behavior issued an order.
type Action struct {
	name string
	fn   ActionFunc
}

func NewAction(name string, fn ActionFunc) *Action {
	return &Action{name: name, fn: fn}
}

func (n *Action) Name() string { return n.name }

func (n *Action) Tick(s *game.State, out *Orders) bool {
	return n.fn(s, out)
}

// String renders the tree one node per line, indented by depth. Useful for
// logging the assembled policy at startup.
func String(root Node) string {
	var b strings.Builder
	render(&b, root, 0)
	return b.String()
}

func render(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *Selector:
		fmt.Fprintf(b, "%sSelector %s\n", indent, v.name)
		for _, c := range v.children {
			render(b, c, depth+1)
		}
	case *Sequence:
		fmt.Fprintf(b, "%sSequence %s\n", indent, v.name)
		for _, c := range v.children {
			render(b, c, depth+1)
		}
	case *Check:
		fmt.Fprintf(b, "%sCheck %s\n", indent, v.name)
	case *Action:
		fmt.Fprintf(b, "%sAction %s\n", indent, v.name)
	default:
		fmt.Fprintf(b, "%s%s\n", indent, n.Name())
	}
}
