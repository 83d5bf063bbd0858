package engine

import "math/rand"

// Game is the polymorphic boundary the MCCFR engine consumes. Node and
// State are opaque to the engine: Node is addressed only through
// Done/Turn/Next/Play/Eval/Index, and State is whatever
// chance-determined information the adapter needs, produced once per
// trajectory by Init and threaded through unchanged.
//
// Node is realized as a Go generic type parameter rather than an
// interface so that concrete, non-boxed Node/State values flow through
// the hot traversal loop.
type Game[Node, State any] interface {
	// Done reports whether node is terminal (no legal actions).
	Done(node Node) bool

	// Turn returns which player (0 or 1) acts at node. Undefined if
	// Done(node).
	Turn(node Node) int

	// Next returns the number of legal actions at node, >= 1. Undefined
	// if Done(node).
	Next(node Node) int

	// Init samples a chance outcome (a deal), consuming rng entropy, and
	// returns the resulting per-trajectory State.
	Init(rng *rand.Rand) State

	// Root returns the initial decision node. Immutable across calls.
	Root() Node

	// Play returns the deterministic child reached by taking action a
	// (0 <= a < Next(node)) at node.
	Play(node Node, a int) Node

	// Eval returns the utility to player 0 at a terminal node, given
	// state. Undefined at non-terminal nodes.
	Eval(node Node, state State) float64

	// Index returns the information-set index in [0, N) for node and
	// state. Stable and collision-free: two states that index to the
	// same value at different nodes must agree on Next(node) and on
	// which player acts.
	Index(node Node, state State) int

	// Size returns a slice of length N where Size()[k] is the action
	// count for infoset k. No entry may be zero; every entry must equal
	// Next(node) for any node that maps to k via Index.
	Size() []int
}
