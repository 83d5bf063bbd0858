package engine

import "math/rand"

// worker carries the per-goroutine state needed to run trajectories:
// the shared adapter and store (read/write concurrently across workers,
// safe because all sharing goes through Store's per-entry locks) and a
// worker-local RNG (not safe to share).
type worker[Node, State any] struct {
	game  Game[Node, State]
	store Store
	rng   *rand.Rand
}

// traverse implements the outcome-sampling MCCFR recursion. p is the
// trajectory-traversing player; it returns the expected utility of the
// subtree rooted at node, from player 0's perspective.
func (w *worker[Node, State]) traverse(p int, state State, node Node) float64 {
	if w.game.Done(node) {
		return w.game.Eval(node, state)
	}

	idx := w.game.Index(node, state)
	n := w.game.Next(node)
	turn := w.game.Turn(node)

	if turn == p {
		return w.traverseOwn(p, state, node, idx, n)
	}
	return w.traverseOpponent(p, state, node, idx, n)
}

// traverseOwn is the traversing player's branch: expand every child,
// regret-match, update regret, and return the baseline utility.
func (w *worker[Node, State]) traverseOwn(p int, state State, node Node, idx, n int) float64 {
	u := make([]float64, n)
	for i := 0; i < n; i++ {
		u[i] = w.traverse(p, state, w.game.Play(node, i))
	}

	turn := w.game.Turn(node)
	var baseline float64
	w.store.withRegretMatch(idx, n, func(sigma []float64, r []float64) {
		for i := 0; i < n; i++ {
			baseline += sigma[i] * u[i]
		}

		sign := 1.0
		if turn != 0 {
			sign = -1.0
		}
		for i := 0; i < n; i++ {
			r[i] += (u[i] - baseline) * sign
		}
	})

	return baseline
}

// traverseOpponent is the opponent's branch: bump the opponent's own
// cumulative strategy by their instantaneous regret-matched strategy,
// sample one action from the normalized average strategy, and recurse
// into only that child. The cumulative strategy update happens here, at
// opponent visits, using the opponent's own regrets, not the traversing
// player's.
func (w *worker[Node, State]) traverseOpponent(p int, state State, node Node, idx, n int) float64 {
	sigmaBar := w.store.withAverageStrategy(idx, n)

	a := sampleIndex(sigmaBar, w.rng.Float64())
	return w.traverse(p, state, w.game.Play(node, a))
}
