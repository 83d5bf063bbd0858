package engine

import (
	"fmt"
	"sync"
)

// Infoset is one record per distinguishable information state in the game.
// R holds cumulative counterfactual regret per action; S holds cumulative
// strategy mass per action. Both have length N, fixed at allocation.
type Infoset struct {
	N int
	R []float64
	S []float64
}

func newInfoset(n int) Infoset {
	return Infoset{
		N: n,
		R: make([]float64, n),
		S: make([]float64, n),
	}
}

// Clone returns a deep copy, used when handing an entry to callers that
// must not observe further mutation.
func (is Infoset) Clone() Infoset {
	out := Infoset{N: is.N, R: make([]float64, is.N), S: make([]float64, is.N)}
	copy(out.R, is.R)
	copy(out.S, is.S)
	return out
}

// entry is one infoset guarded by its own mutex. Two distinct infoset
// indices never alias the same entry, so the lock isolates exactly one
// critical section per index — there are no cross-entry invariants, so
// a single global lock would only add contention.
type entry struct {
	mu      sync.Mutex
	infoset Infoset
}

// Store is the dense, index-addressable arena of infosets allocated once
// at solver start and shared by all worker goroutines for the solve's
// lifetime.
type Store struct {
	entries []*entry
}

// NewStore allocates a Store sized by size, where size[k] is the action
// count for infoset k, as reported by the adapter's Size(). size[k]
// must be >= 1 for every k; a zero entry is a contract violation.
func NewStore(size []int) (Store, error) {
	entries := make([]*entry, len(size))
	for k, n := range size {
		if n < 1 {
			return Store{}, &ContractViolation{
				Invariant: "size() must be >= 1 for every infoset",
				Index:     k,
			}
		}
		is := newInfoset(n)
		entries[k] = &entry{infoset: is}
	}
	return Store{entries: entries}, nil
}

// Len returns the number of infosets in the store.
func (s Store) Len() int { return len(s.entries) }

// Snapshot returns a deep copy of every infoset, indexed identically to
// the Size() the store was allocated from. This is the value handed to
// an Emitter at the end of a solve: ownership transfers with all locks
// released.
func (s Store) Snapshot() []Infoset {
	out := make([]Infoset, len(s.entries))
	for i, e := range s.entries {
		e.mu.Lock()
		out[i] = e.infoset.Clone()
		e.mu.Unlock()
	}
	return out
}

// at returns the entry at index k, panicking with a ContractViolation if
// k is out of range. The engine does not defensively check every adapter
// call, but an out-of-range index is cheap to observe here and is always
// a fatal programming error.
func (s Store) at(k int) *entry {
	if k < 0 || k >= len(s.entries) {
		panic(&ContractViolation{
			Invariant: "index(node, state) must be in [0, N)",
			Index:     k,
		})
	}
	return s.entries[k]
}

// withRegretMatch locks the infoset at k, computes its instantaneous
// strategy via RegretMatch, applies update (the traversing-player branch:
// read r, compute sigma, write r), and returns the strategy that was in
// effect before update ran. The lock is never held across update's
// recursive callers because update itself performs no recursion; callers
// must not call back into the store from within update.
func (s Store) withRegretMatch(k int, n int, update func(sigma []float64, r []float64)) []float64 {
	e := s.at(k)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.infoset.N != n {
		panic(wrapViolation(
			"size()[k] must equal next(node) for every node mapping to k",
			k,
			fmt.Errorf("store has n=%d, node reports n=%d", e.infoset.N, n),
		))
	}

	sigma := RegretMatch(e.infoset.R)
	update(sigma, e.infoset.R)
	return sigma
}

// withAverageStrategy locks the infoset at k, normalizes its cumulative
// strategy S, bumps S by the instantaneous regret-matched strategy (the
// opponent-visit branch of the traversal), and returns the normalized
// average strategy sampling should use.
func (s Store) withAverageStrategy(k int, n int) []float64 {
	e := s.at(k)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.infoset.N != n {
		panic(wrapViolation(
			"size()[k] must equal next(node) for every node mapping to k",
			k,
			fmt.Errorf("store has n=%d, node reports n=%d", e.infoset.N, n),
		))
	}

	sigmaBar := Normalize(e.infoset.S)
	sigma := RegretMatch(e.infoset.R)
	for i := range e.infoset.S {
		e.infoset.S[i] += sigma[i]
	}
	return sigmaBar
}
