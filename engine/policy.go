package engine

// RegretMatch computes the current behavioral strategy for an infoset
// from its cumulative regret vector r:
//
//  1. r+[i] = max(r[i], 0)
//  2. Z = sum(r+)
//  3. sigma[i] = r+[i]/Z if Z > 0, else 1/n for all i.
//
// Pure; the input is never mutated.
func RegretMatch(r []float64) []float64 {
	n := len(r)
	sigma := make([]float64, n)

	z := 0.0
	for i, ri := range r {
		if ri > 0 {
			sigma[i] = ri
			z += ri
		}
	}

	if z > 0 {
		for i := range sigma {
			sigma[i] /= z
		}
		return sigma
	}

	uniform := 1.0 / float64(n)
	for i := range sigma {
		sigma[i] = uniform
	}
	return sigma
}

// Normalize converts a non-negative vector v into a probability
// distribution: v[i]/sum(v) when sum(v) > 0, else uniform 1/n. Defined
// identically to the Z > 0 branch of RegretMatch but over an
// already-non-negative input.
func Normalize(v []float64) []float64 {
	n := len(v)
	out := make([]float64, n)

	sum := 0.0
	for _, x := range v {
		sum += x
	}

	if sum > 0 {
		for i, x := range v {
			out[i] = x / sum
		}
		return out
	}

	uniform := 1.0 / float64(n)
	for i := range out {
		out[i] = uniform
	}
	return out
}

// sampleIndex draws an action index from a probability distribution sigma
// using a uniform draw from rand in [0,1). Falls back to the last index
// on floating-point rounding, which is always well-defined since sigma
// sums to 1 by construction: Normalize and RegretMatch always produce a
// valid distribution, so sampling never fails.
func sampleIndex(sigma []float64, draw float64) int {
	cumulative := 0.0
	for i, p := range sigma {
		cumulative += p
		if draw < cumulative {
			return i
		}
	}
	return len(sigma) - 1
}
