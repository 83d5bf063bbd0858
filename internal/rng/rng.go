// Package rng derives per-trajectory seeds: trajectory i of a solve uses
// seed base_seed + i, so a solve is reproducible trajectory-by-trajectory
// regardless of how many workers ran it. This is factored out of the
// teacher's pkg/solver/mccfr.go, which carried a single *rand.Rand field
// on the MCCFR solver instead of a per-worker derivation.
package rng

import "math/rand"

// Derive returns a fast, seedable PRNG for trajectory i of a solve
// seeded with base. The engine does not require cryptographic quality,
// so math/rand's default source is sufficient.
func Derive(base uint64, i uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(base + i)))
}
