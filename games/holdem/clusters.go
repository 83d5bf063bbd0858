package holdem

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
)

// Street identifies a betting round.
type Street uint8

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// Clusters reports the information-set fan-out per street: the number
// of canonical-hand-indexer output buckets at each round. Preflop is
// exact (169 canonical starting hands under suit isomorphism); the
// postflop counts are the card-cluster table sizes an external
// abstraction tool produces.
var Clusters = [4]int{169, 2197, 2197, 2197}

// ClusterTable maps a canonical postflop hand index to a small cluster
// ordinal, one per non-preflop street.
type ClusterTable []uint16

// LoadClusterTable reads a binary table of little-endian uint16 cluster
// ordinals, the format cmd/gen-clusters writes.
func LoadClusterTable(path string) (ClusterTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "holdem: reading cluster table %q", path)
	}
	if len(data)%2 != 0 {
		return nil, errors.Errorf("holdem: cluster table %q has odd byte length", path)
	}

	table := make(ClusterTable, len(data)/2)
	for i := range table {
		table[i] = binary.LittleEndian.Uint16(data[2*i : 2*i+2])
	}
	return table, nil
}

// SaveClusterTable writes table in the format LoadClusterTable reads.
func SaveClusterTable(path string, table ClusterTable) error {
	data := make([]byte, 2*len(table))
	for i, v := range table {
		binary.LittleEndian.PutUint16(data[2*i:2*i+2], v)
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "holdem: writing cluster table %q", path)
}
