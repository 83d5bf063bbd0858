package holdem

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/cfrbound/mccfr-solver/engine"
)

// SerializableInfoset is a JSON-friendly representation of one solved
// engine.Infoset, keyed by its dense Store index (node.I + bucket),
// adapted from the teacher's pkg/solver/serialization.go
// SerializableStrategy, which keyed by a string infoset label instead —
// this adapter's information sets are dense integers, not labels.
type SerializableInfoset struct {
	Index       int       `json:"index"`
	RegretSum   []float64 `json:"regret_sum"`
	StrategySum []float64 `json:"strategy_sum"`
}

// SerializableStrategy is the JSON document written by ToJSON and
// SaveStrategy and read by FromJSON and LoadStrategy, adapted from the teacher's
// SerializableProfile. cmd/mccfr-solve does not use it: it encodes the
// []engine.Infoset snapshot directly.
type SerializableStrategy struct {
	Version  string                `json:"version"`
	Infosets []SerializableInfoset `json:"infosets"`
}

// ToJSON serializes a solved snapshot (engine.Store.Snapshot()) to JSON.
func ToJSON(snapshot []engine.Infoset) ([]byte, error) {
	doc := SerializableStrategy{
		Version:  "1.0",
		Infosets: make([]SerializableInfoset, len(snapshot)),
	}
	for i, is := range snapshot {
		doc.Infosets[i] = SerializableInfoset{Index: i, RegretSum: is.R, StrategySum: is.S}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FromJSON parses a strategy document written by ToJSON.
func FromJSON(data []byte) (SerializableStrategy, error) {
	var doc SerializableStrategy
	if err := json.Unmarshal(data, &doc); err != nil {
		return SerializableStrategy{}, errors.Wrap(err, "holdem: parsing strategy JSON")
	}
	return doc, nil
}

// SaveStrategy writes a solved snapshot to path as JSON.
func SaveStrategy(path string, snapshot []engine.Infoset) error {
	data, err := ToJSON(snapshot)
	if err != nil {
		return errors.Wrap(err, "holdem: marshaling strategy")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "holdem: writing strategy %q", path)
}

// LoadStrategy reads a strategy document previously written by
// SaveStrategy.
func LoadStrategy(path string) (SerializableStrategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SerializableStrategy{}, errors.Wrapf(err, "holdem: reading strategy %q", path)
	}
	return FromJSON(data)
}

// AverageStrategy returns the time-averaged strategy for infoset idx
// (Normalize(StrategySum)), the quantity an equilibrium player samples
// from at decision time, matching engine.Normalize's semantics.
func (s SerializableStrategy) AverageStrategy(idx int) []float64 {
	sum := s.Infosets[idx].StrategySum
	total := 0.0
	for _, v := range sum {
		total += v
	}
	if total <= 0 {
		out := make([]float64, len(sum))
		for i := range out {
			out[i] = 1.0 / float64(len(out))
		}
		return out
	}
	out := make([]float64, len(sum))
	for i, v := range sum {
		out[i] = v / total
	}
	return out
}
