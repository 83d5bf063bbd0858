// Package holdem implements heads-up no-limit hold'em as an engine.Game.
// It only *consumes* pre-built inputs — an action-tree file and
// per-street card-cluster tables: constructing those inputs is
// external-tool work (see cmd/gen-actiontree and cmd/gen-clusters), not
// part of the solver core.
package holdem

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// ActionNode is one record of the action-tree file: an information-set
// base index i, the acting player t, the betting round r, a
// terminal-action marker a ('f' for fold, 0 for showdown/non-terminal),
// a diagnostic history string h, each player's committed stack s (in
// chips — hundredths of a big blind, per cmd/gen-actiontree's
// chipScale, to keep tree construction on integer arithmetic), and the
// child node indices.
type ActionNode struct {
	I        int      `json:"i"`
	T        uint8    `json:"t"`
	R        uint8    `json:"r"`
	A        byte     `json:"a"`
	H        string   `json:"h"`
	S        [2]int32 `json:"s"`
	Children []int    `json:"children"`
}

// Terminal-action markers for ActionNode.A.
const (
	ActionFold     byte = 'f'
	ActionShowdown byte = 0
)

// LoadActionTree reads the action-tree file produced by an external tool
// (e.g. cmd/gen-actiontree) and returns its flat node array, indexed
// identically to ActionNode.Children's targets. Load failures are
// surfaced to the caller before a solve begins; the engine core never
// sees them.
func LoadActionTree(path string) ([]ActionNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "holdem: reading action tree %q", path)
	}

	var nodes []ActionNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, errors.Wrapf(err, "holdem: parsing action tree %q", path)
	}
	if len(nodes) == 0 {
		return nil, errors.Errorf("holdem: action tree %q is empty", path)
	}
	return nodes, nil
}

// SaveActionTree writes nodes in the same schema LoadActionTree reads,
// used by cmd/gen-actiontree.
func SaveActionTree(path string, nodes []ActionNode) error {
	data, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return errors.Wrap(err, "holdem: marshaling action tree")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "holdem: writing action tree %q", path)
}
