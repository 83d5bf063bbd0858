package holdem

import (
	"math/rand"

	"github.com/cfrbound/mccfr-solver/engine"
	"github.com/cfrbound/mccfr-solver/pkg/cards"
	"github.com/pkg/errors"
)

// NodeID indexes into Holdem.nodes, a flat slice representation of the
// action tree: the tree is a pre-built, externally-produced input, so
// the engine only ever walks it by integer index.
type NodeID int

// State is the per-trajectory deal: each player's two hole cards and the
// cumulative board at each street (Board[3] is always the full 5-card
// river board; showdowns always run the board out regardless of which
// street action ended on).
type State struct {
	Hole  [2]CardSet
	Board [4]CardSet
}

// Holdem is a heads-up no-limit hold'em engine.Game, built from an
// externally-produced action tree and per-street cluster tables.
type Holdem struct {
	nodes    []ActionNode
	clusters [4]ClusterTable // clusters[Preflop] is unused (nil)
	size     []int
}

var _ engine.Game[NodeID, State] = (*Holdem)(nil)

// New builds a Holdem adapter from an already-loaded action tree and
// per-street cluster tables (clusterTables[Preflop] may be nil, since
// the preflop canonical index is already dense).
func New(nodes []ActionNode, clusterTables [4]ClusterTable) (*Holdem, error) {
	h := &Holdem{nodes: nodes, clusters: clusterTables}
	if err := h.buildSize(); err != nil {
		return nil, err
	}
	return h, nil
}

// Load reads the action tree and cluster tables from disk and builds a
// Holdem adapter.
func Load(actionTreePath string, clusterTablePaths [4]string) (*Holdem, error) {
	nodes, err := LoadActionTree(actionTreePath)
	if err != nil {
		return nil, err
	}

	var tables [4]ClusterTable
	for street := Flop; street <= River; street++ {
		path := clusterTablePaths[street]
		if path == "" {
			continue
		}
		table, err := LoadClusterTable(path)
		if err != nil {
			return nil, errors.Wrapf(err, "holdem: loading street %d cluster table", street)
		}
		tables[street] = table
	}

	return New(nodes, tables)
}

// buildSize computes Size() once: for every non-terminal node, every
// bucket in [0, Clusters[node.R]) maps to an infoset with Next(node)
// legal actions.
func (h *Holdem) buildSize() error {
	total := 0
	for _, n := range h.nodes {
		if len(n.Children) > 0 {
			total += Clusters[n.R]
		}
	}

	size := make([]int, total)
	for _, n := range h.nodes {
		if len(n.Children) == 0 {
			continue
		}
		if n.I+Clusters[n.R] > total {
			return errors.Errorf("holdem: node %q infoset base %d overruns store size %d", n.H, n.I, total)
		}
		for i := 0; i < Clusters[n.R]; i++ {
			size[n.I+i] = len(n.Children)
		}
	}

	for k, n := range size {
		if n == 0 {
			return errors.Errorf("holdem: infoset %d has zero legal actions (action tree is malformed)", k)
		}
	}

	h.size = size
	return nil
}

func (h *Holdem) Done(n NodeID) bool { return len(h.nodes[n].Children) == 0 }

func (h *Holdem) Turn(n NodeID) int { return int(h.nodes[n].T) }

func (h *Holdem) Next(n NodeID) int { return len(h.nodes[n].Children) }

func (h *Holdem) Root() NodeID { return 0 }

func (h *Holdem) Play(n NodeID, a int) NodeID {
	return NodeID(h.nodes[n].Children[a])
}

func (h *Holdem) Size() []int { return h.size }

// Init deals two hole cards per player and a 5-card board without
// replacement.
func (h *Holdem) Init(rng *rand.Rand) State {
	var used CardSet
	deal := func() cards.Card {
		for {
			c := cards.Card{Rank: cards.Rank(rng.Intn(13)), Suit: cards.Suit(rng.Intn(4))}
			if !used.Contains(c) {
				used = used.Add(c)
				return c
			}
		}
	}

	var s State
	s.Hole[0] = CardSet(0).Add(deal()).Add(deal())
	s.Hole[1] = CardSet(0).Add(deal()).Add(deal())

	flop := CardSet(0).Add(deal()).Add(deal()).Add(deal())
	turn := flop.Add(deal())
	river := turn.Add(deal())

	s.Board[Preflop] = 0
	s.Board[Flop] = flop
	s.Board[Turn] = turn
	s.Board[River] = river

	return s
}

// Index maps a non-terminal node and state to an information-set index:
// the node's infoset base plus the canonical bucket for the acting
// player's hole cards and the board at that node's street.
func (h *Holdem) Index(n NodeID, s State) int {
	node := h.nodes[n]
	hole := s.Hole[node.T]
	board := s.Board[node.R]
	return node.I + BucketIndex(Street(node.R), hole, board, h.clusters)
}

// Eval returns the utility to player 0 at a terminal node. A fold
// terminal pays the folder's committed stack to the other player
// (ActionNode.T names the player who folded, by this adapter's
// convention — see cmd/gen-actiontree). A showdown terminal compares
// both players' best 7-card hand on the river board and pays the
// loser's committed stack to the winner; ties pay zero.
func (h *Holdem) Eval(n NodeID, s State) float64 {
	node := h.nodes[n]

	if node.A == ActionFold {
		if node.T == 0 {
			return -float64(node.S[0])
		}
		return float64(node.S[1])
	}

	river := s.Board[River].Cards()
	hand0 := cards.Evaluate(append(append([]cards.Card{}, s.Hole[0].Cards()...), river...))
	hand1 := cards.Evaluate(append(append([]cards.Card{}, s.Hole[1].Cards()...), river...))

	switch hand0.Compare(hand1) {
	case 1:
		return float64(node.S[1])
	case -1:
		return -float64(node.S[0])
	default:
		return 0
	}
}
