// Package kuhn implements 3-card Kuhn poker as an engine.Game, used only
// to exercise and test the core MCCFR engine. It is not part of the
// solver's core.
package kuhn

import (
	"math/rand"

	"github.com/cfrbound/mccfr-solver/engine"
)

// Card ranks, lowest to highest.
const (
	Jack = iota
	Queen
	King
)

// State is the per-trajectory deal: each player's private card. Cheaply
// cloneable (a 2-int value) and safe to read concurrently.
type State struct {
	Card0 int
	Card1 int
}

// Node indexes into the fixed game tree below. The tree never changes
// shape at runtime, so a plain int is sufficient: the engine only
// assumes a fixed positive number of children addressable by an integer
// action index.
type Node int

const (
	nodeP0Initial  Node = iota // history "": P0 checks or bets
	nodeP1AfterChk             // history "x": P1 checks or bets
	nodeP1FaceBet              // history "b": P1 calls or folds
	nodeXX                     // history "xx": showdown, pot 2
	nodeP0FaceBet              // history "xb": P0 calls or folds
	nodeBC                     // history "bc": showdown, pot 4
	nodeBF                     // history "bf": P1 folded, P0 wins 1
	nodeXBC                    // history "xbc": showdown, pot 4
	nodeXBF                    // history "xbf": P0 folded, P1 wins 1
)

type termKind int

const (
	showdown termKind = iota
	p0Wins
	p1Wins
)

type nodeInfo struct {
	terminal bool
	player   int // acting player; -1 if terminal
	children [2]Node
	kind     termKind
	net      float64 // magnitude of the net profit/loss at a terminal
}

// Kuhn is the full 3-card Kuhn poker game tree: 12 information sets,
// each with 2 legal actions.
type Kuhn struct {
	nodes map[Node]nodeInfo
}

// New builds the Kuhn poker game tree.
func New() *Kuhn {
	nodes := map[Node]nodeInfo{
		nodeP0Initial:  {player: 0, children: [2]Node{nodeP1AfterChk, nodeP1FaceBet}},
		nodeP1AfterChk: {player: 1, children: [2]Node{nodeXX, nodeP0FaceBet}},
		nodeP1FaceBet:  {player: 1, children: [2]Node{nodeBC, nodeBF}},
		nodeP0FaceBet:  {player: 0, children: [2]Node{nodeXBC, nodeXBF}},

		nodeXX:  {terminal: true, player: -1, kind: showdown, net: 1},
		nodeBC:  {terminal: true, player: -1, kind: showdown, net: 2},
		nodeBF:  {terminal: true, player: -1, kind: p0Wins, net: 1},
		nodeXBC: {terminal: true, player: -1, kind: showdown, net: 2},
		nodeXBF: {terminal: true, player: -1, kind: p1Wins, net: 1},
	}
	return &Kuhn{nodes: nodes}
}

var _ engine.Game[Node, State] = (*Kuhn)(nil)

func (k *Kuhn) Done(n Node) bool { return k.nodes[n].terminal }

func (k *Kuhn) Turn(n Node) int { return k.nodes[n].player }

func (k *Kuhn) Next(n Node) int { return 2 }

// Init deals two distinct cards from {Jack, Queen, King} without
// replacement, one per player.
func (k *Kuhn) Init(rng *rand.Rand) State {
	perm := rng.Perm(3)
	return State{Card0: perm[0], Card1: perm[1]}
}

func (k *Kuhn) Root() Node { return nodeP0Initial }

func (k *Kuhn) Play(n Node, a int) Node { return k.nodes[n].children[a] }

// Eval returns the utility to player 0 at a terminal node. Fold
// terminals pay the posted money of the loser to the winner; showdown
// terminals compare the two private cards and pay the pot from the
// loser to the winner.
func (k *Kuhn) Eval(n Node, s State) float64 {
	info := k.nodes[n]
	switch info.kind {
	case p0Wins:
		return info.net
	case p1Wins:
		return -info.net
	default: // showdown
		if s.Card0 == s.Card1 {
			return 0
		}
		if s.Card0 > s.Card1 {
			return info.net
		}
		return -info.net
	}
}

// Index maps a non-terminal node and state to one of the 12 information
// sets. It depends only on the card of the player about to act at that
// node, never on the opponent's card.
func (k *Kuhn) Index(n Node, s State) int {
	switch n {
	case nodeP0Initial:
		return s.Card0
	case nodeP1AfterChk:
		return 3 + s.Card1
	case nodeP1FaceBet:
		return 6 + s.Card1
	case nodeP0FaceBet:
		return 9 + s.Card0
	default:
		panic("kuhn: Index called on a node with no information set")
	}
}

// Size reports 2 legal actions for every one of the 12 information sets.
func (k *Kuhn) Size() []int {
	size := make([]int, 12)
	for i := range size {
		size[i] = 2
	}
	return size
}

// NonTerminalNodes returns the four decision-node types, used by this
// package's indexing-coverage test.
func NonTerminalNodes() []Node {
	return []Node{nodeP0Initial, nodeP1AfterChk, nodeP1FaceBet, nodeP0FaceBet}
}
