package holdem

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfrbound/mccfr-solver/pkg/cards"
)

// tinyTree builds a single preflop decision (fold vs. call-to-showdown)
// with hand-picked committed-stack numbers, so Eval's two terminal
// conventions can each be pinned to one exact literal.
func tinyTree() []ActionNode {
	return []ActionNode{
		{I: 0, T: 0, R: uint8(Preflop), A: ActionShowdown, H: "", S: [2]int32{50, 100}, Children: []int{1, 2}},
		{T: 0, R: uint8(Preflop), A: ActionFold, H: "f", S: [2]int32{50, 100}},
		{R: uint8(River), A: ActionShowdown, H: "c", S: [2]int32{1000, 1000}},
	}
}

func TestHoldem_WellFormed(t *testing.T) {
	h, err := New(tinyTree(), [4]ClusterTable{})
	require.NoError(t, err)

	assert.False(t, h.Done(0))
	assert.True(t, h.Done(1))
	assert.True(t, h.Done(2))

	assert.Equal(t, 0, h.Turn(0))
	assert.Equal(t, 2, h.Next(0))
	assert.Equal(t, NodeID(1), h.Play(0, 0))
	assert.Equal(t, NodeID(2), h.Play(0, 1))
	assert.Equal(t, NodeID(0), h.Root())

	require.Len(t, h.Size(), Clusters[Preflop])
	assert.Equal(t, 2, h.Size()[0])
}

// TestHoldem_FoldPayoff pins the exact fold-terminal payoff: player 0
// folding loses exactly their own committed stack to player 1.
func TestHoldem_FoldPayoff(t *testing.T) {
	h, err := New(tinyTree(), [4]ClusterTable{})
	require.NoError(t, err)

	got := h.Eval(1, State{})
	assert.Equal(t, -50.0, got)
}

// TestHoldem_ShowdownPayoff pins the exact showdown-terminal payoff:
// player 0 holding the stronger hand wins exactly player 1's committed
// stack.
func TestHoldem_ShowdownPayoff(t *testing.T) {
	h, err := New(tinyTree(), [4]ClusterTable{})
	require.NoError(t, err)

	aces := CardSet(0).Add(cards.NewCard(cards.Ace, cards.Spades)).Add(cards.NewCard(cards.Ace, cards.Hearts))
	kings := CardSet(0).Add(cards.NewCard(cards.King, cards.Spades)).Add(cards.NewCard(cards.King, cards.Hearts))
	board := CardSet(0).
		Add(cards.NewCard(cards.Two, cards.Clubs)).
		Add(cards.NewCard(cards.Seven, cards.Diamonds)).
		Add(cards.NewCard(cards.Nine, cards.Clubs)).
		Add(cards.NewCard(cards.Jack, cards.Diamonds)).
		Add(cards.NewCard(cards.Three, cards.Spades))

	state := State{
		Hole:  [2]CardSet{aces, kings},
		Board: [4]CardSet{0, 0, 0, board},
	}

	got := h.Eval(2, state)
	assert.Equal(t, 1000.0, got)
}

// TestHoldem_ShowdownPayoff_Tie pins the tie convention: a board-only
// Broadway straight neither hole pair improves on, so both players play
// the board and split with a net payoff of exactly 0.
func TestHoldem_ShowdownPayoff_Tie(t *testing.T) {
	h, err := New(tinyTree(), [4]ClusterTable{})
	require.NoError(t, err)

	hole0 := CardSet(0).Add(cards.NewCard(cards.Two, cards.Clubs)).Add(cards.NewCard(cards.Seven, cards.Spades))
	hole1 := CardSet(0).Add(cards.NewCard(cards.Four, cards.Hearts)).Add(cards.NewCard(cards.Five, cards.Diamonds))
	board := CardSet(0).
		Add(cards.NewCard(cards.Ten, cards.Clubs)).
		Add(cards.NewCard(cards.Jack, cards.Diamonds)).
		Add(cards.NewCard(cards.Queen, cards.Clubs)).
		Add(cards.NewCard(cards.King, cards.Spades)).
		Add(cards.NewCard(cards.Ace, cards.Hearts))

	state := State{
		Hole:  [2]CardSet{hole0, hole1},
		Board: [4]CardSet{0, 0, 0, board},
	}

	got := h.Eval(2, state)
	assert.Equal(t, 0.0, got)
}

func TestHoldem_Index_UsesActingPlayersHoleCards(t *testing.T) {
	h, err := New(tinyTree(), [4]ClusterTable{})
	require.NoError(t, err)

	aces := CardSet(0).Add(cards.NewCard(cards.Ace, cards.Spades)).Add(cards.NewCard(cards.Ace, cards.Hearts))
	state := State{Hole: [2]CardSet{aces, 0}}

	assert.Equal(t, int(cards.Ace), h.Index(0, state))
}

func TestHoldem_Init_DealsDistinctCards(t *testing.T) {
	h, err := New(tinyTree(), [4]ClusterTable{})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	state := h.Init(rng)

	seen := map[CardSet]bool{}
	for _, cs := range []CardSet{state.Hole[0], state.Hole[1]} {
		for _, c := range cs.Cards() {
			bit := CardSet(0).Add(c)
			require.False(t, seen[bit], "card %v dealt twice", c)
			seen[bit] = true
		}
	}
	for _, c := range state.Board[River].Cards() {
		bit := CardSet(0).Add(c)
		require.False(t, seen[bit], "card %v dealt twice", c)
		seen[bit] = true
	}

	assert.Len(t, state.Board[Flop].Cards(), 3)
	assert.Len(t, state.Board[Turn].Cards(), 4)
	assert.Len(t, state.Board[River].Cards(), 5)
}
