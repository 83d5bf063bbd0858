// Command gen-clusters builds the per-street card-cluster tables
// games/holdem.Load reads, a precomputed input to the solver core never
// built by it. It reuses the teacher's equity/potential bucketing,
// pkg/abstraction.Bucketer and pkg/equity.Calculator, sampling
// representative hole+board combinations per street and recording each
// one's bucket at its postflop raw index.
package main

import (
	"math/rand"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cfrbound/mccfr-solver/games/holdem"
	"github.com/cfrbound/mccfr-solver/pkg/abstraction"
	"github.com/cfrbound/mccfr-solver/pkg/cards"
	"github.com/cfrbound/mccfr-solver/pkg/notation"
)

var cli struct {
	OutDir        string `kong:"name='out-dir',default='.',help='Directory to write flop.bin, turn.bin, river.bin into.'"`
	Samples       int    `kong:"default='4000',help='Number of random hole+board combinations sampled per street.'"`
	EquitySamples int    `kong:"name='equity-samples',default='200',help='Monte Carlo runouts per bucketed hand.'"`
	OpponentHands int    `kong:"name='opponent-hands',default='24',help='Size of the synthetic opponent range used for bucketing.'"`
}

var streetFiles = map[holdem.Street]string{
	holdem.Flop:  "flop.bin",
	holdem.Turn:  "turn.bin",
	holdem.River: "river.bin",
}

var boardSize = map[holdem.Street]int{
	holdem.Flop:  3,
	holdem.Turn:  4,
	holdem.River: 5,
}

func main() {
	kong.Parse(&cli)
	logger := log.New(os.Stderr)
	rng := rand.New(rand.NewSource(1))

	for _, street := range []holdem.Street{holdem.Flop, holdem.Turn, holdem.River} {
		table := make(holdem.ClusterTable, holdem.RawModulus)
		filled := 0

		for i := 0; i < cli.Samples; i++ {
			hole, board := dealDistinct(rng, boardSize[street])
			opponents := randomRange(rng, cli.OpponentHands, append(append([]cards.Card{}, hole...), board...))

			bucketer := abstraction.NewBucketerSampled(board, opponents, holdem.Clusters[street], cli.EquitySamples)
			bucket := bucketer.BucketHand(hole)

			holeSet := holdem.CardSet(0).Add(hole[0]).Add(hole[1])
			boardSet := holdem.CardSet(0)
			for _, c := range board {
				boardSet = boardSet.Add(c)
			}

			raw := holdem.PostflopRaw(holeSet, boardSet)
			if table[raw] == 0 {
				filled++
			}
			table[raw] = uint16(bucket)
		}

		path := cli.OutDir + "/" + streetFiles[street]
		if err := holdem.SaveClusterTable(path, table); err != nil {
			logger.Fatal("writing cluster table", "street", street, "err", err)
		}
		logger.Info("cluster table written", "street", street, "path", path,
			"raw_slots", holdem.RawModulus, "slots_filled", filled)
	}
}

func dealDistinct(rng *rand.Rand, boardLen int) ([]cards.Card, []cards.Card) {
	var used = map[cards.Card]bool{}
	deal := func() cards.Card {
		for {
			c := cards.Card{Rank: cards.Rank(rng.Intn(13)), Suit: cards.Suit(rng.Intn(4))}
			if !used[c] {
				used[c] = true
				return c
			}
		}
	}
	hole := []cards.Card{deal(), deal()}
	board := make([]cards.Card, boardLen)
	for i := range board {
		board[i] = deal()
	}
	return hole, board
}

func randomRange(rng *rand.Rand, n int, excluded []cards.Card) []notation.Combo {
	used := map[cards.Card]bool{}
	for _, c := range excluded {
		used[c] = true
	}
	combos := make([]notation.Combo, 0, n)
	for len(combos) < n {
		c1 := cards.Card{Rank: cards.Rank(rng.Intn(13)), Suit: cards.Suit(rng.Intn(4))}
		if used[c1] {
			continue
		}
		c2 := cards.Card{Rank: cards.Rank(rng.Intn(13)), Suit: cards.Suit(rng.Intn(4))}
		if used[c2] || c1 == c2 {
			continue
		}
		combos = append(combos, notation.Combo{Card1: c1, Card2: c2})
	}
	return combos
}
