// Command gen-actiontree builds a heads-up no-limit hold'em betting tree
// and writes it as the action-tree file games/holdem.Load reads. Building
// the tree is action abstraction, an external, pre-solve input kept out
// of the solver core entirely; it reuses the teacher's action-generation
// logic from pkg/tree, adapted here to emit a flat, index-addressed
// holdem.ActionNode array rather than a map-keyed tree. When
// --geometric-target is set, bet sizes per street come from
// pkg/tree.GeometricSizing instead of a fixed list, so the pot grows
// toward that target by the river regardless of how many streets remain
// at each decision.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cfrbound/mccfr-solver/games/holdem"
	"github.com/cfrbound/mccfr-solver/pkg/notation"
	"github.com/cfrbound/mccfr-solver/pkg/tree"
)

// chipScale converts big-blind-denominated amounts to the integer chip
// units ActionNode.S stores (hundredths of a big blind), avoiding float
// accumulation error across a multi-street tree.
const chipScale = 100

var cli struct {
	Out        string  `kong:"default='actiontree.json',help='Output action-tree path.'"`
	Stack      float64 `kong:"default='100',help='Starting stack per player, in big blinds.'"`
	SmallBlind float64 `kong:"name='small-blind',default='0.5',help='Small blind size, in big blinds.'"`
	BigBlind   float64 `kong:"name='big-blind',default='1',help='Big blind size, in big blinds.'"`
	BetSizes   string  `kong:"name='bet-sizes',default='0.5,1',help='Comma-separated pot-relative bet sizes offered at every decision. Ignored if --geometric-target is set.'"`

	GeometricTarget float64 `kong:"name='geometric-target',default='0',help='Target pot size in BB for geometric bet sizing across remaining streets (0 disables, falls back to --bet-sizes).'"`
	GeometricSizes  int     `kong:"name='geometric-sizes',default='2',help='Number of bet sizes to offer around the geometric mean when --geometric-target is set.'"`
}

func main() {
	kong.Parse(&cli)
	logger := log.New(os.Stderr)

	betSizes, err := parseBetSizes(cli.BetSizes)
	if err != nil {
		logger.Fatal("parsing bet sizes", "err", err)
	}

	b := &builder{
		betConfig: tree.ActionConfig{
			BetSizes:   betSizes,
			AllowCheck: true,
			AllowCall:  true,
			AllowFold:  true,
		},
		geometricSizes: cli.GeometricSizes,
	}
	if cli.GeometricTarget > 0 {
		b.geo = tree.NewGeometricSizing(cli.GeometricTarget, int(notation.River-notation.Preflop)+1, cli.Stack)
	}

	sb := int32(cli.SmallBlind * chipScale)
	bb := int32(cli.BigBlind * chipScale)
	stack := int32(cli.Stack * chipScale)
	b.startStacks = [2]int32{stack, stack}

	stacks := [2]int32{stack - sb, stack - bb}
	pot := sb + bb
	facing := bb - sb

	root := b.decide(notation.Preflop, pot, stacks, 0, facing, false, "")

	if err := holdem.SaveActionTree(cli.Out, b.nodes); err != nil {
		logger.Fatal("writing action tree", "err", err)
	}
	logger.Info("action tree written", "path", cli.Out, "nodes", len(b.nodes), "infosets", b.nextBase, "root", root)
}

func parseBetSizes(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	sizes := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bet size %q: %w", p, err)
		}
		sizes = append(sizes, v)
	}
	return sizes, nil
}

type builder struct {
	betConfig      tree.ActionConfig
	geo            *tree.GeometricSizing
	geometricSizes int
	nodes          []holdem.ActionNode
	nextBase       int
	startStacks    [2]int32
}

func (b *builder) reserve() int {
	b.nodes = append(b.nodes, holdem.ActionNode{})
	return len(b.nodes) - 1
}

func (b *builder) committed(stacks [2]int32) [2]int32 {
	return [2]int32{b.startStacks[0] - stacks[0], b.startStacks[1] - stacks[1]}
}

// decide builds the subtree rooted at toAct's decision. facing is the
// chip amount toAct must put in to continue (0 if no outstanding bet);
// opened is false only for the first decision of a check-or-bet street,
// so that a second consecutive check closes the street instead of
// looping back to the first actor.
func (b *builder) decide(street notation.Street, pot int32, stacks [2]int32, toAct int, facing int32, opened bool, history string) int {
	idx := b.reserve()
	base := b.nextBase
	b.nextBase += holdem.Clusters[street]

	potBB := float64(pot) / chipScale
	stackBB := float64(stacks[toAct]) / chipScale

	cfg := b.betConfig
	var lastAction *notation.Action
	if facing > 0 {
		cfg = tree.ActionConfig{AllowCall: true, AllowFold: true}
		lastAction = &notation.Action{Type: notation.Bet, Amount: float64(facing) / chipScale}
	} else if b.geo != nil {
		b.geo.NumStreets = int(notation.River-street) + 1
		b.geo.AllIn = stackBB
		cfg.BetSizes = b.geo.CalculateBetSizes(potBB, b.geometricSizes)
	}

	actions := tree.GenerateActions(potBB, stackBB, lastAction, cfg)
	children := make([]int, 0, len(actions))

	for _, a := range actions {
		childHistory := history + a.String()

		switch a.Type {
		case notation.Fold:
			children = append(children, b.foldTerminal(street, toAct, stacks, childHistory))

		case notation.Call:
			childStacks := stacks
			childStacks[toAct] -= facing
			children = append(children, b.closeStreet(street, pot+facing, childStacks, childHistory))

		case notation.Check:
			if !opened {
				children = append(children, b.decide(street, pot, stacks, 1-toAct, 0, true, childHistory))
			} else {
				children = append(children, b.closeStreet(street, pot, stacks, childHistory))
			}

		case notation.Bet:
			amount := int32(a.Amount * chipScale)
			childStacks := stacks
			childStacks[toAct] -= amount
			children = append(children, b.decide(street, pot+amount, childStacks, 1-toAct, amount, true, childHistory))

		default:
			panic(fmt.Sprintf("gen-actiontree: unexpected action type %v", a.Type))
		}
	}

	if len(children) == 0 {
		panic(fmt.Sprintf("gen-actiontree: decision node %q produced no legal actions", history))
	}

	b.nodes[idx] = holdem.ActionNode{
		I:        base,
		T:        uint8(toAct),
		R:        uint8(street),
		A:        holdem.ActionShowdown,
		H:        history,
		S:        b.committed(stacks),
		Children: children,
	}
	return idx
}

// closeStreet advances to the next street's first decision (player 0
// acts first on every post-flop street in this heads-up layout), or to
// a showdown terminal once the river closes.
func (b *builder) closeStreet(street notation.Street, pot int32, stacks [2]int32, history string) int {
	if street == notation.River {
		return b.showdownTerminal(pot, stacks, history)
	}
	return b.decide(street+1, pot, stacks, 0, 0, false, history)
}

func (b *builder) foldTerminal(street notation.Street, folder int, stacks [2]int32, history string) int {
	idx := b.reserve()
	b.nodes[idx] = holdem.ActionNode{
		T: uint8(folder),
		R: uint8(street),
		A: holdem.ActionFold,
		H: history,
		S: b.committed(stacks),
	}
	return idx
}

func (b *builder) showdownTerminal(pot int32, stacks [2]int32, history string) int {
	idx := b.reserve()
	b.nodes[idx] = holdem.ActionNode{
		R: uint8(notation.River),
		A: holdem.ActionShowdown,
		H: history,
		S: b.committed(stacks),
	}
	return idx
}
