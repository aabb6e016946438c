package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/lox/holdemcasino/internal/equity"
	"github.com/lox/holdemcasino/internal/randutil"
	"github.com/lox/holdemcasino/internal/strategy"
	"github.com/lox/holdemcasino/poker"
)

type OddsCmd struct {
	Pocket      string  `arg:"" help:"Pocket cards, e.g. 'AsKd'"`
	Flop        string  `help:"Three flop cards, e.g. 'Td7s8h'"`
	Turn        string  `help:"Turn card"`
	River       string  `help:"River card"`
	TableSize   int     `default:"1" help:"Opponent hands dealt in each simulated deal"`
	OpponentsIn int     `name:"opponents-in" default:"2" help:"Players contesting the pot, including you, for the Kelly fraction"`
	Bankroll    int     `default:"10000" help:"Bankroll used to size the Kelly bet"`
	Factor      float64 `default:"1" help:"Multiplier applied to the Kelly bet"`
	Trials      int     `short:"t" default:"20000" help:"Simulated deals"`
	Workers     int     `short:"w" help:"Parallel workers (default: number of CPUs)"`
	Seed        int64   `help:"Random seed, 0 for time-based"`
}

func (c *OddsCmd) Run(g *Globals) error {
	pocket, err := poker.ParseCards(c.Pocket)
	if err != nil {
		return fmt.Errorf("pocket: %w", err)
	}
	if len(pocket) != 2 {
		return fmt.Errorf("pocket must be two cards, got %d", len(pocket))
	}
	board, err := c.board()
	if err != nil {
		return err
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := g.newLogger("")
	seed := randutil.Seed(c.Seed)
	logger.Debug("simulating", "pocket", c.Pocket, "board", len(board), "opponents", c.TableSize,
		"trials", c.Trials, "workers", workers, "seed", seed)

	start := time.Now()
	res, err := equity.SimulateParallel(context.Background(), randutil.New(seed),
		c.TableSize, c.Trials, workers, pocket[0], pocket[1], board...)
	if err != nil {
		return err
	}

	p := res.Probability()
	kelly := strategy.KellyFraction(p, c.OpponentsIn)
	bet := max(0, int(c.Factor*kelly*float64(c.Bankroll)))

	hand := poker.NewHand(append(pocket, board...)...)
	fmt.Println(headerStyle.Render("Hand ") + handStyle.Render(hand.String()))
	if len(board) > 0 {
		if rank, err := poker.Evaluate(hand); err == nil {
			fmt.Println(labelStyle.Render("Made:     ") + rank.String())
		}
	}
	fmt.Println(labelStyle.Render("Win:      ") + winStyle.Render(fmt.Sprintf("%.2f%%", 100*p)) +
		dimStyle.Render(fmt.Sprintf("  (%d wins, %d ties of %d vs %d opponents)", res.Wins, res.Ties, res.Trials, c.TableSize)))
	fmt.Println(labelStyle.Render("Kelly:    ") + signed(kelly, fmt.Sprintf("%.4f", kelly)))
	fmt.Println(labelStyle.Render("Kelly bet: ") + fmt.Sprintf("%d", bet))
	fmt.Println(dimStyle.Render(fmt.Sprintf("seed %d, %s", seed, time.Since(start).Round(time.Millisecond))))
	return nil
}

func (c *OddsCmd) board() ([]poker.Card, error) {
	var board []poker.Card
	for _, part := range []struct {
		name, cards string
		want        int
	}{{"flop", c.Flop, 3}, {"turn", c.Turn, 1}, {"river", c.River, 1}} {
		if part.cards == "" {
			continue
		}
		cards, err := poker.ParseCards(part.cards)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", part.name, err)
		}
		if len(cards) != part.want {
			return nil, fmt.Errorf("%s must be %d cards, got %d", part.name, part.want, len(cards))
		}
		board = append(board, cards...)
	}
	switch {
	case c.Turn != "" && c.Flop == "":
		return nil, fmt.Errorf("turn given without a flop")
	case c.River != "" && c.Turn == "":
		return nil, fmt.Errorf("river given without a turn")
	}
	return board, nil
}
