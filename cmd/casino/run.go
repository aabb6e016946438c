package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"

	"github.com/lox/holdemcasino/internal/config"
	"github.com/lox/holdemcasino/internal/tournament"
)

type RunCmd struct {
	Config     string `short:"c" default:"casino.hcl" help:"Path to HCL configuration file (defaults apply when missing)"`
	Seed       int64  `help:"Random seed, 0 for time-based (overrides config)"`
	Rounds     int    `short:"r" help:"Hands per iteration (overrides config)"`
	Iterations int    `short:"i" help:"Number of iterations (overrides config)"`
	Out        string `short:"o" help:"Results file (overrides config)"`
	Top        int    `default:"10" help:"Standings to print, 0 for all"`
}

func (c *RunCmd) Run(g *Globals) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Casino.Seed = c.Seed
	}
	if c.Rounds > 0 {
		cfg.Casino.Rounds = c.Rounds
	}
	if c.Iterations > 0 {
		cfg.Casino.Iterations = c.Iterations
	}
	if c.Out != "" {
		cfg.Casino.Results = c.Out
	}

	logger := g.newLogger(cfg.Casino.LogLevel)
	tour, err := tournament.New(cfg, tournament.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	standings, runErr := tour.Run(ctx)
	played, voided := tour.Played()
	printStandings(standings, c.Top, played, voided, tour.Seed())
	return runErr
}

// printStandings prints the best players first.
func printStandings(standings []tournament.Standing, top, played, voided int, seed int64) {
	best := slices.Clone(standings)
	slices.Reverse(best)
	if top > 0 && top < len(best) {
		best = best[:top]
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Standings after %d hands", played)) +
		dimStyle.Render(fmt.Sprintf("  (seed %d, %d voided)", seed, voided)))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, labelStyle.Render("#\tPlayer\tStrategy\tHands\tWinnings\tPer hand\t95% CI\tShowdown wins"))
	for i, s := range best {
		lo, hi := s.Stats.CI95()
		ratio := s.PerHandRatio()
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t[%.1f, %.1f]\t%d/%d\n",
			i+1, s.Name, s.Strategy, s.HandsPlayed,
			signed(ratio, fmt.Sprintf("%+d", s.Winnings)),
			signed(ratio, fmt.Sprintf("%+.2f", ratio)),
			lo, hi,
			s.Stats.ShowdownWins, s.Stats.ShowdownWins+s.Stats.UncontestedWins)
	}
	w.Flush()
}
