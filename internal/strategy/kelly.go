// Package strategy provides the bots that play in the casino: a Kelly
// criterion bettor driven by Monte Carlo equity, and a handful of simple
// reference strategies.
package strategy

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemcasino/internal/casino"
	"github.com/lox/holdemcasino/internal/equity"
	"github.com/lox/holdemcasino/internal/randutil"
)

// DefaultTrials is the number of simulated deals behind each Kelly decision.
const DefaultTrials = 100

// KellyFraction returns the Kelly bet fraction for win probability p when
// n players contest the pot, which pays n to 1.
func KellyFraction(p float64, n int) float64 {
	if n < 1 {
		n = 1
	}
	return (p*float64(n) + p - 1) / float64(n)
}

// Kelly sizes its total commitment as factor × kelly × bankroll, where kelly
// comes from a fresh equity estimate and factor is drawn from the round's
// Gaussian multiplier.
type Kelly struct {
	params Parameters
	trials int
	rng    *rand.Rand
	table  *equity.Table
	logger *log.Logger
}

// KellyOption configures a Kelly strategy.
type KellyOption func(*Kelly)

// WithLogger sets the logger for per-decision debug output.
func WithLogger(logger *log.Logger) KellyOption {
	return func(k *Kelly) { k.logger = logger }
}

// NewKelly returns a Kelly strategy. trials <= 0 uses DefaultTrials.
func NewKelly(rng *rand.Rand, params Parameters, trials int, opts ...KellyOption) *Kelly {
	if trials <= 0 {
		trials = DefaultTrials
	}
	// One opponent to start; Decide resizes per prompt.
	table, err := equity.NewTable(randutil.Child(rng), 1)
	if err != nil {
		panic(err)
	}
	k := &Kelly{
		params: params,
		trials: trials,
		rng:    rng,
		table:  table,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Name implements casino.Strategy.
func (k *Kelly) Name() string { return "kelly" }

// Params returns the strategy's multipliers.
func (k *Kelly) Params() Parameters { return k.params }

// Decide implements casino.Strategy.
func (k *Kelly) Decide(v casino.View) casino.Decision {
	p, err := k.winProbability(v)
	if err != nil {
		k.logger.Warn("equity estimate failed", "round", v.Round, "cards", v.Cards.String(), "err", err)
		return passive(v)
	}
	kelly := KellyFraction(p, v.NumActive)
	factor := k.params.Factor(v.Round).Draw(k.rng)
	desired := int(factor * kelly * float64(v.Bankroll))
	d := sizeToDecision(v, desired)
	k.logger.Debug("kelly", "round", v.Round, "p", p, "kelly", kelly, "factor", factor,
		"desired", desired, "current_bet", v.CurrentBet, "decision", d)
	return d
}

func (k *Kelly) winProbability(v casino.View) (float64, error) {
	opponents := min(max(1, v.NumActive-1), equity.MaxOpponents)
	if err := k.table.SetOpponents(opponents); err != nil {
		return 0, err
	}
	cards := v.Cards.Cards()
	res, err := k.table.Simulate(k.trials, cards[0], cards[1], cards[2:]...)
	if err != nil {
		return 0, err
	}
	return res.Probability(), nil
}

// sizeToDecision turns a desired total commitment into a decision the engine
// will accept.
func sizeToDecision(v casino.View, desired int) casino.Decision {
	behind := v.CurrentBet > v.AmountIn
	switch {
	case desired < 0 && behind:
		return casino.FoldDecision()
	case desired <= v.CurrentBet && !behind:
		return casino.CheckDecision()
	case desired-v.AmountIn >= v.Bankroll:
		if v.Stack() < v.CurrentBet {
			return casino.FoldDecision()
		}
		return casino.AllInDecision(v.Stack())
	case desired < v.CurrentBet:
		return casino.FoldDecision()
	case v.Round.IsCall() || desired == v.CurrentBet:
		return casino.CallDecision(v.CurrentBet)
	}
	return casino.BetDecision(desired)
}

// passive checks when level and folds otherwise.
func passive(v casino.View) casino.Decision {
	if v.ToCall() == 0 {
		return casino.CheckDecision()
	}
	return casino.FoldDecision()
}
