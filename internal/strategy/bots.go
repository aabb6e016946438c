package strategy

import (
	rand "math/rand/v2"

	"github.com/lox/holdemcasino/internal/casino"
	"github.com/lox/holdemcasino/poker"
)

// CallingStation checks when it can and calls everything else it can
// afford.
type CallingStation struct{}

func (CallingStation) Name() string { return "call" }

func (CallingStation) Decide(v casino.View) casino.Decision {
	return callOrFold(v)
}

// Maniac commits its whole stack at every opportunity.
type Maniac struct{}

func (Maniac) Name() string { return "maniac" }

func (Maniac) Decide(v casino.View) casino.Decision {
	return shove(v)
}

// Random picks uniformly between folding, calling and raising, with raises
// sized up to three times the current bet.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random strategy.
func NewRandom(rng *rand.Rand) *Random { return &Random{rng: rng} }

func (r *Random) Name() string { return "random" }

func (r *Random) Decide(v casino.View) casino.Decision {
	switch n := r.rng.IntN(10); {
	case n < 2:
		return passive(v)
	case n < 7 || v.Round.IsCall():
		return callOrFold(v)
	}
	target := v.CurrentBet + 1 + r.rng.IntN(2*v.CurrentBet+1)
	return raiseTo(v, target)
}

// Chart raises preflop with strong pocket pairs and big aces, plays made
// hands postflop in proportion to their class and otherwise gives up when
// facing a bet.
type Chart struct{}

func (Chart) Name() string { return "chart" }

func (Chart) Decide(v casino.View) casino.Decision {
	if v.Round.Street() == casino.Pocket {
		cards := v.Cards.Cards()
		switch poker.CategorizePocket(cards[0], cards[1]) {
		case poker.CategoryPremium:
			return raiseTo(v, 4*v.CurrentBet)
		case poker.CategoryStrong:
			return raiseTo(v, 2*v.CurrentBet)
		case poker.CategoryMedium:
			return callOrFold(v)
		case poker.CategoryWeak:
			if v.ToCall() <= v.Bankroll/20 {
				return callOrFold(v)
			}
		}
		return passive(v)
	}

	rank, err := poker.Evaluate(v.Cards)
	if err != nil {
		return passive(v)
	}
	switch t := rank.Type(); {
	case t >= poker.Straight:
		return shove(v)
	case t >= poker.TwoPair:
		return raiseTo(v, 2*v.CurrentBet)
	case t == poker.Pair:
		return callOrFold(v)
	}
	return passive(v)
}

// callOrFold checks when level, calls when the stack covers the bet and
// folds otherwise.
func callOrFold(v casino.View) casino.Decision {
	switch {
	case v.ToCall() == 0:
		return casino.CheckDecision()
	case v.Stack() == v.CurrentBet:
		return casino.AllInDecision(v.Stack())
	case v.Stack() > v.CurrentBet:
		return casino.CallDecision(v.CurrentBet)
	}
	return casino.FoldDecision()
}

func shove(v casino.View) casino.Decision {
	if v.Stack() < v.CurrentBet {
		return casino.FoldDecision()
	}
	return casino.AllInDecision(v.Stack())
}

// raiseTo bets target in a bet round, clamped to the stack. In a call round
// or when target does not exceed the current bet it calls instead.
func raiseTo(v casino.View, target int) casino.Decision {
	if v.Round.IsCall() || target <= v.CurrentBet {
		return callOrFold(v)
	}
	if target >= v.Stack() {
		return shove(v)
	}
	return casino.BetDecision(target)
}
