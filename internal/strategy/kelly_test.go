package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/holdemcasino/internal/casino"
	"github.com/lox/holdemcasino/internal/randutil"
	"github.com/lox/holdemcasino/poker"
)

func view(cards string, r casino.Round, currentBet, amountIn, bankroll, active int) casino.View {
	return casino.View{
		Round:      r,
		CurrentBet: currentBet,
		NumActive:  active,
		NumPlayers: active,
		AmountIn:   amountIn,
		Bankroll:   bankroll,
		Cards:      poker.NewHand(poker.MustParseCards(cards)...),
	}
}

func TestKellyFraction(t *testing.T) {
	assert.InDelta(t, 0.775, KellyFraction(0.85, 2), 1e-9)
	assert.InDelta(t, 0.0, KellyFraction(0.1, 9), 1e-9)
	assert.Less(t, KellyFraction(0.05, 9), 0.0)
	assert.InDelta(t, 1.0, KellyFraction(1, 4), 1e-9)
	// n below one is treated as one
	assert.Equal(t, KellyFraction(0.6, 1), KellyFraction(0.6, 0))
}

func TestSizeToDecision(t *testing.T) {
	tests := []struct {
		name    string
		round   casino.Round
		bet, in int
		bank    int
		desired int
		want    casino.Decision
	}{
		{"negative while behind folds", casino.FlopBet, 200, 100, 1000, -5, casino.FoldDecision()},
		{"negative while level checks", casino.FlopBet, 100, 100, 1000, -5, casino.CheckDecision()},
		{"below bet while level checks", casino.FlopBet, 100, 100, 1000, 80, casino.CheckDecision()},
		{"over bankroll goes all-in", casino.FlopBet, 100, 100, 1000, 5000, casino.AllInDecision(1100)},
		{"over bankroll but short folds", casino.FlopCall, 2000, 100, 1000, 5000, casino.FoldDecision()},
		{"below bet while behind folds", casino.FlopBet, 200, 100, 1000, 150, casino.FoldDecision()},
		{"bet round raises", casino.FlopBet, 200, 100, 1000, 400, casino.BetDecision(400)},
		{"bet round at bet calls", casino.FlopBet, 200, 100, 1000, 200, casino.CallDecision(200)},
		{"call round calls", casino.RiverCall, 200, 100, 1000, 400, casino.CallDecision(200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := casino.View{Round: tt.round, CurrentBet: tt.bet, AmountIn: tt.in, Bankroll: tt.bank}
			assert.Equal(t, tt.want, sizeToDecision(v, tt.desired))
		})
	}
}

func TestKellyBetsPremiumPair(t *testing.T) {
	k := NewKelly(randutil.New(11), Constant(1), 2000)
	d := k.Decide(view("As Ah", casino.PocketBet, 50, 50, 9950, 2))
	assert.Equal(t, casino.Bet, d.Action)
	assert.Greater(t, d.Amount, 6500)
	assert.Less(t, d.Amount, 9000)
}

func TestKellyFoldsTrashAgainstAField(t *testing.T) {
	k := NewKelly(randutil.New(11), Constant(1), 2000)
	assert.Equal(t, casino.FoldDecision(), k.Decide(view("7c 2d", casino.PocketBet, 400, 50, 9950, 9)))
	assert.Equal(t, casino.CheckDecision(), k.Decide(view("7c 2d", casino.PocketBet, 50, 50, 9950, 9)))
}

func TestKellyScalesWithFactor(t *testing.T) {
	v := view("Kd Kc 2h 7s 9c", casino.FlopBet, 50, 50, 9950, 2)
	small := NewKelly(randutil.New(5), Constant(0.25), 2000).Decide(v)
	large := NewKelly(randutil.New(5), Constant(0.5), 2000).Decide(v)
	assert.Equal(t, casino.Bet, small.Action)
	assert.Equal(t, casino.Bet, large.Action)
	assert.Greater(t, large.Amount, small.Amount)
}

func TestKellyIsDeterministicForASeed(t *testing.T) {
	v := view("Jh Th 9h 2c 3d Qs", casino.TurnBet, 120, 120, 5000, 4)
	params := RandomPerRound(randutil.New(1), 0.5, 2, 0.5)
	a := NewKelly(randutil.New(77), params, 0).Decide(v)
	b := NewKelly(randutil.New(77), params, 0).Decide(v)
	assert.Equal(t, a, b)
}
