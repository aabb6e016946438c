package casino

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemcasino/internal/randutil"
	"github.com/lox/holdemcasino/poker"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// stackedDeck returns a deck that deals cards in the given order first.
func stackedDeck(t *testing.T, cards string) *poker.Deck {
	t.Helper()
	d := poker.NewOrderedDeck(randutil.New(1))
	for _, c := range poker.MustParseCards(cards) {
		require.NoError(t, d.Extract(c))
	}
	d.Reset()
	return d
}

func checkCall() Strategy {
	return StrategyFunc(func(v View) Decision {
		if v.ToCall() == 0 {
			return CheckDecision()
		}
		if v.ToCall() >= v.Bankroll {
			return AllInDecision(v.Stack())
		}
		return CallDecision(v.CurrentBet)
	})
}

func folder() Strategy {
	return StrategyFunc(func(View) Decision { return FoldDecision() })
}

// betOnce bets amount the first time it acts in a bet round, then calls.
func betOnce(amount int) Strategy {
	done := false
	return StrategyFunc(func(v View) Decision {
		if !done && !v.Round.IsCall() {
			done = true
			return BetDecision(amount)
		}
		return checkCall().Decide(v)
	})
}

func newPlayers(strategies ...Strategy) []*Player {
	players := make([]*Player, len(strategies))
	for i, s := range strategies {
		players[i] = NewPlayer(i, fmt.Sprintf("p%d", i), 10000, s)
	}
	return players
}

func totalBankroll(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.Bankroll
	}
	return total
}

func TestFoldToOne(t *testing.T) {
	t.Parallel()

	players := newPlayers(betOnce(200), folder(), folder())
	e := NewEngine(randutil.New(1), quietLogger())
	out, err := e.PlayHand(players)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, out.Winners)
	assert.False(t, out.Showdown)
	assert.Equal(t, 100, out.FoldCash)
	assert.Equal(t, 300, out.Pot)
	assert.Equal(t, 10100, players[0].Bankroll)
	assert.Equal(t, 9950, players[1].Bankroll)
	assert.Equal(t, 9950, players[2].Bankroll)
	assert.Equal(t, 30000, totalBankroll(players))
	assert.Empty(t, out.Board, "no board is dealt once the hand is decided")
	assert.Equal(t, 100, out.Net(0))
}

func TestShowdownBestHandWins(t *testing.T) {
	t.Parallel()

	// p0: As Ah, p1: Kc Kd. Board 2c 7d 9h Js 3s with burns between streets.
	deck := stackedDeck(t, "As Kc Ah Kd 4c 2c7d9h 5c Js 6c 3s")
	players := newPlayers(checkCall(), betOnce(400))
	e := NewEngine(randutil.New(1), quietLogger(), WithDeck(deck))
	out, err := e.PlayHand(players)
	require.NoError(t, err)

	assert.True(t, out.Showdown)
	assert.Equal(t, []int{0}, out.Winners)
	assert.Equal(t, 800, out.Pot)
	assert.Equal(t, poker.MustParseCards("2c7d9hJs3s"), out.Board)
	assert.Equal(t, poker.Pair, out.Ranks[0].Type())
	assert.Greater(t, out.Ranks[0], out.Ranks[1])
	assert.Equal(t, 10400, players[0].Bankroll)
	assert.Equal(t, 9600, players[1].Bankroll)
	assert.Equal(t, 7, players[0].Cards.Len())
}

func TestSplitPotRemainderToFirstSeat(t *testing.T) {
	t.Parallel()

	// The board is a royal flush so the two players left tie.
	deck := stackedDeck(t, "2c 3d 4h 2d 3h 4s 5c AsKsQs 5d Js 5h Ts")
	players := newPlayers(checkCall(), checkCall(), folder())
	e := NewEngine(randutil.New(1), quietLogger(), WithAnte(51), WithDeck(deck))

	out, err := e.PlayHand(players)
	require.NoError(t, err)

	assert.Equal(t, 153, out.Pot)
	assert.Equal(t, []int{0, 1}, out.Winners)
	assert.Equal(t, 77, out.Payouts[0])
	assert.Equal(t, 76, out.Payouts[1])
	assert.Equal(t, 10000+77-51, players[0].Bankroll)
	assert.Equal(t, 10000+76-51, players[1].Bankroll)
	assert.Equal(t, 30000, totalBankroll(players))
}

func TestAllInCapRefundsExcess(t *testing.T) {
	t.Parallel()

	players := newPlayers(
		StrategyFunc(func(v View) Decision {
			if v.Round == PocketBet {
				return AllInDecision(v.Stack())
			}
			return CheckDecision()
		}),
		betOnce(1000),
		checkCall(),
	)
	players[0].Bankroll = 300

	e := NewEngine(randutil.New(2), quietLogger())
	out, err := e.PlayHand(players)
	require.NoError(t, err)

	assert.True(t, out.CapActive)
	assert.Equal(t, 300, out.Cap)
	assert.Equal(t, 300, out.CurrentBet)
	assert.Equal(t, 900, out.Pot)
	for seat := range players {
		assert.Equal(t, 300, out.Contributions[seat], "seat %d", seat)
	}

	var refund ActionRecord
	for _, a := range out.Actions {
		if a.Seat == 1 && a.Decision.Action == Bet {
			refund = a
		}
	}
	assert.Equal(t, 700, refund.Refund)
	assert.Equal(t, 300, refund.AmountIn)
	assert.Equal(t, 300+10000+10000, totalBankroll(players))
}

func TestAnteAllInSetsCap(t *testing.T) {
	t.Parallel()

	players := newPlayers(checkCall(), betOnce(500))
	players[0].Bankroll = DefaultAnte
	e := NewEngine(randutil.New(3), quietLogger())
	out, err := e.PlayHand(players)
	require.NoError(t, err)

	assert.True(t, out.CapActive)
	assert.Equal(t, DefaultAnte, out.Cap)
	assert.Equal(t, 2*DefaultAnte, out.Pot)
	assert.Equal(t, DefaultAnte, out.Contributions[1])
	if players[0].Bankroll == 0 {
		assert.True(t, players[0].Broke)
	}
}

func TestCallRoundDoesNotReopenBetting(t *testing.T) {
	t.Parallel()

	raiser := StrategyFunc(func(v View) Decision {
		switch {
		case v.Round == PocketBet:
			return CheckDecision()
		case v.Round == PocketCall:
			return BetDecision(5000)
		}
		return checkCall().Decide(v)
	})
	players := newPlayers(raiser, betOnce(300))
	e := NewEngine(randutil.New(4), quietLogger())
	out, err := e.PlayHand(players)
	require.NoError(t, err)

	for _, a := range out.Actions {
		if a.Round == PocketCall && a.Seat == 0 {
			assert.Equal(t, 300, a.AmountIn)
			assert.Equal(t, 4700, a.Refund)
		}
	}
	assert.Equal(t, 20000, totalBankroll(players))
}

func TestProtocolViolationsFoldThePlayer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		decision func(View) Decision
	}{
		{"check while behind", func(View) Decision { return CheckDecision() }},
		{"wrong call amount", func(v View) Decision { return CallDecision(v.CurrentBet - 1) }},
		{"bet below current", func(v View) Decision { return BetDecision(v.CurrentBet - 10) }},
		{"bet above bankroll", func(v View) Decision { return BetDecision(v.Stack() + 1) }},
		{"negative amount", func(View) Decision { return BetDecision(-5) }},
		{"partial all-in", func(v View) Decision { return AllInDecision(v.Stack() - 1) }},
		{"unknown action", func(View) Decision { return Decision{Action: Action(42)} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			players := newPlayers(betOnce(200), StrategyFunc(tt.decision), checkCall())
			e := NewEngine(randutil.New(5), quietLogger())
			out, err := e.PlayHand(players)
			require.NoError(t, err)

			require.NotEmpty(t, out.Anomalies)
			a := out.Anomalies[0]
			assert.Equal(t, AnomalyProtocolViolation, a.Kind)
			assert.Equal(t, 1, a.Seat)
			assert.ErrorIs(t, a, ErrProtocolViolation)
			assert.False(t, players[1].Active)
			assert.False(t, out.Won(1))
			assert.Equal(t, 30000, totalBankroll(players))
		})
	}
}

func TestDegenerateShowdownVoidsHand(t *testing.T) {
	t.Parallel()

	players := newPlayers(checkCall(), checkCall())
	e := NewEngine(randutil.New(6), quietLogger())
	h := newHand(e, players)
	require.NoError(t, h.setup())
	h.fold(0)
	h.fold(1)

	require.NoError(t, h.resolve())
	out := h.out
	assert.True(t, out.Voided)
	assert.Empty(t, out.Winners)
	require.Len(t, out.Anomalies, 1)
	assert.Equal(t, AnomalyDegenerateShowdown, out.Anomalies[0].Kind)
	assert.ErrorIs(t, out.Anomalies[0], ErrNoActivePlayers)
	assert.Equal(t, 10000, players[0].Bankroll)
	assert.Equal(t, 10000, players[1].Bankroll)
}

func TestDeckExhaustionVoidsHand(t *testing.T) {
	t.Parallel()

	deck := poker.NewDeck(randutil.New(7))
	_, err := deck.DealN(46)
	require.NoError(t, err)

	players := newPlayers(checkCall(), checkCall())
	e := NewEngine(randutil.New(7), quietLogger(), WithDeck(deck))
	_, err = e.PlayHand(players)
	require.ErrorIs(t, err, poker.ErrDeckExhausted)
	assert.Equal(t, 10000, players[0].Bankroll)
	assert.Equal(t, 10000, players[1].Bankroll)
}

func TestInvalidTable(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(8), quietLogger())
	p := NewPlayer(1, "a", 10000, checkCall())

	tests := map[string][]*Player{
		"one player":   newPlayers(checkCall()),
		"too many":     newPlayers(make([]Strategy, 11)...),
		"nil seat":     {p, nil},
		"seated twice": {p, p},
		"no strategy":  {p, NewPlayer(2, "b", 10000, nil)},
		"short stack":  {p, NewPlayer(2, "b", 10, checkCall())},
	}
	for name, players := range tests {
		_, err := e.PlayHand(players)
		assert.ErrorIs(t, err, ErrInvalidTable, name)
	}
	assert.Equal(t, 10000, p.Bankroll)

	bad := NewEngine(randutil.New(8), nil, WithAnte(0))
	_, err := bad.PlayHand(newPlayers(checkCall(), checkCall()))
	assert.ErrorIs(t, err, ErrInvalidTable)

	assert.Panics(t, func() { NewEngine(nil, nil) })
}

// randomStrategy mixes legal and illegal decisions.
func randomStrategy(seed int64) Strategy {
	rng := randutil.New(seed)
	return StrategyFunc(func(v View) Decision {
		switch rng.IntN(8) {
		case 0:
			return FoldDecision()
		case 1:
			return CheckDecision()
		case 2:
			return CallDecision(v.CurrentBet)
		case 3:
			return BetDecision(v.CurrentBet + rng.IntN(800))
		case 4:
			if rng.IntN(4) == 0 {
				return AllInDecision(v.Stack())
			}
			return CallDecision(v.CurrentBet)
		case 5:
			return BetDecision(rng.IntN(v.Stack() + 1))
		default:
			return checkCall().Decide(v)
		}
	})
}

// invariantChecker wraps a strategy for a single hand and asserts that what
// it observes only moves one way.
type invariantChecker struct {
	t          *testing.T
	inner      Strategy
	lastBet    int
	lastIn     int
	lastActive int
}

func (c *invariantChecker) Name() string { return c.inner.Name() }

func (c *invariantChecker) Decide(v View) Decision {
	assert.GreaterOrEqual(c.t, v.CurrentBet, c.lastBet, "current bet decreased")
	assert.GreaterOrEqual(c.t, v.AmountIn, c.lastIn, "amount in decreased")
	assert.LessOrEqual(c.t, v.AmountIn, v.CurrentBet)
	if c.lastActive > 0 {
		assert.LessOrEqual(c.t, v.NumActive, c.lastActive, "active count grew")
	}
	c.lastBet, c.lastIn, c.lastActive = v.CurrentBet, v.AmountIn, v.NumActive
	return c.inner.Decide(v)
}

func TestMoneyConservationUnderRandomPlay(t *testing.T) {
	t.Parallel()

	rng := randutil.New(9)
	for hand := range 400 {
		n := MinPlayers + rng.IntN(MaxPlayers-MinPlayers+1)
		players := make([]*Player, n)
		for i := range players {
			s := &invariantChecker{t: t, inner: randomStrategy(int64(hand*100 + i))}
			players[i] = NewPlayer(i, fmt.Sprintf("p%d", i), 100+rng.IntN(5000), s)
		}
		before := totalBankroll(players)

		e := NewEngine(randutil.New(int64(hand)), quietLogger())
		out, err := e.PlayHand(players)
		require.NoError(t, err, "hand %d", hand)

		require.Equal(t, before, totalBankroll(players), "hand %d", hand)
		sum := 0
		net := 0
		for seat := range players {
			sum += out.Contributions[seat]
			net += out.Net(seat)
			if out.CapActive {
				require.LessOrEqual(t, out.Contributions[seat], out.Cap)
			}
		}
		require.Equal(t, out.Pot, sum)
		require.Zero(t, net)
		if !out.Voided {
			require.NotEmpty(t, out.Winners)
		}
		for seat, p := range players {
			if p.Active && !out.Voided {
				require.Equal(t, out.CurrentBet, p.AmountIn, "active seat %d not level", seat)
			}
		}
	}
}

func TestRoundTables(t *testing.T) {
	t.Parallel()

	assert.Len(t, Rounds(), NumRounds)
	for i, r := range Rounds() {
		assert.Equal(t, Round(i), r)
		assert.Equal(t, i%2 == 1, r.IsCall())
		assert.Equal(t, Street(i/2), r.Street())
	}
	assert.Equal(t, "FLOP_CALL", FlopCall.String())
	assert.Equal(t, "River", RiverBet.Street().String())
	assert.False(t, Round(9).Valid())

	r, ok := StageTurnBet.Round()
	assert.True(t, ok)
	assert.Equal(t, TurnBet, r)
	_, ok = StageFlopDeal.Round()
	assert.False(t, ok)
	assert.Equal(t, 3, StageFlopDeal.DealCount())
	assert.Equal(t, 1, StageRiverDeal.DealCount())
	assert.Equal(t, "RESOLUTION", StageResolution.String())
}

func TestDecisionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fold", FoldDecision().String())
	assert.Equal(t, "call 100", CallDecision(100).String())
	assert.Equal(t, "all-in 500", AllInDecision(500).String())
}
