package casino

import "github.com/lox/holdemcasino/poker"

// View is what a strategy sees when asked to act. Cards holds the player's
// pocket cards followed by the board dealt so far.
type View struct {
	Round      Round
	CurrentBet int
	NumActive  int
	NumPlayers int
	Seat       int
	AmountIn   int
	Bankroll   int
	Cards      poker.Hand
}

// ToCall returns the increment needed to match the current bet.
func (v View) ToCall() int { return max(0, v.CurrentBet-v.AmountIn) }

// Stack returns the largest total commitment the player can make.
func (v View) Stack() int { return v.AmountIn + v.Bankroll }

// Strategy decides how a player acts. Decide is called once per prompt and
// must return a fresh Decision; the engine validates it.
type Strategy interface {
	Name() string
	Decide(v View) Decision
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(v View) Decision

// Name implements Strategy.
func (f StrategyFunc) Name() string { return "func" }

// Decide implements Strategy.
func (f StrategyFunc) Decide(v View) Decision { return f(v) }

// Player is a seat holder. The tournament owns players across hands; the
// engine borrows them for one hand at a time and mutates the per-hand fields
// and Bankroll.
type Player struct {
	ID       int
	Name     string
	Strategy Strategy

	Bankroll int
	Broke    bool

	// Per-hand state, reset by the engine at the start of every hand.
	Cards    poker.Hand
	Active   bool
	AmountIn int
	Rank     poker.HandRank

	// Tournament bookkeeping.
	Winnings    int
	HandsPlayed int
}

// NewPlayer returns a player with the given bankroll.
func NewPlayer(id int, name string, bankroll int, strategy Strategy) *Player {
	return &Player{ID: id, Name: name, Bankroll: bankroll, Strategy: strategy}
}

// ResetHand clears per-hand state.
func (p *Player) ResetHand() {
	p.Cards.Clear()
	p.Active = true
	p.AmountIn = 0
	p.Rank = 0
}

// LeaveTable clears per-hand state and marks the player idle.
func (p *Player) LeaveTable() {
	p.ResetHand()
	p.Active = false
}

// PerHandRatio returns average winnings per hand played.
func (p *Player) PerHandRatio() float64 {
	if p.HandsPlayed == 0 {
		return 0
	}
	return float64(p.Winnings) / float64(p.HandsPlayed)
}
