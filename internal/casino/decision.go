package casino

import "fmt"

// Action is the kind of a Decision.
type Action uint8

const (
	Fold Action = iota
	Check
	Call
	Bet
	AllIn
)

var actionNames = [...]string{"fold", "check", "call", "bet", "all-in"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// Decision is a player's answer to a betting prompt. Amount is the player's
// total commitment for the hand after acting, not the increment. Decisions
// are plain values; build them with the constructors below.
type Decision struct {
	Action Action
	Amount int
}

// FoldDecision gives up the hand.
func FoldDecision() Decision { return Decision{Action: Fold} }

// CheckDecision stands pat when already level with the current bet.
func CheckDecision() Decision { return Decision{Action: Check} }

// CallDecision matches currentBet.
func CallDecision(currentBet int) Decision { return Decision{Action: Call, Amount: currentBet} }

// BetDecision commits amount in total, raising the current bet in a bet
// round.
func BetDecision(amount int) Decision { return Decision{Action: Bet, Amount: amount} }

// AllInDecision commits the player's whole stack; amount must equal the
// amount already in plus the remaining bankroll.
func AllInDecision(amount int) Decision { return Decision{Action: AllIn, Amount: amount} }

func (d Decision) String() string {
	switch d.Action {
	case Fold, Check:
		return d.Action.String()
	}
	return fmt.Sprintf("%s %d", d.Action, d.Amount)
}
