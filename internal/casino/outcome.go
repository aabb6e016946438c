package casino

import (
	"fmt"

	"github.com/lox/holdemcasino/poker"
)

// AnomalyKind classifies a recoverable problem seen during a hand.
type AnomalyKind uint8

const (
	AnomalyProtocolViolation AnomalyKind = iota
	AnomalyDegenerateShowdown
)

func (k AnomalyKind) String() string {
	switch k {
	case AnomalyProtocolViolation:
		return "protocol-violation"
	case AnomalyDegenerateShowdown:
		return "degenerate-showdown"
	}
	return fmt.Sprintf("AnomalyKind(%d)", k)
}

// Anomaly is a problem the engine recovered from. Seat is -1 when no single
// player is responsible.
type Anomaly struct {
	Kind  AnomalyKind
	Seat  int
	Round Round
	Err   error
}

func (a Anomaly) Error() string { return a.Err.Error() }

func (a Anomaly) Unwrap() error { return a.Err }

// ActionRecord logs one decision as the engine applied it.
type ActionRecord struct {
	Seat      int
	PlayerID  int
	Round     Round
	Decision  Decision
	AmountIn  int // total committed after the action
	Refund    int // amount returned by the cap or the call-round limit
	Violation bool
}

// Outcome summarises a finished hand. Slices indexed by seat follow the
// order players were passed to PlayHand.
type Outcome struct {
	Pot        int
	FoldCash   int
	CurrentBet int
	Cap        int
	CapActive  bool

	Board []poker.Card

	// Winners holds seat indices in seat order. It is empty for a voided
	// hand.
	Winners       []int
	Payouts       []int
	Contributions []int
	Ranks         []poker.HandRank

	Showdown bool
	Voided   bool

	Actions   []ActionRecord
	Anomalies []Anomaly
}

// Net returns the seat's bankroll change over the hand.
func (o *Outcome) Net(seat int) int {
	return o.Payouts[seat] - o.Contributions[seat]
}

// Won reports whether seat took a share of the pot.
func (o *Outcome) Won(seat int) bool {
	for _, w := range o.Winners {
		if w == seat {
			return true
		}
	}
	return false
}
