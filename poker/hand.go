package poker

import (
	"errors"
	"fmt"
	"strings"
)

// MaxHandSize is the most cards a hand can hold: two pocket cards plus a
// five card board.
const MaxHandSize = 7

var (
	// ErrHandFull is returned when adding to a hand that already holds
	// MaxHandSize cards.
	ErrHandFull = errors.New("hand is full")
	// ErrHandSize is returned when a hand has too few or too many cards for
	// the requested operation.
	ErrHandSize = errors.New("invalid hand size")
	// ErrDuplicateCard is returned when a hand holds the same card twice.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Hand is an ordered sequence of up to seven cards. The zero value is an
// empty hand ready to use.
//
// Hand does not reject duplicates on Add; use Validate (or Evaluate, which
// calls it) to check a hand before relying on it.
type Hand struct {
	cards [MaxHandSize]Card
	n     int
}

// NewHand returns a hand holding the given cards. It panics if more than
// MaxHandSize cards are given.
func NewHand(cards ...Card) Hand {
	if len(cards) > MaxHandSize {
		panic(fmt.Sprintf("poker: %d cards do not fit in a hand", len(cards)))
	}
	var h Hand
	h.n = copy(h.cards[:], cards)
	return h
}

// Add appends a card to the hand.
func (h *Hand) Add(c Card) error {
	if h.n == MaxHandSize {
		return fmt.Errorf("%w: cannot add %s", ErrHandFull, c)
	}
	h.cards[h.n] = c
	h.n++
	return nil
}

// RemoveLast removes and returns the most recently added card. ok is false if
// the hand is empty.
func (h *Hand) RemoveLast() (c Card, ok bool) {
	if h.n == 0 {
		return 0, false
	}
	h.n--
	return h.cards[h.n], true
}

// Clear empties the hand.
func (h *Hand) Clear() { h.n = 0 }

// Len returns the number of cards in the hand.
func (h Hand) Len() int { return h.n }

// Card returns the i'th card in insertion order.
func (h Hand) Card(i int) Card { return h.cards[:h.n][i] }

// Cards returns a copy of the cards in insertion order.
func (h Hand) Cards() []Card {
	out := make([]Card, h.n)
	copy(out, h.cards[:h.n])
	return out
}

// Contains reports whether the hand holds c.
func (h Hand) Contains(c Card) bool {
	for _, hc := range h.cards[:h.n] {
		if hc == c {
			return true
		}
	}
	return false
}

// Validate checks that every card is valid and that no card appears twice.
func (h Hand) Validate() error {
	var seen uint64
	for _, c := range h.cards[:h.n] {
		if !c.Valid() {
			return fmt.Errorf("%w: value %d", ErrInvalidCard, uint8(c))
		}
		bit := uint64(1) << c
		if seen&bit != 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen |= bit
	}
	return nil
}

func (h Hand) String() string {
	var sb strings.Builder
	for i, c := range h.cards[:h.n] {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
