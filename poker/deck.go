package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"
)

var (
	// ErrDeckExhausted is returned when dealing from a deck with no
	// remaining cards.
	ErrDeckExhausted = errors.New("deck exhausted")
	// ErrCardNotFound is returned when a card is not where an extraction or
	// replacement expects it.
	ErrCardNotFound = errors.New("card not found")
	// ErrCardDealt is returned when extracting a card that has already been
	// dealt. It wraps ErrCardNotFound.
	ErrCardDealt = fmt.Errorf("%w: already dealt", ErrCardNotFound)
)

// Deck is a 52 card deck with a cursor. Cards before the cursor have been
// dealt; cards from the cursor on remain. The 52 slots always hold a
// permutation of the full deck.
type Deck struct {
	cards    [NumCards]Card
	slot     [NumCards]uint8 // slot[c] is the position of card c in cards
	position int
	rng      *rand.Rand
}

// NewDeck returns a shuffled deck that draws randomness from rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := NewOrderedDeck(rng)
	d.Shuffle()
	return d
}

// NewOrderedDeck returns a deck in canonical index order, 2c first and As
// last. The deck is not shuffled.
func NewOrderedDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("poker: deck requires a random source")
	}
	d := &Deck{rng: rng}
	for i := range d.cards {
		d.cards[i] = Card(i)
		d.slot[i] = uint8(i)
	}
	return d
}

// Shuffle randomly permutes all 52 cards using Fisher-Yates and resets the
// cursor.
func (d *Deck) Shuffle() {
	d.position = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		d.swap(i, d.rng.IntN(i+1))
	}
}

// Reset moves the cursor back to the top without reshuffling.
func (d *Deck) Reset() {
	d.position = 0
}

// Deal returns the next card and advances the cursor.
func (d *Deck) Deal() (Card, error) {
	if d.position >= len(d.cards) {
		return 0, ErrDeckExhausted
	}
	c := d.cards[d.position]
	d.position++
	return c, nil
}

// DealN deals n cards. If fewer than n remain nothing is dealt.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n < 0 || d.position+n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, n, d.Remaining())
	}
	out := make([]Card, n)
	copy(out, d.cards[d.position:d.position+n])
	d.position += n
	return out, nil
}

// Extract removes a specific card from the remaining cards by swapping it to
// the cursor and advancing. It fails if the card was already dealt.
func (d *Deck) Extract(c Card) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %w: value %d", ErrCardNotFound, ErrInvalidCard, uint8(c))
	}
	at := int(d.slot[c])
	if at < d.position {
		return fmt.Errorf("%w: %s", ErrCardDealt, c)
	}
	d.swap(at, d.position)
	d.position++
	return nil
}

// ExtractHand extracts every card of h in order, stopping at the first
// failure. Cards extracted before the failure stay extracted.
func (d *Deck) ExtractHand(h Hand) error {
	for _, c := range h.cards[:h.n] {
		if err := d.Extract(c); err != nil {
			return err
		}
	}
	return nil
}

// Replace returns a dealt card to the remaining cards, undoing an Extract or
// Deal. The card is swapped to the last dealt slot and the cursor moves back
// over it.
func (d *Deck) Replace(c Card) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %w: value %d", ErrCardNotFound, ErrInvalidCard, uint8(c))
	}
	at := int(d.slot[c])
	if at >= d.position {
		return fmt.Errorf("%w: %s has not been dealt", ErrCardNotFound, c)
	}
	d.position--
	d.swap(at, d.position)
	return nil
}

// ExtractRandom removes and returns a uniformly chosen remaining card.
func (d *Deck) ExtractRandom() (Card, error) {
	c, err := d.PickRandom()
	if err != nil {
		return 0, err
	}
	return c, d.Extract(c)
}

// PickRandom returns a uniformly chosen remaining card without removing it.
func (d *Deck) PickRandom() (Card, error) {
	n := d.Remaining()
	if n == 0 {
		return 0, ErrDeckExhausted
	}
	return d.cards[d.position+d.rng.IntN(n)], nil
}

// Position returns the cursor, the number of cards dealt.
func (d *Deck) Position() int { return d.position }

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int { return len(d.cards) - d.position }

// CardAt returns the card in slot i.
func (d *Deck) CardAt(i int) Card { return d.cards[i] }

// IsDealt reports whether c lies in the dealt region.
func (d *Deck) IsDealt(c Card) bool {
	return c.Valid() && int(d.slot[c]) < d.position
}

func (d *Deck) String() string {
	var sb strings.Builder
	for i, c := range d.cards {
		if i == d.position {
			sb.WriteString("| ")
		}
		sb.WriteString(c.String())
		sb.WriteByte(' ')
	}
	return strings.TrimSpace(sb.String())
}

func (d *Deck) swap(i, j int) {
	d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	d.slot[d.cards[i]] = uint8(i)
	d.slot[d.cards[j]] = uint8(j)
}
