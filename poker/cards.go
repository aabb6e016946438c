// Package poker provides cards, decks, hands and hand evaluation for
// Texas Hold'em.
//
// A Card is encoded as a single index in the range 0..51 computed as
// suit*13 + rank, where rank runs from Two (0) to Ace (12) and suit from
// Clubs (0) to Spades (3).
package poker

import (
	"errors"
	"fmt"
	"strings"
)

// Rank is a card rank, Two (0) through Ace (12).
type Rank uint8

// Card ranks.
const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks.
const NumRanks = 13

// Suit is a card suit.
type Suit uint8

// Card suits.
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of distinct suits.
const NumSuits = 4

// NumCards is the size of a full deck.
const NumCards = NumRanks * NumSuits

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

var rankNames = [NumRanks]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

var rankPlurals = [NumRanks]string{
	"Twos", "Threes", "Fours", "Fives", "Sixes", "Sevens", "Eights",
	"Nines", "Tens", "Jacks", "Queens", "Kings", "Aces",
}

// ErrInvalidCard is returned for card values or strings that do not name one
// of the 52 cards.
var ErrInvalidCard = errors.New("invalid card")

// Card is one of the 52 playing cards.
type Card uint8

// NewCard returns the card with the given rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(suit)*NumRanks + uint8(rank))
}

// CardFromIndex returns the card with the given canonical index.
func CardFromIndex(index int) (Card, error) {
	if index < 0 || index >= NumCards {
		return 0, fmt.Errorf("%w: index %d", ErrInvalidCard, index)
	}
	return Card(index), nil
}

// Rank returns the rank of the card.
func (c Card) Rank() Rank { return Rank(uint8(c) % NumRanks) }

// Suit returns the suit of the card.
func (c Card) Suit() Suit { return Suit(uint8(c) / NumRanks) }

// Index returns the canonical index suit*13 + rank.
func (c Card) Index() int { return int(c) }

// Valid reports whether c is one of the 52 cards.
func (c Card) Valid() bool { return int(c) < NumCards }

func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

func (r Rank) String() string {
	if int(r) >= NumRanks {
		return fmt.Sprintf("Rank(%d)", r)
	}
	return rankNames[r]
}

// Plural returns the plural rank name, e.g. "Sixes".
func (r Rank) Plural() string {
	if int(r) >= NumRanks {
		return fmt.Sprintf("Rank(%d)s", r)
	}
	return rankPlurals[r]
}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	}
	return fmt.Sprintf("Suit(%d)", s)
}

// ParseCard parses a two character card such as "As", "Td" or "2c". A "10"
// rank prefix is accepted as well as "T". Case is ignored.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	r := strings.IndexByte(rankChars, upper(s[0]))
	u := strings.IndexByte(suitChars, lower(s[1]))
	if r < 0 || u < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	return NewCard(Rank(r), Suit(u)), nil
}

// ParseCards parses a run of cards. Cards may be concatenated ("AsKd") or
// separated by spaces or commas ("As Kd", "As,Kd").
func ParseCards(s string) ([]Card, error) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == ',' || r == '\t' {
			return -1
		}
		return r
	}, s)
	compact = strings.ReplaceAll(compact, "10", "T")
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("%w: %q has an odd number of characters", ErrInvalidCard, s)
	}
	cards := make([]Card, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		c, err := ParseCard(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed tables.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
