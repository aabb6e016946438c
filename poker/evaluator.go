package poker

import (
	"fmt"
	"math/bits"
)

// HandRank is the strength of a hand. Higher values are stronger and any two
// ranks compare with the ordinary integer operators.
//
// Layout: the hand type occupies bits 20..23 and five kicker slots of four
// bits each sit below it, most significant first. A kicker slot holds the
// card rank plus one, so slots a short hand cannot fill stay zero.
type HandRank uint32

// HandType enumerates the categories of poker hands ordered from weakest to
// strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const (
	typeShift   = 20
	kickerBits  = 4
	kickerSlots = 5
	kickerMask  = 1<<kickerBits - 1
)

var handTypeNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (t HandType) String() string {
	if int(t) < len(handTypeNames) {
		return handTypeNames[t]
	}
	return fmt.Sprintf("HandType(%d)", t)
}

// Type returns the category of the hand.
func (hr HandRank) Type() HandType {
	return HandType(hr >> typeShift)
}

// Kicker returns the rank in kicker slot i (0 is most significant). ok is
// false when the slot is empty.
func (hr HandRank) Kicker(i int) (r Rank, ok bool) {
	if i < 0 || i >= kickerSlots {
		return 0, false
	}
	v := (hr >> (kickerBits * (kickerSlots - 1 - i))) & kickerMask
	if v == 0 {
		return 0, false
	}
	return Rank(v - 1), true
}

// String describes the hand, e.g. "Full House, Sevens over Twos".
func (hr HandRank) String() string {
	if hr == 0 {
		return "No Hand"
	}
	k0, _ := hr.Kicker(0)
	k1, _ := hr.Kicker(1)
	switch hr.Type() {
	case StraightFlush:
		if k0 == Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", k0)
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", k0.Plural())
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", k0.Plural(), k1.Plural())
	case Flush:
		return fmt.Sprintf("Flush, %s high", k0)
	case Straight:
		return fmt.Sprintf("Straight, %s high", k0)
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", k0.Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", k0.Plural(), k1.Plural())
	case Pair:
		return fmt.Sprintf("Pair of %s", k0.Plural())
	case HighCard:
		return fmt.Sprintf("High Card, %s", k0)
	}
	return fmt.Sprintf("HandRank(%d)", uint32(hr))
}

// Evaluate ranks a hand of one to seven cards. It fails on empty or
// oversized hands, invalid cards, and duplicates.
func Evaluate(h Hand) (HandRank, error) {
	if h.n == 0 {
		return 0, fmt.Errorf("%w: cannot evaluate an empty hand", ErrHandSize)
	}
	if err := h.Validate(); err != nil {
		return 0, err
	}
	return evaluate(h.cards[:h.n]), nil
}

// EvaluateCards is Evaluate for a loose list of cards.
func EvaluateCards(cards ...Card) (HandRank, error) {
	if len(cards) == 0 || len(cards) > MaxHandSize {
		return 0, fmt.Errorf("%w: %d cards", ErrHandSize, len(cards))
	}
	return Evaluate(NewHand(cards...))
}

// MustEvaluate is like Evaluate but panics on error.
func MustEvaluate(h Hand) HandRank {
	hr, err := Evaluate(h)
	if err != nil {
		panic(err)
	}
	return hr
}

// CompareHands returns 1 if a beats b, -1 if b beats a and 0 on a tie.
func CompareHands(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

// evaluate ranks cards that are already known to be valid and distinct.
func evaluate(cards []Card) HandRank {
	var counts [NumRanks]uint8
	var suitMasks [NumSuits]uint16
	var rankMask uint16
	for _, c := range cards {
		r, s := c.Rank(), c.Suit()
		counts[r]++
		suitMasks[s] |= 1 << r
		rankMask |= 1 << r
	}

	var best HandRank
	for _, m := range suitMasks {
		if bits.OnesCount16(m) < 5 {
			continue
		}
		if hi, ok := straightHigh(m); ok {
			best = max(best, makeRank(StraightFlush, hi))
		}
	}
	if best != 0 {
		return best
	}

	// Group ranks by multiplicity, highest rank first.
	var quads, trips, pairs []Rank
	var buf [3][NumRanks]Rank
	quads, trips, pairs = buf[0][:0], buf[1][:0], buf[2][:0]
	for r := int(Ace); r >= 0; r-- {
		switch counts[r] {
		case 4:
			quads = append(quads, Rank(r))
		case 3:
			trips = append(trips, Rank(r))
		case 2:
			pairs = append(pairs, Rank(r))
		}
	}

	if len(quads) > 0 {
		q := quads[0]
		return makeRank(FourOfAKind, q).withKickers(rankMask&^(1<<q), 1, 1)
	}

	if len(trips) > 0 && (len(trips) > 1 || len(pairs) > 0) {
		t := trips[0]
		var p Rank
		switch {
		case len(trips) > 1 && len(pairs) > 0:
			p = max(trips[1], pairs[0])
		case len(trips) > 1:
			p = trips[1]
		default:
			p = pairs[0]
		}
		return makeRank(FullHouse, t, p)
	}

	for _, m := range suitMasks {
		if bits.OnesCount16(m) >= 5 {
			best = max(best, HandRank(uint32(Flush)<<typeShift).withKickers(m, 0, 5))
		}
	}
	if best != 0 {
		return best
	}

	if hi, ok := straightHigh(rankMask); ok {
		return makeRank(Straight, hi)
	}

	switch {
	case len(trips) > 0:
		t := trips[0]
		return makeRank(ThreeOfAKind, t).withKickers(rankMask&^(1<<t), 1, 2)
	case len(pairs) > 1:
		hi, lo := pairs[0], pairs[1]
		return makeRank(TwoPair, hi, lo).withKickers(rankMask&^(1<<hi|1<<lo), 2, 1)
	case len(pairs) == 1:
		p := pairs[0]
		return makeRank(Pair, p).withKickers(rankMask&^(1<<p), 1, 3)
	}
	return HandRank(uint32(HighCard)<<typeShift).withKickers(rankMask, 0, 5)
}

// makeRank packs a hand type and leading kickers.
func makeRank(t HandType, ranks ...Rank) HandRank {
	hr := HandRank(uint32(t) << typeShift)
	for i, r := range ranks {
		hr |= HandRank(uint32(r)+1) << (kickerBits * (kickerSlots - 1 - i))
	}
	return hr
}

// withKickers fills up to n kicker slots starting at slot from with the
// highest ranks in mask.
func (hr HandRank) withKickers(mask uint16, from, n int) HandRank {
	for i := from; i < from+n && mask != 0; i++ {
		r := bits.Len16(mask) - 1
		mask &^= 1 << r
		hr |= HandRank(uint32(r)+1) << (kickerBits * (kickerSlots - 1 - i))
	}
	return hr
}

// straightHigh returns the top rank of the best straight in mask. The ace
// also plays low, so A-2-3-4-5 is a five high straight.
func straightHigh(mask uint16) (Rank, bool) {
	// Shift up one so bit 0 can hold the low ace.
	ext := uint32(mask)<<1 | uint32(mask>>Ace)&1
	for top := NumRanks; top >= 4; top-- {
		window := uint32(0x1F) << (top - 4)
		if ext&window == window {
			return Rank(top - 1), true
		}
	}
	return 0, false
}

// BestFive returns the strongest five card subset of a five to seven card
// hand, in the hand's original order, together with its rank.
func BestFive(h Hand) ([]Card, HandRank, error) {
	if h.n < 5 {
		return nil, 0, fmt.Errorf("%w: need at least 5 cards, have %d", ErrHandSize, h.n)
	}
	if err := h.Validate(); err != nil {
		return nil, 0, err
	}
	cards := h.cards[:h.n]
	var (
		best     HandRank
		bestPick [5]Card
		pick     [5]Card
	)
	// Choose which (n-5) cards to leave out.
	for skipA := 0; skipA < h.n; skipA++ {
		for skipB := skipA; skipB < h.n; skipB++ {
			if h.n == 5 && (skipA != 0 || skipB != 0) {
				break
			}
			if h.n == 6 && skipA != skipB {
				continue
			}
			if h.n == 7 && skipA == skipB {
				continue
			}
			k := 0
			for i, c := range cards {
				if h.n > 5 && (i == skipA || i == skipB) {
					continue
				}
				pick[k] = c
				k++
			}
			if hr := evaluate(pick[:]); hr > best {
				best, bestPick = hr, pick
			}
		}
	}
	out := make([]Card, 5)
	copy(out, bestPick[:])
	return out, best, nil
}
