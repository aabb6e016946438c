package poker

import "fmt"

// Strength counts how a pocket pair fares against every possible opponent
// pocket pair on a fixed board.
type Strength struct {
	Ahead  int
	Tied   int
	Behind int
}

// Total returns the number of opponent hands enumerated.
func (s Strength) Total() int { return s.Ahead + s.Tied + s.Behind }

// Probability returns (ahead + tied/2) / total, or 0 when nothing was
// enumerated.
func (s Strength) Probability() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return (float64(s.Ahead) + float64(s.Tied)/2) / float64(total)
}

// HandStrength compares pocket plus board against every two card holding an
// opponent could have from the unseen cards. Only the cards on the board now
// count; no future cards are dealt.
func HandStrength(pocket [2]Card, board Hand) (Strength, error) {
	if board.n > 5 {
		return Strength{}, fmt.Errorf("%w: board has %d cards", ErrHandSize, board.n)
	}
	mine := board
	mine.cards[mine.n], mine.cards[mine.n+1] = pocket[0], pocket[1]
	mine.n += 2
	myRank, err := Evaluate(mine)
	if err != nil {
		return Strength{}, err
	}

	var known uint64
	for _, c := range mine.cards[:mine.n] {
		known |= 1 << c
	}

	var s Strength
	opp := board
	for a := Card(0); a < NumCards; a++ {
		if known&(1<<a) != 0 {
			continue
		}
		_ = opp.Add(a)
		for b := a + 1; b < NumCards; b++ {
			if known&(1<<b) != 0 {
				continue
			}
			_ = opp.Add(b)
			switch oppRank := evaluate(opp.cards[:opp.n]); {
			case myRank > oppRank:
				s.Ahead++
			case myRank < oppRank:
				s.Behind++
			default:
				s.Tied++
			}
			opp.RemoveLast()
		}
		opp.RemoveLast()
	}
	return s, nil
}
