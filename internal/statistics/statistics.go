// Package statistics accumulates per-player results across tournament hands.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/holdemcasino/internal/casino"
)

// HandResult is one player's view of a finished hand.
type HandResult struct {
	Net      int  // chips won or lost
	Seat     int  // 0-based seat
	Showdown bool // hand was decided by evaluation
	Pot      int  // final pot in chips
	Ante     int
}

// SeatStats tracks results for one seat.
type SeatStats struct {
	Hands int
	Sum   float64
}

// Mean returns the average net result from the seat.
func (s SeatStats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Statistics tracks a player's net results.
type Statistics struct {
	Hands  int
	Sum    float64
	SumSq  float64
	Values []float64

	ShowdownWins    int
	UncontestedWins int
	ShowdownNet     float64
	UncontestedNet  float64

	Seats [casino.MaxPlayers]SeatStats

	MaxPot    int
	BigPots   int // pots of at least BigPotAntes antes
	BigPotNet float64
}

// BigPotAntes is the pot size, in antes, counted as a big pot.
const BigPotAntes = 20

// Add records a hand.
func (s *Statistics) Add(r HandResult) {
	net := float64(r.Net)
	s.Hands++
	s.Sum += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	if r.Showdown {
		s.ShowdownNet += net
		if r.Net > 0 {
			s.ShowdownWins++
		}
	} else {
		s.UncontestedNet += net
		if r.Net > 0 {
			s.UncontestedWins++
		}
	}

	if r.Seat >= 0 && r.Seat < len(s.Seats) {
		s.Seats[r.Seat].Hands++
		s.Seats[r.Seat].Sum += net
	}

	s.MaxPot = max(s.MaxPot, r.Pot)
	if r.Ante > 0 && r.Pot >= BigPotAntes*r.Ante {
		s.BigPots++
		s.BigPotNet += net
	}
}

// Mean returns the average net result per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 { return math.Sqrt(s.Variance()) }

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// CI95 returns the 95% confidence interval for the mean.
func (s *Statistics) CI95() (lo, hi float64) {
	margin := 1.96 * s.StdError()
	return s.Mean() - margin, s.Mean() + margin
}

func (s *Statistics) Median() float64 { return s.Percentile(0.5) }

// Percentile returns the linearly interpolated value at p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	p = min(max(p, 0), 1)
	idx := p * float64(len(sorted)-1)
	lo := int(idx)
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	w := idx - float64(lo)
	return sorted[lo]*(1-w) + sorted[lo+1]*w
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.UncontestedWins += other.UncontestedWins
	s.ShowdownNet += other.ShowdownNet
	s.UncontestedNet += other.UncontestedNet
	for i := range s.Seats {
		s.Seats[i].Hands += other.Seats[i].Hands
		s.Seats[i].Sum += other.Seats[i].Sum
	}
	s.MaxPot = max(s.MaxPot, other.MaxPot)
	s.BigPots += other.BigPots
	s.BigPotNet += other.BigPotNet
}

// Validate checks the counters agree with each other.
func (s *Statistics) Validate() error {
	if len(s.Values) != s.Hands {
		return fmt.Errorf("recorded %d values for %d hands", len(s.Values), s.Hands)
	}
	if math.Abs(s.Sum-s.ShowdownNet-s.UncontestedNet) > 1e-6 {
		return fmt.Errorf("net mismatch: total %.2f, showdown %.2f, uncontested %.2f",
			s.Sum, s.ShowdownNet, s.UncontestedNet)
	}
	if wins := s.ShowdownWins + s.UncontestedWins; wins > s.Hands {
		return fmt.Errorf("%d wins in %d hands", wins, s.Hands)
	}
	seated := 0
	for _, seat := range s.Seats {
		seated += seat.Hands
	}
	if seated != s.Hands {
		return fmt.Errorf("seat totals %d do not match %d hands", seated, s.Hands)
	}
	return nil
}
