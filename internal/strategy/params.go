package strategy

import (
	rand "math/rand/v2"
	"strings"

	"github.com/lox/holdemcasino/internal/casino"
	"github.com/lox/holdemcasino/internal/resultlog"
)

// Factor is a Gaussian multiplier: each draw is N(0,1)*Sigma + Mean.
type Factor struct {
	Mean  float64
	Sigma float64
}

// Draw samples the factor.
func (f Factor) Draw(rng *rand.Rand) float64 {
	if f.Sigma == 0 {
		return f.Mean
	}
	return rng.NormFloat64()*f.Sigma + f.Mean
}

// Parameters holds one Factor per betting round, indexed by casino.Round.
type Parameters struct {
	Rounds [casino.NumRounds]Factor
}

// Constant returns parameters with the same mean in every round and no
// noise.
func Constant(mean float64) Parameters {
	var p Parameters
	for i := range p.Rounds {
		p.Rounds[i] = Factor{Mean: mean}
	}
	return p
}

// RandomPerRound draws an independent mean in [meanMin, meanMax) and sigma
// in [0, sigMax) for every round.
func RandomPerRound(rng *rand.Rand, meanMin, meanMax, sigMax float64) Parameters {
	var p Parameters
	for i := range p.Rounds {
		p.Rounds[i] = Factor{
			Mean:  meanMin + (meanMax-meanMin)*rng.Float64(),
			Sigma: sigMax * rng.Float64(),
		}
	}
	return p
}

// RandomShared draws a single mean and sigma and uses it for every round.
func RandomShared(rng *rand.Rand, meanMin, meanMax, sigMax float64) Parameters {
	f := Factor{
		Mean:  meanMin + (meanMax-meanMin)*rng.Float64(),
		Sigma: sigMax * rng.Float64(),
	}
	var p Parameters
	for i := range p.Rounds {
		p.Rounds[i] = f
	}
	return p
}

// Factor returns the multiplier for round r.
func (p Parameters) Factor(r casino.Round) Factor {
	return p.Rounds[r]
}

// Line renders the sixteen values, mean then sigma for each round in play
// order, each followed by a tab.
func (p Parameters) Line() string {
	var sb strings.Builder
	for _, f := range p.Rounds {
		sb.WriteString(resultlog.FormatFloat(f.Mean))
		sb.WriteByte('\t')
		sb.WriteString(resultlog.FormatFloat(f.Sigma))
		sb.WriteByte('\t')
	}
	return sb.String()
}
