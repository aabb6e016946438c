package strategy

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemcasino/internal/casino"
)

// ErrUnknownStrategy is returned by New for an unregistered name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Spec describes a strategy to build.
type Spec struct {
	Name   string
	Params Parameters
	Trials int
	Logger *log.Logger
}

var builders = map[string]func(rng *rand.Rand, s Spec) casino.Strategy{
	"kelly": func(rng *rand.Rand, s Spec) casino.Strategy {
		var opts []KellyOption
		if s.Logger != nil {
			opts = append(opts, WithLogger(s.Logger))
		}
		return NewKelly(rng, s.Params, s.Trials, opts...)
	},
	"call":   func(*rand.Rand, Spec) casino.Strategy { return CallingStation{} },
	"maniac": func(*rand.Rand, Spec) casino.Strategy { return Maniac{} },
	"random": func(rng *rand.Rand, _ Spec) casino.Strategy { return NewRandom(rng) },
	"chart":  func(*rand.Rand, Spec) casino.Strategy { return Chart{} },
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the strategy named by s.
func New(rng *rand.Rand, s Spec) (casino.Strategy, error) {
	build, ok := builders[s.Name]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownStrategy, s.Name, Names())
	}
	return build(rng, s), nil
}
