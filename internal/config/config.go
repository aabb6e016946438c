// Package config loads the casino's HCL configuration.
package config

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdemcasino/internal/casino"
	"github.com/lox/holdemcasino/internal/strategy"
)

// Random parameter modes for a group.
const (
	RandomNone     = ""
	RandomShared   = "shared"
	RandomPerRound = "per_round"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config is the complete casino configuration.
type Config struct {
	Casino Settings `hcl:"casino,block"`
	Groups []Group  `hcl:"group,block"`
}

// Settings controls the tournament loop.
type Settings struct {
	Rounds            int    `hcl:"rounds,optional"`
	Iterations        int    `hcl:"iterations,optional"`
	Ante              int    `hcl:"ante,optional"`
	Bankroll          int    `hcl:"bankroll,optional"`
	MinSeats          int    `hcl:"min_seats,optional"`
	MaxSeats          int    `hcl:"max_seats,optional"`
	SimTrials         int    `hcl:"sim_trials,optional"`
	Seed              int64  `hcl:"seed,optional"`
	LogLevel          string `hcl:"log_level,optional"`
	Results           string `hcl:"results,optional"`
	ReplaceBottomHalf bool   `hcl:"replace_bottom_half,optional"`
}

// Group is a batch of players sharing a strategy and parameter recipe.
// Constant sets every mean with no noise; Random draws parameters from
// [MeanMin, MeanMax) and [0, SigmaMax).
type Group struct {
	Name     string  `hcl:"name,label"`
	Strategy string  `hcl:"strategy,optional"`
	Count    int     `hcl:"count,optional"`
	Constant float64 `hcl:"constant,optional"`
	Random   string  `hcl:"random,optional"`
	MeanMin  float64 `hcl:"mean_min,optional"`
	MeanMax  float64 `hcl:"mean_max,optional"`
	SigmaMax float64 `hcl:"sigma_max,optional"`
}

// Parameters draws the Kelly multipliers for one member of the group.
func (g Group) Parameters(rng *rand.Rand) strategy.Parameters {
	switch g.Random {
	case RandomShared:
		return strategy.RandomShared(rng, g.MeanMin, g.MeanMax, g.SigmaMax)
	case RandomPerRound:
		return strategy.RandomPerRound(rng, g.MeanMin, g.MeanMax, g.SigmaMax)
	}
	return strategy.Constant(g.Constant)
}

// Default returns a pool of twenty Kelly players in five constant groups.
func Default() *Config {
	c := &Config{Casino: defaultSettings()}
	for _, g := range []struct {
		name string
		f    float64
	}{{"half", 0.5}, {"one", 1}, {"two", 2}, {"four", 4}, {"eight", 8}} {
		c.Groups = append(c.Groups, Group{Name: g.name, Strategy: "kelly", Count: 4, Constant: g.f})
	}
	return c
}

func defaultSettings() Settings {
	return Settings{
		Rounds:     1000,
		Iterations: 1,
		Ante:       casino.DefaultAnte,
		Bankroll:   10000,
		MinSeats:   2,
		MaxSeats:   9,
		SimTrials:  strategy.DefaultTrials,
		LogLevel:   "info",
		Results:    "casino_log_1.txt",
	}
}

// Load reads filename. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var c Config
	if diags := gohcl.DecodeBody(file.Body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	d := defaultSettings()
	s := &c.Casino
	setDefault(&s.Rounds, d.Rounds)
	setDefault(&s.Iterations, d.Iterations)
	setDefault(&s.Ante, d.Ante)
	setDefault(&s.Bankroll, d.Bankroll)
	setDefault(&s.MinSeats, d.MinSeats)
	setDefault(&s.MaxSeats, d.MaxSeats)
	setDefault(&s.SimTrials, d.SimTrials)
	setDefault(&s.LogLevel, d.LogLevel)
	setDefault(&s.Results, d.Results)

	if len(c.Groups) == 0 {
		c.Groups = Default().Groups
	}
	for i := range c.Groups {
		g := &c.Groups[i]
		setDefault(&g.Strategy, "kelly")
		setDefault(&g.Count, 1)
		if g.Random == RandomNone {
			setDefault(&g.Constant, 1)
		}
	}
}

func setDefault[T comparable](v *T, def T) {
	var zero T
	if *v == zero {
		*v = def
	}
}

// PoolSize returns the total number of players across groups.
func (c *Config) PoolSize() int {
	n := 0
	for _, g := range c.Groups {
		n += g.Count
	}
	return n
}

// Validate checks the configuration is playable.
func (c *Config) Validate() error {
	s := c.Casino
	switch {
	case s.Rounds <= 0:
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalid, s.Rounds)
	case s.Iterations <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalid, s.Iterations)
	case s.Ante <= 0:
		return fmt.Errorf("%w: ante must be positive, got %d", ErrInvalid, s.Ante)
	case s.Bankroll < s.Ante:
		return fmt.Errorf("%w: bankroll %d is below the ante %d", ErrInvalid, s.Bankroll, s.Ante)
	case s.MinSeats < casino.MinPlayers || s.MaxSeats > casino.MaxPlayers || s.MinSeats > s.MaxSeats:
		return fmt.Errorf("%w: seats must satisfy %d <= min_seats <= max_seats <= %d, got %d..%d",
			ErrInvalid, casino.MinPlayers, casino.MaxPlayers, s.MinSeats, s.MaxSeats)
	case s.SimTrials <= 0:
		return fmt.Errorf("%w: sim_trials must be positive, got %d", ErrInvalid, s.SimTrials)
	}

	names := make(map[string]bool, len(c.Groups))
	known := strategy.Names()
	for _, g := range c.Groups {
		if names[g.Name] {
			return fmt.Errorf("%w: group %q defined twice", ErrInvalid, g.Name)
		}
		names[g.Name] = true
		if !slices.Contains(known, g.Strategy) {
			return fmt.Errorf("%w: group %q: unknown strategy %q", ErrInvalid, g.Name, g.Strategy)
		}
		if g.Count <= 0 {
			return fmt.Errorf("%w: group %q: count must be positive", ErrInvalid, g.Name)
		}
		switch g.Random {
		case RandomNone:
		case RandomShared, RandomPerRound:
			if g.MeanMax < g.MeanMin || g.SigmaMax < 0 {
				return fmt.Errorf("%w: group %q: need mean_min <= mean_max and sigma_max >= 0", ErrInvalid, g.Name)
			}
		default:
			return fmt.Errorf("%w: group %q: random must be %q or %q", ErrInvalid, g.Name, RandomShared, RandomPerRound)
		}
	}

	if n := c.PoolSize(); n < s.MaxSeats {
		return fmt.Errorf("%w: pool of %d players cannot fill %d seats", ErrInvalid, n, s.MaxSeats)
	}
	return nil
}
