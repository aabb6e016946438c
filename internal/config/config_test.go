package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemcasino/internal/randutil"
	"github.com/lox/holdemcasino/internal/strategy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "casino.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	require.NoError(t, c.Validate())

	assert.Equal(t, 20, c.PoolSize())
	assert.Equal(t, 1000, c.Casino.Rounds)
	assert.Equal(t, 10000, c.Casino.Bankroll)
	assert.Equal(t, 50, c.Casino.Ante)
	assert.Equal(t, "casino_log_1.txt", c.Casino.Results)
	var constants []float64
	for _, g := range c.Groups {
		constants = append(constants, g.Constant)
	}
	assert.Equal(t, []float64{0.5, 1, 2, 4, 8}, constants)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
casino {
  rounds     = 250
  iterations = 3
  ante       = 25
  max_seats  = 6
  seed       = 99
  results    = "out.txt"
  replace_bottom_half = true
}

group "steady" {
  count    = 4
  constant = 2
}

group "wild" {
  strategy  = "kelly"
  count     = 3
  random    = "shared"
  mean_min  = 0.12
  mean_max  = 8
  sigma_max = 4
}

group "fish" {
  strategy = "call"
  count    = 2
}
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	s := c.Casino
	assert.Equal(t, 250, s.Rounds)
	assert.Equal(t, 3, s.Iterations)
	assert.Equal(t, 25, s.Ante)
	assert.Equal(t, 10000, s.Bankroll)
	assert.Equal(t, 2, s.MinSeats)
	assert.Equal(t, 6, s.MaxSeats)
	assert.Equal(t, int64(99), s.Seed)
	assert.Equal(t, strategy.DefaultTrials, s.SimTrials)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "out.txt", s.Results)
	assert.True(t, s.ReplaceBottomHalf)

	require.Len(t, c.Groups, 3)
	assert.Equal(t, Group{Name: "steady", Strategy: "kelly", Count: 4, Constant: 2}, c.Groups[0])
	assert.Equal(t, RandomShared, c.Groups[1].Random)
	assert.Equal(t, "call", c.Groups[2].Strategy)
	assert.Equal(t, 9, c.PoolSize())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `casino { rounds = `))
	assert.ErrorContains(t, err, "parse")

	_, err = Load(writeConfig(t, `casino { rounds = "many" }`))
	assert.ErrorContains(t, err, "decode")

	_, err = Load(writeConfig(t, `group "x" { colour = "red" }`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"rounds", func(c *Config) { c.Casino.Rounds = 0 }, "rounds"},
		{"iterations", func(c *Config) { c.Casino.Iterations = -1 }, "iterations"},
		{"ante", func(c *Config) { c.Casino.Ante = 0 }, "ante"},
		{"bankroll below ante", func(c *Config) { c.Casino.Bankroll = 10 }, "bankroll"},
		{"too few seats", func(c *Config) { c.Casino.MinSeats = 1 }, "seats"},
		{"too many seats", func(c *Config) { c.Casino.MaxSeats = 11 }, "seats"},
		{"inverted seats", func(c *Config) { c.Casino.MinSeats = 5; c.Casino.MaxSeats = 4 }, "seats"},
		{"trials", func(c *Config) { c.Casino.SimTrials = 0 }, "sim_trials"},
		{"unknown strategy", func(c *Config) { c.Groups[0].Strategy = "bluff" }, "unknown strategy"},
		{"duplicate group", func(c *Config) { c.Groups[1].Name = c.Groups[0].Name }, "twice"},
		{"zero count", func(c *Config) { c.Groups[0].Count = 0 }, "count"},
		{"bad random", func(c *Config) { c.Groups[0].Random = "gauss" }, "random must be"},
		{"inverted means", func(c *Config) {
			c.Groups[0].Random = RandomPerRound
			c.Groups[0].MeanMin = 3
			c.Groups[0].MeanMax = 1
		}, "mean_min"},
		{"small pool", func(c *Config) { c.Groups = c.Groups[:1] }, "cannot fill"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGroupParameters(t *testing.T) {
	rng := randutil.New(1)
	assert.Equal(t, strategy.Constant(4), Group{Constant: 4}.Parameters(rng))

	shared := Group{Random: RandomShared, MeanMin: 1, MeanMax: 2, SigmaMax: 1}.Parameters(rng)
	assert.Equal(t, shared.Rounds[0], shared.Rounds[7])

	perRound := Group{Random: RandomPerRound, MeanMin: 1, MeanMax: 2, SigmaMax: 1}.Parameters(rng)
	assert.NotEqual(t, perRound.Rounds[0], perRound.Rounds[7])
}
