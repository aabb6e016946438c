// Package tournament runs the casino: it owns a pool of bots, seats random
// tables hand after hand, banks every result and reports standings.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemcasino/internal/casino"
	"github.com/lox/holdemcasino/internal/config"
	"github.com/lox/holdemcasino/internal/randutil"
	"github.com/lox/holdemcasino/internal/resultlog"
	"github.com/lox/holdemcasino/internal/statistics"
	"github.com/lox/holdemcasino/internal/strategy"
)

// Progress is reported every percent of an iteration.
type Progress struct {
	Iteration int
	Round     int
	Rounds    int
	Elapsed   time.Duration
}

// Standing is one player's final position.
type Standing struct {
	resultlog.Standing
	Stats statistics.Statistics
}

// Tournament plays iterations of rounds over a registry of players.
type Tournament struct {
	settings config.Settings
	groups   []config.Group
	seed     int64

	rng    *rand.Rand
	engine *casino.Engine
	pool   *Registry
	nextID int

	clock      quartz.Clock
	logger     *log.Logger
	onProgress func(Progress)

	played int
	voided int
}

// Option configures a Tournament.
type Option func(*Tournament)

// WithClock sets the clock used for elapsed time.
func WithClock(c quartz.Clock) Option {
	return func(t *Tournament) { t.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(t *Tournament) { t.logger = l }
}

// WithProgress registers a callback invoked alongside each progress log.
func WithProgress(fn func(Progress)) Option {
	return func(t *Tournament) { t.onProgress = fn }
}

// New builds the pool described by cfg. A zero seed draws one from the wall
// clock; Seed reports the seed in use.
func New(cfg *config.Config, opts ...Option) (*Tournament, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Tournament{
		settings: cfg.Casino,
		groups:   cfg.Groups,
		seed:     randutil.Seed(cfg.Casino.Seed),
		pool:     &Registry{},
		clock:    quartz.NewReal(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.WithPrefix("tournament")
	t.rng = randutil.New(t.seed)
	t.engine = casino.NewEngine(randutil.Child(t.rng), t.logger.WithPrefix("casino"), casino.WithAnte(t.settings.Ante))

	for _, g := range t.groups {
		for range g.Count {
			e, err := t.newEntry(g)
			if err != nil {
				return nil, err
			}
			t.pool.Add(e)
		}
	}
	return t, nil
}

func (t *Tournament) newEntry(g config.Group) (*Entry, error) {
	rng := randutil.Child(t.rng)
	params := g.Parameters(rng)
	s, err := strategy.New(rng, strategy.Spec{
		Name:   g.Strategy,
		Params: params,
		Trials: t.settings.SimTrials,
		Logger: t.logger.WithPrefix("strategy"),
	})
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", g.Name, err)
	}
	id := t.nextID
	t.nextID++
	p := casino.NewPlayer(id, fmt.Sprintf("%s-%d", g.Name, id), t.settings.Bankroll, s)
	return &Entry{Player: p, Group: g.Name, Params: params}, nil
}

// Seed returns the seed driving the tournament.
func (t *Tournament) Seed() int64 { return t.seed }

// Pool returns the registry.
func (t *Tournament) Pool() *Registry { return t.pool }

// Played returns the number of hands played so far, and how many of them
// were voided.
func (t *Tournament) Played() (played, voided int) { return t.played, t.voided }

// Run plays every iteration and returns the final standings, worst first.
// Cancelling ctx stops between hands and returns the standings so far with
// the context's error.
func (t *Tournament) Run(ctx context.Context) ([]Standing, error) {
	s := t.settings
	start := t.clock.Now()
	every := max(1, s.Rounds/100)

	t.logger.Info("starting", "players", t.pool.Len(), "rounds", s.Rounds,
		"iterations", s.Iterations, "seats", fmt.Sprintf("%d-%d", s.MinSeats, s.MaxSeats), "seed", t.seed)

	for it := range s.Iterations {
		for round := range s.Rounds {
			if err := ctx.Err(); err != nil {
				return t.Standings(), err
			}
			if err := t.PlayRound(); err != nil {
				return t.Standings(), err
			}
			if (round+1)%every == 0 {
				p := Progress{Iteration: it + 1, Round: round + 1, Rounds: s.Rounds, Elapsed: t.clock.Since(start)}
				t.logger.Debug("progress", "iteration", p.Iteration,
					"pct", 100*p.Round/p.Rounds, "elapsed", p.Elapsed.Round(time.Millisecond))
				if t.onProgress != nil {
					t.onProgress(p)
				}
			}
		}

		if err := t.finishIteration(it+1 < s.Iterations); err != nil {
			return t.Standings(), err
		}
		t.logger.Info("iteration complete", "iteration", it+1, "hands", t.played,
			"voided", t.voided, "elapsed", t.clock.Since(start).Round(time.Millisecond))
	}
	return t.Standings(), nil
}

// PlayRound seats a random table, plays one hand and banks the result.
func (t *Tournament) PlayRound() error {
	s := t.settings
	size := s.MinSeats + t.rng.IntN(s.MaxSeats-s.MinSeats+1)
	seated := t.pool.Seat(t.rng, size)
	if len(seated) < casino.MinPlayers {
		return fmt.Errorf("only %d players available for a table of %d", len(seated), size)
	}

	players := make([]*casino.Player, len(seated))
	for i, e := range seated {
		players[i] = e.Player
	}
	out, err := t.engine.PlayHand(players)
	switch {
	case errors.Is(err, casino.ErrInvalidTable):
		return err
	case err != nil:
		t.voided++
		t.logger.Warn("hand voided", "hand", t.played+1, "err", err)
	default:
		for _, a := range out.Anomalies {
			t.logger.Warn("anomaly", "hand", t.played+1, "seat", a.Seat, "player", players[a.Seat].Name, "err", a.Err)
		}
		if out.Voided {
			t.voided++
		}
	}
	t.played++

	for seat, e := range seated {
		if out != nil {
			e.Stats.Add(statistics.HandResult{
				Net:      out.Net(seat),
				Seat:     seat,
				Showdown: out.Showdown,
				Pot:      out.Pot,
				Ante:     s.Ante,
			})
		}
		t.bank(e.Player)
	}
	return nil
}

// bank moves the hand's result into winnings and restores the bankroll.
func (t *Tournament) bank(p *casino.Player) {
	p.Winnings += p.Bankroll - t.settings.Bankroll
	p.Bankroll = t.settings.Bankroll
	p.Broke = false
	p.HandsPlayed++
	p.LeaveTable()
}

func (t *Tournament) finishIteration(more bool) error {
	t.pool.SortByWinnings()
	if path := t.settings.Results; path != "" {
		if err := resultlog.Write(path, t.played, t.resultLines()); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		t.logger.Info("results written", "file", path)
	}
	if more && t.settings.ReplaceBottomHalf {
		return t.replaceBottomHalf()
	}
	return nil
}

// replaceBottomHalf swaps the worst half of the pool, which must already be
// sorted, for fresh players from the same groups.
func (t *Tournament) replaceBottomHalf() error {
	groups := make(map[string]config.Group, len(t.groups))
	for _, g := range t.groups {
		groups[g.Name] = g
	}
	entries := t.pool.Entries()
	for i := range len(entries) / 2 {
		old := entries[i]
		e, err := t.newEntry(groups[old.Group])
		if err != nil {
			return err
		}
		t.logger.Debug("replacing", "player", old.Player.Name, "winnings", old.Player.Winnings, "with", e.Player.Name)
		t.pool.Replace(i, e)
	}
	return nil
}

func (t *Tournament) resultLines() []resultlog.Standing {
	lines := make([]resultlog.Standing, 0, t.pool.Len())
	for _, e := range t.pool.Entries() {
		lines = append(lines, standingOf(e))
	}
	return lines
}

func standingOf(e *Entry) resultlog.Standing {
	p := e.Player
	return resultlog.Standing{
		ID:          p.ID,
		Name:        p.Name,
		Strategy:    p.Strategy.Name(),
		Winnings:    p.Winnings,
		HandsPlayed: p.HandsPlayed,
		Params:      e.ParamsLine(),
	}
}

// Standings returns every pool member in pool order.
func (t *Tournament) Standings() []Standing {
	out := make([]Standing, 0, t.pool.Len())
	for _, e := range t.pool.Entries() {
		out = append(out, Standing{Standing: standingOf(e), Stats: e.Stats})
	}
	return out
}
