// Package equity estimates the probability that a pocket pair wins a
// Hold'em hand against random opponents by Monte Carlo simulation.
package equity

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemcasino/internal/randutil"
	"github.com/lox/holdemcasino/poker"
)

// MaxOpponents is the most opponents a full deal can cover: two pocket cards
// each after the hero's pocket and a five card board.
const MaxOpponents = (poker.NumCards - 7) / 2

var (
	// ErrBoardSize is returned for a board that is not 0, 3, 4 or 5 cards.
	ErrBoardSize = errors.New("board must have 0, 3, 4 or 5 cards")
	// ErrOpponents is returned for an opponent count outside 1..MaxOpponents.
	ErrOpponents = errors.New("invalid opponent count")
)

// Result is the outcome of a batch of simulated trials. A trial is won only
// by beating every opponent outright; ties count as losses.
type Result struct {
	Wins   int
	Ties   int
	Trials int
}

// Probability returns Wins / Trials, or 0 for an empty result.
func (r Result) Probability() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Trials)
}

// Merge adds the counts of other to r.
func (r Result) Merge(other Result) Result {
	return Result{
		Wins:   r.Wins + other.Wins,
		Ties:   r.Ties + other.Ties,
		Trials: r.Trials + other.Trials,
	}
}

// Table simulates deals against a fixed number of opponents. A Table owns
// its deck and is not safe for concurrent use.
type Table struct {
	deck      *poker.Deck
	opponents int
	logger    *log.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used for per-batch debug output.
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

// NewTable returns a table that simulates against opponents random hands.
func NewTable(rng *rand.Rand, opponents int, opts ...Option) (*Table, error) {
	if err := checkOpponents(opponents); err != nil {
		return nil, err
	}
	t := &Table{
		deck:      poker.NewDeck(rng),
		opponents: opponents,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Opponents returns the number of simulated opponents.
func (t *Table) Opponents() int { return t.opponents }

// SetOpponents changes the number of simulated opponents.
func (t *Table) SetOpponents(n int) error {
	if err := checkOpponents(n); err != nil {
		return err
	}
	t.opponents = n
	return nil
}

// Simulate runs trials deals with the pocket cards and board fixed and
// everything else random.
func (t *Table) Simulate(trials int, c1, c2 poker.Card, board ...poker.Card) (Result, error) {
	known, err := knownCards(c1, c2, board)
	if err != nil {
		return Result{}, err
	}
	var res Result
	for range trials {
		if err := t.trial(known, len(board), &res); err != nil {
			return res, err
		}
	}
	if t.logger != nil {
		t.logger.Debug("simulated", "pocket", fmt.Sprintf("%s%s", c1, c2), "board", len(board),
			"opponents", t.opponents, "trials", res.Trials, "wins", res.Wins, "p", res.Probability())
	}
	return res, nil
}

// trial deals one random completion of known (pocket first, then board) and
// scores it into res.
func (t *Table) trial(known poker.Hand, boardLen int, res *Result) error {
	t.deck.Shuffle()
	if err := t.deck.ExtractHand(known); err != nil {
		return err
	}

	var opps [MaxOpponents][2]poker.Card
	for i := range t.opponents {
		for j := range 2 {
			c, err := t.deck.Deal()
			if err != nil {
				return err
			}
			opps[i][j] = c
		}
	}

	var board poker.Hand
	for i := 2; i < 2+boardLen; i++ {
		_ = board.Add(known.Card(i))
	}
	for board.Len() < 5 {
		c, err := t.deck.Deal()
		if err != nil {
			return err
		}
		_ = board.Add(c)
	}

	mine := board
	_ = mine.Add(known.Card(0))
	_ = mine.Add(known.Card(1))
	myRank, err := poker.Evaluate(mine)
	if err != nil {
		return err
	}

	res.Trials++
	tied := false
	for _, opp := range opps[:t.opponents] {
		h := board
		_ = h.Add(opp[0])
		_ = h.Add(opp[1])
		r, err := poker.Evaluate(h)
		if err != nil {
			return err
		}
		switch {
		case r > myRank:
			return nil
		case r == myRank:
			tied = true
		}
	}
	if tied {
		res.Ties++
	} else {
		res.Wins++
	}
	return nil
}

// EstimateWinProbability is a one-shot Simulate. cards holds the two pocket
// cards followed by 0, 3, 4 or 5 board cards.
func EstimateWinProbability(rng *rand.Rand, opponents, trials int, cards ...poker.Card) (float64, error) {
	if len(cards) < 2 {
		return 0, fmt.Errorf("%w: need two pocket cards, have %d", poker.ErrHandSize, len(cards))
	}
	t, err := NewTable(rng, opponents)
	if err != nil {
		return 0, err
	}
	res, err := t.Simulate(trials, cards[0], cards[1], cards[2:]...)
	if err != nil {
		return 0, err
	}
	return res.Probability(), nil
}

// SimulateParallel splits trials across workers. Each worker owns a deck and
// a child random source drawn from rng before any worker starts, so a given
// seed and worker count always produce the same result. workers <= 0 uses
// the CPU count capped at 8.
func SimulateParallel(ctx context.Context, rng *rand.Rand, opponents, trials, workers int, c1, c2 poker.Card, board ...poker.Card) (Result, error) {
	known, err := knownCards(c1, c2, board)
	if err != nil {
		return Result{}, err
	}
	if err := checkOpponents(opponents); err != nil {
		return Result{}, err
	}
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	workers = max(1, min(workers, trials))

	tables := make([]*Table, workers)
	for w := range tables {
		tables[w] = &Table{deck: poker.NewDeck(randutil.Child(rng)), opponents: opponents}
	}

	results := make([]Result, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := trials / workers
		if w < trials%workers {
			n++
		}
		g.Go(func() error {
			for range n {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := tables[w].trial(known, len(board), &results[w]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, r := range results {
		total = total.Merge(r)
	}
	return total, nil
}

func knownCards(c1, c2 poker.Card, board []poker.Card) (poker.Hand, error) {
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return poker.Hand{}, fmt.Errorf("%w: got %d", ErrBoardSize, len(board))
	}
	known := poker.NewHand(c1, c2)
	for _, c := range board {
		_ = known.Add(c)
	}
	if err := known.Validate(); err != nil {
		return poker.Hand{}, err
	}
	return known, nil
}

func checkOpponents(n int) error {
	if n < 1 || n > MaxOpponents {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrOpponents, n, MaxOpponents)
	}
	return nil
}
