package tournament

import (
	"cmp"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/holdemcasino/internal/casino"
	"github.com/lox/holdemcasino/internal/statistics"
	"github.com/lox/holdemcasino/internal/strategy"
)

// Entry is a pool member: the player, the group it was built from and its
// running statistics.
type Entry struct {
	Player *casino.Player
	Group  string
	Params strategy.Parameters
	Stats  statistics.Statistics
}

// ParamsLine returns the parameter line for the results file. Strategies
// without multipliers report an empty line.
func (e *Entry) ParamsLine() string {
	if _, ok := e.Player.Strategy.(*strategy.Kelly); !ok {
		return ""
	}
	return e.Params.Line()
}

// Registry owns the player pool. It is used from a single goroutine.
type Registry struct {
	entries []*Entry
}

// Add appends an entry.
func (r *Registry) Add(e *Entry) { r.entries = append(r.entries, e) }

// Len returns the pool size.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the pool in its current order.
func (r *Registry) Entries() []*Entry { return r.entries }

// Replace swaps the entry at i.
func (r *Registry) Replace(i int, e *Entry) { r.entries[i] = e }

// Seat picks n distinct idle players that are not broke, in random order.
// It returns fewer than n when the pool cannot supply them.
func (r *Registry) Seat(rng *rand.Rand, n int) []*Entry {
	free := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if !e.Player.Active && !e.Player.Broke {
			free = append(free, e)
		}
	}
	n = min(n, len(free))
	for i := range n {
		j := i + rng.IntN(len(free)-i)
		free[i], free[j] = free[j], free[i]
	}
	return free[:n]
}

// SortByWinnings orders the pool by ascending winnings, ties by ID.
func (r *Registry) SortByWinnings() {
	slices.SortStableFunc(r.entries, func(a, b *Entry) int {
		return cmp.Or(
			cmp.Compare(a.Player.Winnings, b.Player.Winnings),
			cmp.Compare(a.Player.ID, b.Player.ID),
		)
	})
}
