// Package resultlog writes tournament standings as the tab-separated results
// file, one status line per player.
package resultlog

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/holdemcasino/internal/fileutil"
)

// Standing is one player's line in the results.
type Standing struct {
	ID          int
	Name        string
	Strategy    string
	Winnings    int
	HandsPlayed int
	// Params is the strategy's parameter line, tab-terminated values.
	Params string
}

// PerHandRatio returns winnings per hand played, or 0 before any hand.
func (s Standing) PerHandRatio() float64 {
	if s.HandsPlayed == 0 {
		return 0
	}
	return float64(s.Winnings) / float64(s.HandsPlayed)
}

// StatusLine renders "id\tratio\tparams\n".
func (s Standing) StatusLine() string {
	return strconv.Itoa(s.ID) + "\t" + FormatFloat(s.PerHandRatio()) + "\t" + s.Params + "\n"
}

// FormatFloat prints the shortest single precision representation of v and
// always keeps a fractional part, so 1 prints as "1.0".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 32)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}

// Format writes the header for rounds followed by every standing in order.
func Format(w io.Writer, rounds int, standings []Standing) error {
	if _, err := fmt.Fprintf(w, "Results after %d rounds: \n", rounds); err != nil {
		return err
	}
	for _, s := range standings {
		if _, err := io.WriteString(w, s.StatusLine()); err != nil {
			return err
		}
	}
	return nil
}

// Write replaces filename with the formatted standings. Readers see either
// the previous results or the new ones, never a partial file.
func Write(filename string, rounds int, standings []Standing) error {
	var buf bytes.Buffer
	if err := Format(&buf, rounds, standings); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(filename, buf.Bytes(), 0o644)
}
