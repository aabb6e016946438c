package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug   bool `help:"Enable debug logging"`
	NoColor bool `name:"no-color" help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Run     RunCmd           `cmd:"" help:"Run a tournament between bot strategies"`
	Odds    OddsCmd          `cmd:"" help:"Estimate win probability and the Kelly bet for a hand"`
	Rank    RankCmd          `cmd:"" help:"Rank and name a hand of up to seven cards"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("casino"),
		kong.Description("Hold'em bot casino: Kelly strategies, tournaments and odds"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// newLogger builds the stderr logger. --debug wins over level.
func (g *Globals) newLogger(level string) *log.Logger {
	lvl := log.InfoLevel
	if level != "" {
		if parsed, err := log.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}
	if g.Debug {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
}
