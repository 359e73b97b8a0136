package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a match against the AI"`
	Simulate SimulateCmd      `cmd:"" help:"Run AI-vs-AI matches"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate and compare poker hands"`
	History  HistoryCmd       `cmd:"" help:"Show recorded match results"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fivecarddraw"),
		kong.Description("Two-player fixed-limit 5-card draw poker against an AI opponent"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
