package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Evaluate a player hand against the dealer's cards"`
	Gate    GateCmd          `cmd:"" help:"Check whether an action is allowed in a stage"`
	Count   CountCmd         `cmd:"" help:"Hi-Lo running count of a sequence of cards"`
	Shoe    ShoeCmd          `cmd:"" help:"Print a shuffled shoe"`
	Replay  ReplayCmd        `cmd:"" help:"Play scripted rounds and summarise the results"`
	History HistoryCmd       `cmd:"" help:"Render a saved round history"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack rules engine toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
