package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"V" help:"Show version"`
	Verbose  bool             `short:"v" help:"Verbose logging"`
	Train    TrainCmd         `cmd:"" help:"Train the Q-learning agent against random opponents"`
	Simulate SimulateCmd      `cmd:"" help:"Run random-policy baseline episodes"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("liarsbar"),
		kong.Description("Liar's bar card game engine with Q-learning bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx.BindTo(runCtx, (*context.Context)(nil))

	err := ctx.Run(setupLogger(cli.Verbose))
	ctx.FatalIfErrorf(err)
}

func setupLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}
