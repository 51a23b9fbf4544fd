// Command ncav screens stocks for cigar butts: stocks trading below their net
// current asset value per share.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/cigarbutt/cmd"
	"github.com/etnz/cigarbutt/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// shell completion, does nothing unless invoked by the shell.
	providerFlags := map[string]complete.Predictor{
		"eodhd-api-key": predict.Nothing,
		"cache":         predict.Nothing,
		"timeout":       predict.Something,
	}
	scanFlags := map[string]complete.Predictor{
		"input":   predict.Files("*.csv"),
		"output":  predict.Files("*.csv"),
		"limit":   predict.Something,
		"verbose": predict.Nothing,
		"date":    predict.Something,
	}
	for k, v := range providerFlags {
		scanFlags[k] = v
	}
	(&complete.Command{
		Sub: map[string]*complete.Command{
			"scan":     {Flags: scanFlags, Args: predict.Files("*.csv")},
			"eval":     {Flags: providerFlags},
			"topic":    {Args: predict.Set(docs.AllTopics())},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}).Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
