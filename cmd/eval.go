package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cigarbutt"
	"github.com/etnz/cigarbutt/renderer"
	"github.com/google/subcommands"
)

// evalCmd implements the "eval" command.
type evalCmd struct {
	settings
}

func (*evalCmd) Name() string     { return "eval" }
func (*evalCmd) Synopsis() string { return "evaluates stocks and prints their report" }
func (*evalCmd) Usage() string {
	return `ncav eval <ticker>...

  Evaluates each ticker and prints its balance sheet snapshot and its net
  current asset value, cigar butt or not. Nothing is written to disk.
` + usageEnv()
}

func (c *evalCmd) SetFlags(f *flag.FlagSet) {
	c.readEnv()
	c.setProviderFlags(f)
}

func (c *evalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.envErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", c.envErr)
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: no ticker to evaluate\n")
		return subcommands.ExitUsageError
	}
	p, err := c.provider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return c.eval(ctx, p, f.Args(), os.Stdout, os.Stderr, printMarkdown)
}

// eval evaluates tickers against p and prints their report with markdown.
func (c *evalCmd) eval(ctx context.Context, p cigarbutt.Provider, tickers []string, stdout, stderr io.Writer, markdown func(io.Writer, string)) subcommands.ExitStatus {
	status := subcommands.ExitSuccess
	for _, ticker := range tickers {
		e, err := cigarbutt.Evaluate(ctx, p, ticker)
		var perr *cigarbutt.ProviderError
		switch {
		case errors.As(err, &perr):
			fmt.Fprintf(stderr, "⚠️ Error on %s: %v\n", ticker, err)
			status = subcommands.ExitFailure
			continue
		case err != nil:
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		case e == nil:
			fmt.Fprintf(stderr, "⚠️ Not enough data to evaluate %s\n", ticker)
			continue
		}
		markdown(stdout, renderer.RenderReport(renderer.NewReport(e)))
	}
	return status
}
