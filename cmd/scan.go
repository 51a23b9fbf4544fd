package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cigarbutt"
	"github.com/google/subcommands"
)

// scanCmd implements the "scan" command.
type scanCmd struct {
	settings
}

func (*scanCmd) Name() string     { return "scan" }
func (*scanCmd) Synopsis() string { return "scans a list of stocks for cigar butts" }
func (*scanCmd) Usage() string {
	return `ncav scan [-input <symbols.csv>] [-output <file.csv>] [-limit <n>] [<symbols.csv>]

  Evaluates the tickers listed in the Symbol column of a CSV file, and saves the
  ones trading below their net current asset value per share to the output file.

  Tickers the provider fails on are reported and skipped.
` + usageEnv()
}

func (c *scanCmd) SetFlags(f *flag.FlagSet) {
	c.readEnv()
	f.StringVar(&c.Input, "input", c.Input, "CSV file with a Symbol column. It can also be passed as the first argument.")
	f.StringVar(&c.Output, "output", c.Output, "CSV file to write the cigar butts to, it is overwritten. Nothing is written if none is found.")
	f.IntVar(&c.Limit, "limit", c.Limit, "maximum number of tickers to scan, 0 for no limit")
	f.BoolVar(&c.Verbose, "verbose", c.Verbose, "print the report of every cigar butt as it is found")
	f.Var(&c.Date, "date", "date to stamp the results with, defaults to today. See the user manual for supported date formats.")
	c.setProviderFlags(f)
}

func (c *scanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.envErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", c.envErr)
		return subcommands.ExitUsageError
	}
	if f.NArg() > 0 {
		c.Input = f.Arg(0)
	}
	if c.Input == "" {
		fmt.Fprintf(os.Stderr, "Error: no symbols file. Use -input flag or NCAV_INPUT environment variable\n")
		return subcommands.ExitUsageError
	}
	p, err := c.provider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return c.scan(ctx, p, os.Stdout, os.Stderr)
}

// scan runs the scan of c.Input against p.
func (c *scanCmd) scan(ctx context.Context, p cigarbutt.Provider, stdout, stderr io.Writer) subcommands.ExitStatus {
	if c.Limit > 0 {
		fmt.Fprintf(stdout, "\n🔍 Scanning up to %d tickers from %s...\n\n", c.Limit, c.Input)
	} else {
		fmt.Fprintf(stdout, "\n🔍 Scanning all tickers from %s...\n\n", c.Input)
	}

	scanner := cigarbutt.NewScanner(p, c.Config, newProgress(stdout, stderr))
	sum, err := scanner.Scan(ctx, cigarbutt.SymbolFile(c.Input), cigarbutt.ResultFile(c.Output))
	if err != nil {
		fmt.Fprintf(stderr, "\nError: %v\n", err)
		return subcommands.ExitFailure
	}

	if sum.Written {
		fmt.Fprintf(stdout, "\n✅ Saved %d cigar butt stocks to %s\n", sum.Found, c.Output)
	} else {
		fmt.Fprintf(stdout, "\n❌ No cigar butt stocks found.\n")
	}
	if len(sum.Failed) > 0 {
		fmt.Fprintf(stderr, "%d of %d tickers could not be evaluated\n", len(sum.Failed), sum.Scanned)
	}
	return subcommands.ExitSuccess
}
