package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/cigarbutt/docs"
	"github.com/google/subcommands"
)

// topicCmd implements the "topic" command, the user manual of ncav.
type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "reads the ncav user manual" }
func (*topicCmd) Usage() string {
	return `ncav topic [<topic>...]

  Prints the pages of the user manual. Without topic, prints the table of
  contents; "*" prints every page.

  Topics: ` + strings.Join(docs.AllTopics(), ", ") + `
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.show(f.Args(), os.Stdout, os.Stderr, printMarkdown)
}

// show prints the manual pages named by topics with markdown.
func (*topicCmd) show(topics []string, stdout, stderr io.Writer, markdown func(io.Writer, string)) subcommands.ExitStatus {
	if len(topics) == 0 {
		topics = []string{docs.Index}
	}
	page, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\nRun 'ncav topic' for the list of topics.\n", err)
		return subcommands.ExitUsageError
	}
	markdown(stdout, page)
	return subcommands.ExitSuccess
}
