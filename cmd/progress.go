package cmd

import (
	"fmt"
	"io"

	"github.com/etnz/cigarbutt"
	"github.com/etnz/cigarbutt/renderer"
	"github.com/fatih/color"
)

// progress is a cigarbutt.Observer printing the progress of a scan on the terminal.
//
// Progress and warnings go to err, reports of the cigar butts found go to out.
type progress struct {
	out, err io.Writer
	markdown func(w io.Writer, md string)

	bar  *color.Color
	warn *color.Color
}

func newProgress(out, err io.Writer) *progress {
	return &progress{
		out:      out,
		err:      err,
		markdown: printMarkdown,
		bar:      color.New(color.FgCyan),
		warn:     color.New(color.FgYellow),
	}
}

func (p *progress) Start(total int) {}

func (p *progress) Step(i, total int, ticker string) {
	p.bar.Fprintf(p.err, "\r🔎 Progress: %3d%% %d/%d %-12s", 100*i/total, i+1, total, ticker)
}

func (p *progress) Failed(ticker string, err error) {
	p.warn.Fprintf(p.err, "\n⚠️ Error on %s: %v\n", ticker, err)
}

func (p *progress) Qualified(e *cigarbutt.Evaluation) {
	fmt.Fprintln(p.err)
	p.markdown(p.out, renderer.RenderReport(renderer.NewReport(e)))
}

func (p *progress) Done(int) { p.bar.Fprintf(p.err, "\r🔎 Progress: 100%%\n") }
