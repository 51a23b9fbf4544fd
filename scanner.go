package cigarbutt

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Observer follows the progress of a scan.
//
// It is a purely observational side channel: nothing it does changes the
// outcome of the scan.
type Observer interface {
	// Start is called once with the number of tickers that will be evaluated.
	Start(total int)
	// Step is called before evaluating the i-th ticker (0-based).
	Step(i, total int, ticker string)
	// Failed is called when the provider failed for a ticker.
	Failed(ticker string, err error)
	// Qualified is called for every cigar butt found, if verbose.
	Qualified(e *Evaluation)
	// Done is called once at the end with the number of cigar butts found.
	Done(found int)
}

// Summary reports what a scan did.
type Summary struct {
	Scanned int      // number of tickers evaluated
	Failed  []string // tickers for which the provider failed
	Found   int      // number of cigar butts found
	Written bool     // whether results were written to the sink
}

// Scanner evaluates a list of tickers and collects the cigar butts.
type Scanner struct {
	provider Provider
	cfg      Config
	obs      Observer
}

// NewScanner returns a Scanner fetching data from p. A nil obs is allowed.
func NewScanner(p Provider, cfg Config, obs Observer) *Scanner {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Scanner{provider: p, cfg: cfg, obs: obs}
}

// Scan evaluates the symbols of src one at a time, in order, and writes the
// cigar butts found to sink.
//
// Only the first Limit non-blank symbols are evaluated. A provider failure on
// a ticker is reported to the observer and the scan moves on to the next one.
// Failures to read src or to write sink are returned. If nothing is found,
// sink is not written at all.
func (s *Scanner) Scan(ctx context.Context, src SymbolSource, sink ResultSink) (Summary, error) {
	var sum Summary
	symbols, err := src.Symbols()
	if err != nil {
		return sum, fmt.Errorf("cannot read symbols: %w", err)
	}
	symbols = s.truncate(symbols)

	on := s.cfg.Date
	if on.IsZero() {
		on = Today()
	}

	s.obs.Start(len(symbols))
	var batch []Result
	for i, ticker := range symbols {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		s.obs.Step(i, len(symbols), ticker)
		sum.Scanned++
		e, err := Evaluate(ctx, s.provider, ticker)
		var perr *ProviderError
		if errors.As(err, &perr) {
			sum.Failed = append(sum.Failed, ticker)
			s.obs.Failed(ticker, err)
			continue
		}
		if err != nil {
			return sum, err
		}
		if e == nil || !e.Qualifies {
			continue
		}
		if s.cfg.Verbose {
			s.obs.Qualified(e)
		}
		batch = append(batch, e.Result(on))
	}

	sum.Found = len(batch)
	if len(batch) > 0 {
		if err := sink.WriteResults(batch); err != nil {
			return sum, fmt.Errorf("cannot write results: %w", err)
		}
		sum.Written = true
	}
	s.obs.Done(len(batch))
	return sum, nil
}

// truncate drops blank symbols and keeps at most Limit of them.
func (s *Scanner) truncate(symbols []string) []string {
	kept := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if strings.TrimSpace(sym) == "" {
			continue
		}
		if s.cfg.Limit > 0 && len(kept) == s.cfg.Limit {
			break
		}
		kept = append(kept, sym)
	}
	return kept
}

type nopObserver struct{}

func (nopObserver) Start(int)             {}
func (nopObserver) Step(int, int, string) {}
func (nopObserver) Failed(string, error)  {}
func (nopObserver) Qualified(*Evaluation) {}
func (nopObserver) Done(int)              {}
