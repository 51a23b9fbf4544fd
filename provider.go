package cigarbutt

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Provider is a source of market data and financial statements.
//
// Missing data is not an error: a price, a balance sheet or a market
// capitalization that the provider does not know is reported as an invalid
// decimal.NullDecimal or an empty BalanceSheet. Errors are reserved to
// failures to talk to the provider.
type Provider interface {
	// LatestClose returns the most recent end-of-day close price.
	LatestClose(ctx context.Context, ticker string) (decimal.NullDecimal, error)
	// BalanceSheet returns the balance sheet, most recent period first.
	BalanceSheet(ctx context.Context, ticker string) (*BalanceSheet, error)
	// MarketCap returns the latest market capitalization.
	MarketCap(ctx context.Context, ticker string) (decimal.NullDecimal, error)
	// Currency returns the ISO code of the currency the financials are reported in.
	Currency(ctx context.Context, ticker string) (string, error)
}

// ErrorKind classifies provider failures.
type ErrorKind int

const (
	Transport     ErrorKind = iota // network failure or unexpected HTTP status
	UnknownSymbol                  // the provider does not know the ticker
	Malformed                      // the response could not be decoded
)

func (k ErrorKind) String() string {
	switch k {
	case Transport:
		return "transport"
	case UnknownSymbol:
		return "unknown symbol"
	case Malformed:
		return "malformed response"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ProviderError is a failure of the provider for a given ticker.
type ProviderError struct {
	Ticker string
	Kind   ErrorKind
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Ticker, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError returns a ProviderError of the given kind.
func NewProviderError(ticker string, kind ErrorKind, err error) *ProviderError {
	return &ProviderError{Ticker: ticker, Kind: kind, Err: err}
}

// asProviderError makes sure any failure coming out of a Provider is a *ProviderError.
//
// If ctx is done the failure is the caller's, ctx.Err() is returned instead.
func asProviderError(ctx context.Context, ticker string, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return err
	}
	return NewProviderError(ticker, Transport, err)
}
