package cigarbutt

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Snapshot holds the figures of a ticker needed for the net current asset value test.
//
// Every figure is optional at the provider boundary.
type Snapshot struct {
	Price            decimal.NullDecimal
	CurrentAssets    decimal.NullDecimal
	TotalLiabilities decimal.NullDecimal
	MarketCap        decimal.NullDecimal
	Currency         string
}

// Complete returns true if all the figures are known.
func (s Snapshot) Complete() bool {
	return s.Price.Valid && s.CurrentAssets.Valid && s.TotalLiabilities.Valid && s.MarketCap.Valid
}

// Evaluation is the outcome of the net current asset value test for one ticker.
//
// It holds everything needed to render a report about it.
type Evaluation struct {
	Ticker       string
	Snapshot     Snapshot
	BalanceSheet *BalanceSheet

	SharesOutstanding decimal.Decimal // market cap / price
	NCAV              decimal.Decimal // current assets - total liabilities
	NCAVPerShare      decimal.Decimal
	Qualifies         bool // price < NCAV per share
}

// Price returns the price as Money.
func (e *Evaluation) Price() Money { return M(e.Snapshot.Price.Decimal, e.Snapshot.Currency) }

// CurrentAssets returns the current assets as Money.
func (e *Evaluation) CurrentAssets() Money {
	return M(e.Snapshot.CurrentAssets.Decimal, e.Snapshot.Currency)
}

// TotalLiabilities returns the total liabilities as Money.
func (e *Evaluation) TotalLiabilities() Money {
	return M(e.Snapshot.TotalLiabilities.Decimal, e.Snapshot.Currency)
}

// NCAVPerShareMoney returns the NCAV per share as Money.
func (e *Evaluation) NCAVPerShareMoney() Money { return M(e.NCAVPerShare, e.Snapshot.Currency) }

// Evaluate runs the net current asset value test on ticker.
//
// It returns a nil Evaluation and a nil error when the data needed for the
// test is not available: no recent price, a balance sheet without "Current
// Assets" or "Total Liabilities Net Minority Interest" for the most recent
// period, or no market capitalization. Data is fetched in that order and the
// evaluation stops at the first missing piece. A zero or negative price or
// market capitalization counts as missing.
//
// Failures to get data from p are returned as *ProviderError.
func Evaluate(ctx context.Context, p Provider, ticker string) (*Evaluation, error) {
	var s Snapshot

	price, err := p.LatestClose(ctx, ticker)
	if err != nil {
		return nil, asProviderError(ctx, ticker, err)
	}
	if !price.Valid || !price.Decimal.IsPositive() {
		return nil, nil
	}
	s.Price = price

	bs, err := p.BalanceSheet(ctx, ticker)
	if err != nil {
		return nil, asProviderError(ctx, ticker, err)
	}
	ca, ok := bs.Latest(CurrentAssets)
	if !ok {
		return nil, nil
	}
	tl, ok := bs.Latest(TotalLiabilitiesNetMinorityInterest)
	if !ok {
		return nil, nil
	}
	s.CurrentAssets = decimal.NewNullDecimal(ca)
	s.TotalLiabilities = decimal.NewNullDecimal(tl)

	mc, err := p.MarketCap(ctx, ticker)
	if err != nil {
		return nil, asProviderError(ctx, ticker, err)
	}
	if !mc.Valid || !mc.Decimal.IsPositive() {
		return nil, nil
	}
	s.MarketCap = mc

	s.Currency, err = p.Currency(ctx, ticker)
	if err != nil {
		return nil, asProviderError(ctx, ticker, err)
	}
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}

	e := compute(s)
	e.Ticker = ticker
	e.BalanceSheet = bs
	return e, nil
}

// compute derives the evaluation figures from a complete snapshot.
func compute(s Snapshot) *Evaluation {
	price, mc := s.Price.Decimal, s.MarketCap.Decimal
	ncav := s.CurrentAssets.Decimal.Sub(s.TotalLiabilities.Decimal)
	// ncav / (mc / price) == ncav * price / mc, with a single division.
	perShare := ncav.Mul(price).Div(mc)
	return &Evaluation{
		Snapshot:          s,
		SharesOutstanding: mc.Div(price),
		NCAV:              ncav,
		NCAVPerShare:      perShare,
		Qualifies:         price.LessThan(perShare),
	}
}

// BuySignal is the marker of a qualifying Result.
const BuySignal = "✅ YES"

// Result is a qualifying screening result, rounded for publication.
type Result struct {
	Ticker            string
	Price             decimal.Decimal // 2 decimals
	CurrentAssets     decimal.Decimal // units
	TotalLiabilities  decimal.Decimal // units
	SharesOutstanding decimal.Decimal // units
	NCAVPerShare      decimal.Decimal // 2 decimals
	Signal            string
	Date              Date
}

// Result returns the rounded Result of a qualifying evaluation, dated on.
// Halves are rounded to even: 0.125 is 0.12 and 500000.5 is 500000.
//
// It panics if the evaluation does not qualify.
func (e *Evaluation) Result(on Date) Result {
	if !e.Qualifies {
		panic(fmt.Sprintf("%s does not qualify as a cigar butt", e.Ticker))
	}
	return Result{
		Ticker:            e.Ticker,
		Price:             e.Snapshot.Price.Decimal.RoundBank(2),
		CurrentAssets:     e.Snapshot.CurrentAssets.Decimal.RoundBank(0),
		TotalLiabilities:  e.Snapshot.TotalLiabilities.Decimal.RoundBank(0),
		SharesOutstanding: e.SharesOutstanding.RoundBank(0),
		NCAVPerShare:      e.NCAVPerShare.RoundBank(2),
		Signal:            BuySignal,
		Date:              on,
	}
}

// Title returns the upper cased ticker, as used in headers.
func (e *Evaluation) Title() string { return strings.ToUpper(e.Ticker) }
