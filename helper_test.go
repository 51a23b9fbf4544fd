package cigarbutt

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// d is a helper for test to create a decimal from a string const.
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// valid is a helper for test to create a valid NullDecimal from a string const.
func valid(s string) decimal.NullDecimal { return decimal.NewNullDecimal(d(s)) }

// fakeCompany is the data known by fakeProvider about a ticker.
type fakeCompany struct {
	price     decimal.NullDecimal
	sheet     *BalanceSheet
	marketCap decimal.NullDecimal
	currency  string
	err       error // returned by every call if not nil
}

// company is a helper for test to create a fakeCompany whose latest balance
// sheet has current assets ca and total liabilities tl.
func company(price, ca, tl, mc string) fakeCompany {
	bs := NewBalanceSheet(NewDate(2024, 12, 31), NewDate(2023, 12, 31))
	bs.Set(CurrentAssets, 0, d(ca))
	bs.Set(TotalLiabilitiesNetMinorityInterest, 0, d(tl))
	return fakeCompany{price: valid(price), sheet: bs, marketCap: valid(mc)}
}

// fakeProvider is an in memory Provider that records the calls it gets.
type fakeProvider struct {
	companies map[string]fakeCompany
	calls     []string // "method ticker"
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{companies: make(map[string]fakeCompany)}
}

func (p *fakeProvider) with(ticker string, c fakeCompany) *fakeProvider {
	p.companies[ticker] = c
	return p
}

func (p *fakeProvider) get(method, ticker string) (fakeCompany, error) {
	p.calls = append(p.calls, method+" "+ticker)
	c, ok := p.companies[ticker]
	if !ok {
		return c, NewProviderError(ticker, UnknownSymbol, errors.New("ticker not found"))
	}
	return c, c.err
}

func (p *fakeProvider) LatestClose(_ context.Context, ticker string) (decimal.NullDecimal, error) {
	c, err := p.get("LatestClose", ticker)
	return c.price, err
}

func (p *fakeProvider) BalanceSheet(_ context.Context, ticker string) (*BalanceSheet, error) {
	c, err := p.get("BalanceSheet", ticker)
	return c.sheet, err
}

func (p *fakeProvider) MarketCap(_ context.Context, ticker string) (decimal.NullDecimal, error) {
	c, err := p.get("MarketCap", ticker)
	return c.marketCap, err
}

func (p *fakeProvider) Currency(_ context.Context, ticker string) (string, error) {
	c, err := p.get("Currency", ticker)
	return c.currency, err
}

// fetched returns true if any call was made for ticker.
func (p *fakeProvider) fetched(ticker string) bool {
	for _, c := range p.calls {
		if c == "LatestClose "+ticker {
			return true
		}
	}
	return false
}
