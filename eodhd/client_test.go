package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/cigarbutt"
	"github.com/shopspring/decimal"
)

const acmeFundamentals = `{
	"General": {"Code": "ACME", "Name": "Acme Corp", "CurrencyCode": "USD"},
	"Highlights": {"MarketCapitalization": 360000},
	"Financials": {"Balance_Sheet": {"currency_symbol": "USD", "yearly": {
		"2024-12-31": {"date": "2024-12-31", "totalAssets": "800000.00", "totalCurrentAssets": "500000.00", "totalLiab": "100000.00", "cash": "200000.00"},
		"2023-12-31": {"date": "2023-12-31", "totalAssets": "750000.00", "totalCurrentAssets": "450000.00", "totalLiab": "120000.00", "cash": null}
	}}}
}`

const acmeEOD = `[{"date":"2025-10-15","close":0.95},{"date":"2025-10-16","close":0.90}]`

// fakeEODHD is an EODHD server knowing ACME.US, failing on BOOM.US and sending garbage for BAD.US.
// ACME1.US, ACME2.US, ... are copies of ACME.US.
type fakeEODHD struct {
	*httptest.Server
	hits map[string]int // per path
}

func newFakeEODHD(t *testing.T) *fakeEODHD {
	t.Helper()
	f := &fakeEODHD{hits: make(map[string]int)}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits[r.URL.Path]++
		if r.URL.Query().Get("api_token") != "secret" || r.URL.Query().Get("fmt") != "json" {
			http.Error(w, "Unauthenticated", http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/eod/ACME.US":
			if r.URL.Query().Get("from") == "" {
				http.Error(w, "missing from", http.StatusBadRequest)
				return
			}
			w.Write([]byte(acmeEOD))
		case "/fundamentals/ACME.US":
			w.Write([]byte(acmeFundamentals))
		case "/eod/BOOM.US", "/fundamentals/BOOM.US":
			http.Error(w, "oops", http.StatusInternalServerError)
		case "/eod/BAD.US":
			w.Write([]byte(`[{"date":`))
		case "/fundamentals/BAD.US":
			w.Write([]byte(`{"General":`))
		default:
			switch {
			case strings.HasPrefix(r.URL.Path, "/eod/ACME"):
				w.Write([]byte(acmeEOD))
			case strings.HasPrefix(r.URL.Path, "/fundamentals/ACME"):
				w.Write([]byte(acmeFundamentals))
			default:
				http.Error(w, "Ticker Not Found.", http.StatusNotFound)
			}
		}
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeEODHD) client() *Client {
	c := New("secret", f.Server.Client())
	c.BaseURL = f.URL
	return c
}

func TestClient(t *testing.T) {
	srv := newFakeEODHD(t)
	c := srv.client()
	ctx := context.Background()

	price, err := c.LatestClose(ctx, "ACME")
	if err != nil {
		t.Fatalf("LatestClose() unexpected error = %v", err)
	}
	if !price.Valid || !price.Decimal.Equal(decimal.RequireFromString("0.90")) {
		t.Errorf("LatestClose() = %v, want 0.90", price)
	}

	bs, err := c.BalanceSheet(ctx, "ACME")
	if err != nil {
		t.Fatalf("BalanceSheet() unexpected error = %v", err)
	}
	if got := bs.Periods(); len(got) != 2 || got[0] != cigarbutt.NewDate(2024, 12, 31) {
		t.Errorf("BalanceSheet().Periods() = %v, want 2024-12-31 first", got)
	}
	if v, ok := bs.Latest(cigarbutt.TotalLiabilitiesNetMinorityInterest); !ok || !v.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("BalanceSheet().Latest(%q) = %v, %v, want 100000", cigarbutt.TotalLiabilitiesNetMinorityInterest, v, ok)
	}

	mc, err := c.MarketCap(ctx, "ACME")
	if err != nil || !mc.Valid || !mc.Decimal.Equal(decimal.NewFromInt(360000)) {
		t.Errorf("MarketCap() = %v, %v, want 360000", mc, err)
	}
	cur, err := c.Currency(ctx, "ACME")
	if err != nil || cur != "USD" {
		t.Errorf("Currency() = %q, %v, want USD", cur, err)
	}

	if n := srv.hits["/fundamentals/ACME.US"]; n != 1 {
		t.Errorf("fundamentals fetched %d times, want 1", n)
	}
}

// resultCount is a cigarbutt.ResultSink counting the results.
type resultCount int

func (n *resultCount) WriteResults(results []cigarbutt.Result) error {
	*n = resultCount(len(results))
	return nil
}

func TestClient_KeepsLastFundamentalsOnly(t *testing.T) {
	srv := newFakeEODHD(t)
	c := srv.client()
	tickers := cigarbutt.SymbolList{"ACME1", "ACME2", "ACME3", "ACME4", "ACME5"}

	var found resultCount
	cfg := cigarbutt.Config{Date: cigarbutt.NewDate(2025, 10, 17)}
	sum, err := cigarbutt.NewScanner(c, cfg, nil).Scan(context.Background(), tickers, &found)
	if err != nil {
		t.Fatalf("Scan() unexpected error = %v", err)
	}
	if sum.Found != len(tickers) || int(found) != len(tickers) {
		t.Errorf("Scan() found %d, wrote %d, want %d", sum.Found, found, len(tickers))
	}
	for _, ticker := range tickers {
		if n := srv.hits["/fundamentals/"+ticker+".US"]; n != 1 {
			t.Errorf("fundamentals of %s fetched %d times, want 1", ticker, n)
		}
	}
	if c.lastTicker != "ACME5" || !c.fundamentals.Exists() {
		t.Errorf("client keeps the fundamentals of %q, want ACME5 only", c.lastTicker)
	}

	// going back to a previous ticker fetches it again.
	if _, err := c.MarketCap(context.Background(), "ACME1"); err != nil {
		t.Fatalf("MarketCap(ACME1) unexpected error = %v", err)
	}
	if n := srv.hits["/fundamentals/ACME1.US"]; n != 2 {
		t.Errorf("fundamentals of ACME1 fetched %d times, want 2", n)
	}
	if c.lastTicker != "ACME1" {
		t.Errorf("client keeps the fundamentals of %q, want ACME1", c.lastTicker)
	}
}

func TestClient_FailureDropsFundamentals(t *testing.T) {
	srv := newFakeEODHD(t)
	c := srv.client()
	ctx := context.Background()
	if _, err := c.MarketCap(ctx, "ACME"); err != nil {
		t.Fatalf("MarketCap(ACME) unexpected error = %v", err)
	}
	if _, err := c.MarketCap(ctx, "BOOM"); err == nil {
		t.Fatal("MarketCap(BOOM) expected an error")
	}
	if c.lastTicker != "" || c.fundamentals.Exists() {
		t.Errorf("client keeps the fundamentals of %q after a failure", c.lastTicker)
	}
}

func TestClient_ExplicitExchange(t *testing.T) {
	srv := newFakeEODHD(t)
	c := srv.client()
	if _, err := c.LatestClose(context.Background(), "ACME.US"); err != nil {
		t.Fatalf("LatestClose(ACME.US) unexpected error = %v", err)
	}
	if n := srv.hits["/eod/ACME.US"]; n != 1 {
		t.Errorf("LatestClose(ACME.US) hits = %v", srv.hits)
	}
}

func TestClient_Errors(t *testing.T) {
	srv := newFakeEODHD(t)
	c := srv.client()
	ctx := context.Background()

	testCases := []struct {
		ticker string
		kind   cigarbutt.ErrorKind
	}{
		{"NOPE", cigarbutt.UnknownSymbol},
		{"BOOM", cigarbutt.Transport},
		{"BAD", cigarbutt.Malformed},
	}
	for _, tc := range testCases {
		t.Run(tc.ticker, func(t *testing.T) {
			check := func(method string, err error) {
				var perr *cigarbutt.ProviderError
				if !errors.As(err, &perr) {
					t.Fatalf("%s(%s) error = %v, want a *ProviderError", method, tc.ticker, err)
				}
				if perr.Kind != tc.kind || perr.Ticker != tc.ticker {
					t.Errorf("%s(%s) error = %v, want %s for %s", method, tc.ticker, err, tc.kind, tc.ticker)
				}
			}
			_, err := c.LatestClose(ctx, tc.ticker)
			check("LatestClose", err)
			_, err = c.BalanceSheet(ctx, tc.ticker)
			check("BalanceSheet", err)
		})
	}

	wrong := srv.client()
	wrong.key = "wrong"
	_, err := wrong.LatestClose(ctx, "ACME")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("LatestClose() with a wrong key error = %v, want a 401", err)
	}
}

func TestClient_Evaluate(t *testing.T) {
	srv := newFakeEODHD(t)
	e, err := cigarbutt.Evaluate(context.Background(), srv.client(), "ACME")
	if err != nil {
		t.Fatalf("Evaluate() unexpected error = %v", err)
	}
	if e == nil || !e.Qualifies {
		t.Fatalf("Evaluate() = %+v, want a cigar butt", e)
	}
	if got := e.NCAVPerShare.StringFixed(2); got != "1.00" {
		t.Errorf("Evaluate().NCAVPerShare = %s, want 1.00", got)
	}
}

func TestClient_Canceled(t *testing.T) {
	srv := newFakeEODHD(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cigarbutt.Evaluate(ctx, srv.client(), "ACME")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Evaluate() error = %v, want %v", err, context.Canceled)
	}
}
