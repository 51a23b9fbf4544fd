package eodhd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cigarbutt"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// This file contains the decoding of EODHD payloads.

// lookback is the number of days of end-of-day prices requested to find the latest close.
const lookback = 10

// parseLatestClose returns the close of the last day in an eod series.
//
//	https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
//	[
//	  {
//	    "date": "2024-02-13",
//	    "open": 275.066,
//	    "high": 284.219,
//	    "low": 268.659,
//	    "close": 278.445,
//	    "adjusted_close": 277.705,
//	    "volume": 3045100
//	  },
//	  ...
//	]
func parseLatestClose(ticker string, body []byte) (decimal.NullDecimal, error) {
	var jobj any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&jobj); err != nil {
		return decimal.NullDecimal{}, cigarbutt.NewProviderError(ticker, cigarbutt.Malformed, err)
	}
	series, ok := jobj.([]any)
	if !ok {
		return decimal.NullDecimal{}, cigarbutt.NewProviderError(ticker, cigarbutt.Malformed, errors.New("eod series is not a list"))
	}
	if len(series) == 0 {
		return decimal.NullDecimal{}, nil
	}

	path := "$[-1:].close"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.NullDecimal{}, cigarbutt.NewProviderError(ticker, cigarbutt.Malformed, fmt.Errorf("cannot get %q: %w", path, err))
	}
	// jsonpath returns a list for a range selector: keep the first one if any.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return decimal.NullDecimal{}, nil
		}
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case nil:
		return decimal.NullDecimal{}, nil
	case json.Number:
		price, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.NullDecimal{}, cigarbutt.NewProviderError(ticker, cigarbutt.Malformed, err)
		}
		return decimal.NewNullDecimal(price), nil
	default:
		return decimal.NullDecimal{}, cigarbutt.NewProviderError(ticker, cigarbutt.Malformed, fmt.Errorf("%q is not a number: %v", path, jval))
	}
}

// parseFundamentals validates a fundamentals payload.
//
//	https://eodhd.com/api/fundamentals/AAPL.US?api_token=demo&fmt=json
//	{
//	  "General": {"Code": "AAPL", "CurrencyCode": "USD", ...},
//	  "Highlights": {"MarketCapitalization": 3436000000000, ...},
//	  "Financials": {
//	    "Balance_Sheet": {
//	      "currency_symbol": "USD",
//	      "yearly": {
//	        "2024-09-30": {"date": "2024-09-30", "totalCurrentAssets": "152987000000.00", "totalLiab": "308030000000.00", ...},
//	        ...
//	      }
//	    }
//	  }
//	}
func parseFundamentals(ticker string, body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, cigarbutt.NewProviderError(ticker, cigarbutt.Malformed, errors.New("invalid json in fundamentals"))
	}
	f := gjson.ParseBytes(body)
	if !f.IsObject() {
		return gjson.Result{}, cigarbutt.NewProviderError(ticker, cigarbutt.Malformed, fmt.Errorf("fundamentals is not an object: %.40s", f.Raw))
	}
	return f, nil
}

// lineItems maps EODHD balance sheet fields to line item names, in display order.
var lineItems = []struct {
	field, name string
}{
	{"totalAssets", "Total Assets"},
	{"totalCurrentAssets", cigarbutt.CurrentAssets},
	{"cashAndShortTermInvestments", "Cash And Short Term Investments"},
	{"cash", "Cash"},
	{"shortTermInvestments", "Short Term Investments"},
	{"netReceivables", "Receivables"},
	{"inventory", "Inventory"},
	{"otherCurrentAssets", "Other Current Assets"},
	{"nonCurrentAssetsTotal", "Total Non Current Assets"},
	{"propertyPlantAndEquipmentNet", "Net PPE"},
	{"goodWill", "Goodwill"},
	{"intangibleAssets", "Intangible Assets"},
	{"totalLiab", cigarbutt.TotalLiabilitiesNetMinorityInterest},
	{"totalCurrentLiabilities", "Current Liabilities"},
	{"accountsPayable", "Accounts Payable"},
	{"shortTermDebt", "Current Debt"},
	{"nonCurrentLiabilitiesTotal", "Total Non Current Liabilities"},
	{"longTermDebt", "Long Term Debt"},
	{"totalStockholderEquity", "Stockholders Equity"},
	{"retainedEarnings", "Retained Earnings"},
	{"netWorkingCapital", "Working Capital"},
	{"netTangibleAssets", "Net Tangible Assets"},
	{"commonStockSharesOutstanding", "Shares Issued"},
}

// parseBalanceSheet returns the yearly balance sheet of a fundamentals
// payload, or nil if there is none.
func parseBalanceSheet(f gjson.Result) *cigarbutt.BalanceSheet {
	type period struct {
		date   cigarbutt.Date
		values gjson.Result
	}
	var periods []period
	f.Get("Financials.Balance_Sheet.yearly").ForEach(func(key, value gjson.Result) bool {
		date, err := cigarbutt.ParseDate(key.String())
		if err != nil || !value.IsObject() {
			return true // skip
		}
		periods = append(periods, period{date, value})
		return true
	})
	if len(periods) == 0 {
		return nil
	}
	// most recent first
	slices.SortFunc(periods, func(a, b period) int {
		switch {
		case a.date.After(b.date):
			return -1
		case a.date.Before(b.date):
			return 1
		}
		return 0
	})

	dates := make([]cigarbutt.Date, len(periods))
	for i, p := range periods {
		dates[i] = p.date
	}
	bs := cigarbutt.NewBalanceSheet(dates...)
	for _, item := range lineItems {
		for i, p := range periods {
			if v, ok := parseDecimal(p.values.Get(item.field)); ok {
				bs.Set(item.name, i, v)
			}
		}
	}
	return bs
}

// parseDecimal reads a number that EODHD sends either as a JSON number or a string.
//
// null, empty and unparseable values are missing.
func parseDecimal(r gjson.Result) (decimal.Decimal, bool) {
	var s string
	switch r.Type {
	case gjson.Number:
		s = r.Raw
	case gjson.String:
		s = strings.TrimSpace(r.Str)
	default:
		return decimal.Decimal{}, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}
