package renderer

import (
	"github.com/etnz/cigarbutt"
)

// MaxLineItems is the maximum number of balance sheet line items in a report.
const MaxLineItems = 20

// Missing is printed in place of a balance sheet value the provider does not know.
const Missing = "—"

// Report is a struct to represent the evaluation of a ticker in json.
// Figures are already formatted.
type Report struct {
	// Ticker in upper case.
	Ticker string `json:"ticker"`
	// Periods of the balance sheet, most recent first.
	Periods []string `json:"periods,omitempty"`
	// LineItems of the balance sheet, at most MaxLineItems.
	LineItems []LineItem `json:"lineItems,omitempty"`

	Price             string `json:"price"`
	CurrentAssets     string `json:"currentAssets"`
	TotalLiabilities  string `json:"totalLiabilities"`
	SharesOutstanding string `json:"sharesOutstanding"`
	NCAVPerShare      string `json:"ncavPerShare"`
	// Qualifies is true for a cigar butt.
	Qualifies bool `json:"qualifies"`
}

// LineItem is a row of the balance sheet, one value per period.
type LineItem struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// NewReport creates a new Report from an evaluation.
func NewReport(e *cigarbutt.Evaluation) *Report {
	r := &Report{
		Ticker:            e.Title(),
		Price:             e.Price().String(),
		CurrentAssets:     e.CurrentAssets().Whole(),
		TotalLiabilities:  e.TotalLiabilities().Whole(),
		SharesOutstanding: cigarbutt.Count(e.SharesOutstanding),
		NCAVPerShare:      e.NCAVPerShareMoney().String(),
		Qualifies:         e.Qualifies,
	}

	bs := e.BalanceSheet
	if bs.IsEmpty() {
		return r
	}
	for _, p := range bs.Periods() {
		r.Periods = append(r.Periods, p.String())
	}
	for i, name := range bs.Items() {
		if i >= MaxLineItems {
			break
		}
		item := LineItem{Name: name}
		for j := range bs.Periods() {
			v := Missing
			if c := bs.Cell(name, j); c.Valid {
				v = cigarbutt.Count(c.Decimal)
			}
			item.Values = append(item.Values, v)
		}
		r.LineItems = append(r.LineItems, item)
	}
	return r
}
