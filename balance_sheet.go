package cigarbutt

import (
	"github.com/shopspring/decimal"
)

// Canonical balance sheet line items.
//
// Providers use their own taxonomy, they are expected to map their fields to these names.
const (
	CurrentAssets                       = "Current Assets"
	TotalLiabilitiesNetMinorityInterest = "Total Liabilities Net Minority Interest"
)

// BalanceSheet is a table of line items by reporting period.
//
// Periods are ordered most recent first. Every cell is optional: companies do
// not report the same line items, and not every period has every item.
type BalanceSheet struct {
	periods []Date
	items   map[string][]decimal.NullDecimal
	order   []string // line items in insertion order
}

// NewBalanceSheet returns an empty balance sheet for the given periods, most recent first.
func NewBalanceSheet(periods ...Date) *BalanceSheet {
	return &BalanceSheet{
		periods: periods,
		items:   make(map[string][]decimal.NullDecimal),
	}
}

// Set records the value of a line item for the i-th period.
func (b *BalanceSheet) Set(item string, i int, value decimal.Decimal) {
	if i < 0 || i >= len(b.periods) {
		return
	}
	row, ok := b.items[item]
	if !ok {
		row = make([]decimal.NullDecimal, len(b.periods))
		b.items[item] = row
		b.order = append(b.order, item)
	}
	row[i] = decimal.NewNullDecimal(value)
}

// Periods returns the reporting periods, most recent first.
func (b *BalanceSheet) Periods() []Date { return b.periods }

// Items returns the line item names in the order they were first recorded.
func (b *BalanceSheet) Items() []string { return b.order }

// Cell returns the value of item for the i-th period.
func (b *BalanceSheet) Cell(item string, i int) decimal.NullDecimal {
	row, ok := b.items[item]
	if !ok || i < 0 || i >= len(row) {
		return decimal.NullDecimal{}
	}
	return row[i]
}

// Latest returns the value of item in the most recent period.
//
// An item that is missing, or has no value for the most recent period, is
// reported as not found: older periods are never used as a fallback.
func (b *BalanceSheet) Latest(item string) (decimal.Decimal, bool) {
	if b == nil {
		return decimal.Decimal{}, false
	}
	v := b.Cell(item, 0)
	return v.Decimal, v.Valid
}

// IsEmpty returns true if the balance sheet has no period or no line item.
func (b *BalanceSheet) IsEmpty() bool {
	return b == nil || len(b.periods) == 0 || len(b.order) == 0
}
