package cigarbutt

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed when the provider does not report the currency of a company's financials.
const DefaultCurrency = "USD"

// Money represents a monetary value, used for display only.
//
// Computations are done on decimal.Decimal directly, Money only knows how to
// print itself the way the currency is usually written.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of value in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, m.cur).Currency()
	if cur.Template == "" {
		// unknown to go-money, print the code after the value.
		cur = money.Currency{Code: m.cur, Grapheme: m.cur, Template: "1 $", Decimal: ".", Thousand: ",", Fraction: 2}
	}
	return cur
}

// String returns the value with the currency's own number of fraction digits, e.g. "$1,234.57".
func (m Money) String() string {
	cur := m.currency()
	return format(m.value, cur.Fraction, cur)
}

// Whole returns the value rounded to the major unit, e.g. "$1,235".
func (m Money) Whole() string {
	return format(m.value, 0, m.currency())
}

func (m Money) Currency() string       { return m.cur }
func (m Money) Value() decimal.Decimal { return m.value }
func (m Money) IsNegative() bool       { return m.value.IsNegative() }

// Count formats a plain number rounded to units with thousand separators, e.g. "485,987".
func Count(v decimal.Decimal) string {
	return money.NewFormatter(0, ".", ",", "", "1").Format(v.Round(0).IntPart())
}

func format(v decimal.Decimal, fraction int, cur money.Currency) string {
	f := money.NewFormatter(fraction, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(v.Round(int32(fraction)).Shift(int32(fraction)).IntPart())
}
