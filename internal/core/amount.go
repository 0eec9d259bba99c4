// Package core holds the domain types shared by the API client, the
// coordinator state and the web views: expenses, aggregate stats, calendar
// dates, monetary amounts and the monthly pivot transform.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts free-form amount text to a decimal value. Both dot
// and comma decimal separators are accepted. Blank or unparsable input
// yields zero rather than an error: the form submits whatever the user
// typed and the collapsed default keeps the payload well-formed.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders a monetary value with the configured currency
// glyph and exactly two decimals, e.g. "₪12.50". A negative value keeps
// its sign ahead of the glyph.
func FormatAmount(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}
