package core

import "github.com/shopspring/decimal"

// WideRow is one month of the per-user pivot: the month label plus one
// entry per payer that actually spent in that month. Payers absent from a
// month have no key at all; consumers must read a missing key as zero.
type WideRow struct {
	Month  string
	Totals map[string]decimal.Decimal
}

// PivotByUser reshapes the monthly breakdown into wide rows suitable for
// a grouped per-user chart, one row per input month in input order, and
// returns the distinct payer names in order of first appearance.
//
// The transform is pure: the same input always produces the same rows and
// the same name ordering. Empty input yields empty results.
func PivotByUser(months []MonthBreakdown) ([]WideRow, []string) {
	rows := make([]WideRow, 0, len(months))
	users := make([]string, 0)
	seen := make(map[string]bool)

	for _, m := range months {
		row := WideRow{
			Month:  m.Month,
			Totals: make(map[string]decimal.Decimal, len(m.ByUser)),
		}
		for _, u := range m.ByUser {
			if !seen[u.User] {
				seen[u.User] = true
				users = append(users, u.User)
			}
			row.Totals[u.User] = u.Total
		}
		rows = append(rows, row)
	}

	return rows, users
}
