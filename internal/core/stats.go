package core

import "github.com/shopspring/decimal"

type (
	// UserTotal is an amount aggregated by payer name.
	UserTotal struct {
		User  string          `json:"user"`
		Total decimal.Decimal `json:"total"`
	}

	// TypeTotal is an amount aggregated by expense category.
	TypeTotal struct {
		Type  string          `json:"type"`
		Total decimal.Decimal `json:"total"`
	}

	// MonthTotal is an amount aggregated by "YYYY-MM" month label.
	MonthTotal struct {
		Month string          `json:"month"`
		Total decimal.Decimal `json:"total"`
	}

	// OverallStats is the backend's aggregate snapshot: the grand total
	// plus totals grouped by month, payer and category. Read-only and
	// recomputed server-side on every fetch.
	OverallStats struct {
		TotalExpenses decimal.Decimal `json:"total_expenses"`
		ByMonth       []MonthTotal    `json:"monthly_expenses"`
		ByUser        []UserTotal     `json:"expenses_per_user"`
		ByType        []TypeTotal     `json:"expenses_per_type"`
	}

	// MonthBreakdown is one entry of the detailed monthly view: per-payer
	// and per-category totals for a single month.
	MonthBreakdown struct {
		Month  string      `json:"month"`
		ByUser []UserTotal `json:"by_user"`
		ByType []TypeTotal `json:"by_type"`
	}
)
