package charts

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"expenseboard/internal/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestColorCyclesThroughPalette(t *testing.T) {
	if Color(0) != Color(len(palette)) {
		t.Fatalf("index %d should wrap to index 0", len(palette))
	}
	if Color(1) == Color(2) {
		t.Fatalf("adjacent indexes must differ")
	}
}

func TestCategoryDistributionRendersSVG(t *testing.T) {
	r := NewRenderer("₪")
	svg, err := r.CategoryDistribution([]core.TypeTotal{
		{Type: "Food", Total: dec("50")},
		{Type: "Transport", Total: dec("12.5")},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Fatalf("expected inline SVG, got %q", truncate(string(svg)))
	}
	if !strings.Contains(string(svg), "Spending by Category") {
		t.Fatalf("missing title")
	}
}

func TestUserAndMonthTotalsRenderSVG(t *testing.T) {
	r := NewRenderer("€")

	svg, err := r.UserTotals([]core.UserTotal{{User: "A", Total: dec("50")}})
	if err != nil || !strings.Contains(string(svg), "<svg") {
		t.Fatalf("user totals: err=%v", err)
	}
	if !strings.Contains(string(svg), "Total (€)") {
		t.Fatalf("currency symbol not applied to axis label")
	}

	svg, err = r.MonthTotals([]core.MonthTotal{{Month: "2025-01", Total: dec("62.5")}})
	if err != nil || !strings.Contains(string(svg), "<svg") {
		t.Fatalf("month totals: err=%v", err)
	}
}

func TestMonthlyByUserRendersAllSeries(t *testing.T) {
	r := NewRenderer("₪")
	rows, users := core.PivotByUser([]core.MonthBreakdown{
		{Month: "2025-01", ByUser: []core.UserTotal{{User: "Noam", Total: dec("300")}, {User: "Dana", Total: dec("200")}}},
		{Month: "2025-02", ByUser: []core.UserTotal{{User: "Noam", Total: dec("150")}}},
	})

	svg, err := r.MonthlyByUser(rows, users)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(svg)
	for _, want := range []string{"<svg", "Noam", "Dana", "2025-01", "2025-02"} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
}

func TestEmptyInputsRenderPlaceholder(t *testing.T) {
	r := NewRenderer("₪")

	svg, err := r.CategoryDistribution(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(svg), "<svg") {
		t.Fatalf("empty data should not produce a chart")
	}

	svg, err = r.MonthlyByUser(nil, nil)
	if err != nil || strings.Contains(string(svg), "<svg") {
		t.Fatalf("empty pivot should produce placeholder, err=%v", err)
	}
}

func truncate(s string) string {
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
