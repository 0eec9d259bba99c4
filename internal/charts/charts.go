// Package charts renders the dashboard panels as inline SVG using
// gonum/plot. Every panel cycles through the same fixed palette by index,
// so the same series keeps the same color across renders.
package charts

import (
	"bytes"
	"fmt"
	"html/template"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"expenseboard/internal/core"
)

// palette mirrors the dashboard's fixed eight-color cycle.
var palette = []color.Color{
	color.RGBA{R: 0x4e, G: 0x79, B: 0xa7, A: 0xff},
	color.RGBA{R: 0xf2, G: 0x8e, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xe1, G: 0x57, B: 0x59, A: 0xff},
	color.RGBA{R: 0x76, G: 0xb7, B: 0xb2, A: 0xff},
	color.RGBA{R: 0x59, G: 0xa1, B: 0x4f, A: 0xff},
	color.RGBA{R: 0xed, G: 0xc9, B: 0x49, A: 0xff},
	color.RGBA{R: 0xaf, G: 0x7a, B: 0xa1, A: 0xff},
	color.RGBA{R: 0xff, G: 0x9d, B: 0xa7, A: 0xff},
}

// Color returns the palette entry for a series index.
func Color(i int) color.Color {
	return palette[i%len(palette)]
}

// Renderer draws the four dashboard panels.
type Renderer struct {
	symbol string
	width  vg.Length
	height vg.Length
}

func NewRenderer(currencySymbol string) *Renderer {
	return &Renderer{
		symbol: currencySymbol,
		width:  5 * vg.Inch,
		height: 3 * vg.Inch,
	}
}

// CategoryDistribution renders spending by category as horizontal bars.
func (r *Renderer) CategoryDistribution(rows []core.TypeTotal) (template.HTML, error) {
	labels := make([]string, len(rows))
	values := make(plotter.Values, len(rows))
	for i, row := range rows {
		labels[i] = row.Type
		values[i] = row.Total.InexactFloat64()
	}
	return r.singleSeries("Spending by Category", labels, values, true)
}

// UserTotals renders total spending per payer.
func (r *Renderer) UserTotals(rows []core.UserTotal) (template.HTML, error) {
	labels := make([]string, len(rows))
	values := make(plotter.Values, len(rows))
	for i, row := range rows {
		labels[i] = row.User
		values[i] = row.Total.InexactFloat64()
	}
	return r.singleSeries("Spending by User", labels, values, false)
}

// MonthTotals renders total spending per month.
func (r *Renderer) MonthTotals(rows []core.MonthTotal) (template.HTML, error) {
	labels := make([]string, len(rows))
	values := make(plotter.Values, len(rows))
	for i, row := range rows {
		labels[i] = row.Month
		values[i] = row.Total.InexactFloat64()
	}
	return r.singleSeries("Spending by Month", labels, values, false)
}

// MonthlyByUser renders the pivot output as grouped bars, one series per
// payer. A payer missing from a month is plotted as zero.
func (r *Renderer) MonthlyByUser(rows []core.WideRow, users []string) (template.HTML, error) {
	if len(rows) == 0 || len(users) == 0 {
		return placeholder(), nil
	}

	p := plot.New()
	p.Title.Text = "Who Spent per Month"
	p.Y.Label.Text = "Total (" + r.symbol + ")"

	groupWidth := vg.Points(36)
	barWidth := groupWidth / vg.Length(len(users))

	for i, user := range users {
		values := make(plotter.Values, len(rows))
		for j, row := range rows {
			if total, ok := row.Totals[user]; ok {
				values[j] = total.InexactFloat64()
			}
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return "", fmt.Errorf("bar chart for %q: %w", user, err)
		}
		bars.LineStyle.Width = 0
		bars.Color = Color(i)
		bars.Offset = barWidth*vg.Length(i) - groupWidth/2 + barWidth/2
		p.Add(bars)
		p.Legend.Add(user, bars)
	}
	p.Legend.Top = true

	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Month
	}
	p.NominalX(labels...)

	return r.render(p)
}

// singleSeries draws one bar chart, each bar colored by its index.
func (r *Renderer) singleSeries(title string, labels []string, values plotter.Values, horizontal bool) (template.HTML, error) {
	if len(values) == 0 {
		return placeholder(), nil
	}

	p := plot.New()
	p.Title.Text = title

	// One chart per bar keeps the palette cycling per label, matching the
	// per-slice coloring of the category panel.
	for i, v := range values {
		single := make(plotter.Values, len(values))
		single[i] = v
		bars, err := plotter.NewBarChart(single, vg.Points(24))
		if err != nil {
			return "", fmt.Errorf("bar chart %q: %w", title, err)
		}
		bars.LineStyle.Width = 0
		bars.Color = Color(i)
		bars.Horizontal = horizontal
		p.Add(bars)
	}

	if horizontal {
		p.X.Label.Text = "Total (" + r.symbol + ")"
		p.NominalY(labels...)
	} else {
		p.Y.Label.Text = "Total (" + r.symbol + ")"
		p.NominalX(labels...)
	}

	return r.render(p)
}

func (r *Renderer) render(p *plot.Plot) (template.HTML, error) {
	writer, err := p.WriterTo(r.width, r.height, "svg")
	if err != nil {
		return "", fmt.Errorf("svg writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("write svg: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func placeholder() template.HTML {
	return `<div class="chart-empty">No data yet</div>`
}
