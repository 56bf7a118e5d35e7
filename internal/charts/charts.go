// Package charts renders aggregator output as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/money"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

const (
	width  = 1000
	height = 500
)

var (
	incomeColor  = drawing.ColorFromHex("16a34a")
	expenseColor = drawing.ColorFromHex("dc2626")
	balanceColor = drawing.ColorFromHex("2563eb")
)

func background() chart.Style {
	return chart.Style{
		Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		FillColor: chart.ColorWhite,
	}
}

func moneyFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return money.Plain(decimal.NewFromFloat(f))
	}

	return ""
}

// CategoryPie renders the expense breakdown, one slice per category.
func CategoryPie(breakdown []analytics.CategoryAmount) ([]byte, error) {
	values := make([]chart.Value, 0, len(breakdown))

	for _, c := range breakdown {
		if !c.Amount.IsPositive() {
			continue
		}

		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s", c.Category, money.Format(c.Amount)),
			Value: c.Amount.InexactFloat64(),
		})
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := chart.PieChart{
		Title:      "Spending by Category",
		Width:      width,
		Height:     width,
		Values:     values,
		Background: background(),
	}

	return render(pie, "category pie")
}

// MonthlyLines renders income, expenses and balance per month bucket.
func MonthlyLines(buckets []analytics.MonthBucket) ([]byte, error) {
	if len(buckets) == 0 {
		return nil, ErrNoData
	}

	xs := make([]float64, len(buckets))
	income := make([]float64, len(buckets))
	expenses := make([]float64, len(buckets))
	balance := make([]float64, len(buckets))

	// go-chart derives the x range from the tick span, so blank edge ticks
	// keep half a slot of margin and give a single month a non-zero width.
	ticks := make([]chart.Tick, 0, len(buckets)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})

	for i, b := range buckets {
		xs[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: b.Label()})
		income[i] = b.Income.InexactFloat64()
		expenses[i] = b.Expenses.InexactFloat64()
		balance[i] = b.Balance.InexactFloat64()
	}

	ticks = append(ticks, chart.Tick{Value: float64(len(buckets)) - 0.5})

	lo, hi := bounds(income, expenses, balance)

	graph := chart.Chart{
		Title:      "Monthly Trend",
		Width:      width,
		Height:     height,
		Background: background(),
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			ValueFormatter: moneyFormatter,
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []chart.Series{
			line("Income", xs, income, incomeColor),
			line("Expenses", xs, expenses, expenseColor),
			line("Balance", xs, balance, balanceColor),
		},
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return render(graph, "monthly trend")
}

// WeeklyBars renders weekly expense totals.
func WeeklyBars(buckets []analytics.WeekBucket) ([]byte, error) {
	bars := make([]chart.Value, 0, len(buckets))
	values := make([]float64, 0, len(buckets))

	for _, b := range buckets {
		v := b.Amount.InexactFloat64()
		values = append(values, v)

		bars = append(bars, chart.Value{
			Label: b.Label(),
			Value: v,
			Style: chart.Style{FillColor: expenseColor, StrokeColor: expenseColor},
		})
	}

	if len(bars) == 0 {
		return nil, ErrNoData
	}

	_, hi := bounds(values)

	graph := chart.BarChart{
		Title:      "Weekly Spending",
		Width:      width,
		Height:     height,
		BarWidth:   60,
		Background: background(),
		YAxis: chart.YAxis{
			ValueFormatter: moneyFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: hi},
		},
		Bars: bars,
	}

	return render(graph, "weekly spending")
}

// BudgetPie renders the amount budgeted per category, labelled with what has
// been spent and what remains this month.
func BudgetPie(slices []analytics.BudgetSlice) ([]byte, error) {
	values := make([]chart.Value, 0, len(slices))

	for _, s := range slices {
		if !s.Budgeted.IsPositive() {
			continue
		}

		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s spent, %s left", s.Category, money.Format(s.Spent), money.Format(s.Remaining)),
			Value: s.Budgeted.InexactFloat64(),
		})
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := chart.PieChart{
		Title:      "Budget Distribution",
		Width:      width,
		Height:     width,
		Values:     values,
		Background: background(),
	}

	return render(pie, "budget pie")
}

func line(name string, xs, ys []float64, color drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
			DotColor:    color,
			DotWidth:    4,
		},
	}
}

// bounds returns a y-range covering every value and zero, padded by a tenth so
// a flat series still has a non-zero span.
func bounds(series ...[]float64) (lo, hi float64) {
	for _, s := range series {
		for _, v := range s {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	pad := (hi - lo) / 10
	if pad == 0 {
		pad = 1
	}

	if lo < 0 {
		lo -= pad
	}

	return lo, hi + pad
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func render(c renderable, name string) ([]byte, error) {
	var buf bytes.Buffer

	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}

	return buf.Bytes(), nil
}
