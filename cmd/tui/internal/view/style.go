package view

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/savvy/internal/money"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	panelStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

var titleCase = cases.Title(language.English)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}

// FormatDate renders a calendar date for display, e.g. "Mar 14, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func card(label string, value string) string {
	return cardStyle.Render(faintStyle.Render(label) + "\n" + value)
}

func amountStyle(d decimal.Decimal) string {
	if d.IsNegative() {
		return expenseStyle.Render(money.Format(d))
	}

	return incomeStyle.Render(money.Format(d))
}

// bar draws a horizontal bar of width cells filled to value/top.
func bar(value, top decimal.Decimal, width int) string {
	if !top.IsPositive() || !value.IsPositive() {
		return ""
	}

	n := int(value.Div(top).Mul(decimal.NewFromInt(int64(width))).IntPart())
	if n < 1 {
		n = 1
	}

	if n > width {
		n = width
	}

	out := make([]rune, n)
	for i := range out {
		out[i] = '█'
	}

	return string(out)
}
