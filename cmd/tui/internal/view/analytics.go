package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/money"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

const barWidth = 24

// AnalyticsModel is read-only: everything it shows is derived from the shared
// transaction slice.
type AnalyticsModel struct {
	deps Deps
	txs  []*transaction.Transaction
}

func NewAnalyticsModel(deps Deps) AnalyticsModel {
	return AnalyticsModel{deps: deps}
}

func (m AnalyticsModel) Title() string     { return "Analytics" }
func (m AnalyticsModel) ShortHelp() string { return "r: refresh" }
func (m AnalyticsModel) Capturing() bool   { return false }
func (m AnalyticsModel) Init() tea.Cmd     { return nil }

func (m AnalyticsModel) Update(msg tea.Msg) (Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case TransactionsLoadedMsg:
		if msg.Err == nil {
			m.txs = msg.Txs
		}
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, TransactionsChanged
		}
	}

	return m, nil
}

func (m AnalyticsModel) View() string {
	if len(m.txs) == 0 {
		return lipgloss.NewStyle().Padding(1).Render(faintStyle.Render("Add some transactions to see analytics."))
	}

	left := lipgloss.JoinVertical(lipgloss.Left, m.viewMonthly(), "", m.viewWeekly())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().MarginRight(4).Render(left), m.viewCategories()),
	)
}

func (m AnalyticsModel) viewMonthly() string {
	lines := []string{
		titleStyle.Render("Monthly Trend"),
		faintStyle.Render(fmt.Sprintf("%-8s %16s %16s %16s", "Month", "Income", "Expenses", "Balance")),
	}

	for _, b := range analytics.MonthlyTrend(m.txs) {
		lines = append(lines, fmt.Sprintf("%-8s %16s %16s %16s",
			b.Label(),
			money.Format(b.Income),
			money.Format(b.Expenses),
			money.Format(b.Balance),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m AnalyticsModel) viewWeekly() string {
	weeks := analytics.WeeklyTrend(m.txs)
	lines := []string{titleStyle.Render("Weekly Expenses")}

	if len(weeks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, faintStyle.Render("No expenses yet."))...)
	}

	top := decimal.Zero
	for _, w := range weeks {
		top = decimal.Max(top, w.Amount)
	}

	for _, w := range weeks {
		lines = append(lines, fmt.Sprintf("%-9s %-*s %s", w.Label(), barWidth, expenseStyle.Render(bar(w.Amount, top, barWidth)), money.Format(w.Amount)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m AnalyticsModel) viewCategories() string {
	breakdown := analytics.CategoryBreakdown(m.txs, analytics.RecentSince(m.deps.now()))
	lines := []string{titleStyle.Render(fmt.Sprintf("Categories (last %d days)", analytics.RecentDays))}

	if len(breakdown) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, faintStyle.Render("No recent expenses."))...)
	}

	var total decimal.Decimal
	for _, c := range breakdown {
		total = total.Add(c.Amount)
	}

	for _, c := range breakdown {
		var share float64
		if total.IsPositive() {
			share = c.Amount.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}

		lines = append(lines, fmt.Sprintf("%-18s %14s %5.1f%%", c.Category, money.Format(c.Amount), share))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
