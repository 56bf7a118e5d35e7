package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/money"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type dashboardState int

const (
	dashboardBrowse dashboardState = iota
	dashboardSearch
	dashboardAdding
)

const topCategories = 5

// txFields backs the add-transaction form. It lives on the heap so the form's
// bindings survive model copies.
type txFields struct {
	Type        transaction.Type
	Category    string
	Description string
	Amount      string
	Date        string
}

func (f *txFields) params(userID uuid.UUID) (transaction.CreateParams, error) {
	amount, err := parseAmount(f.Amount)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(f.Date))
	if err != nil {
		return transaction.CreateParams{}, inputError{fmt.Errorf("invalid date %q", f.Date)}
	}

	return transaction.CreateParams{
		UserID:      userID,
		Type:        f.Type,
		Category:    f.Category,
		Description: f.Description,
		Amount:      amount,
		Date:        date,
	}, nil
}

type DashboardModel struct {
	deps Deps

	state   dashboardState
	txs     []*transaction.Transaction
	visible []*transaction.Transaction
	filter  analytics.TransactionFilter

	table   table.Model
	search  textinput.Model
	form    *huh.Form
	fields  *txFields
	confirm Confirmation

	loaded bool
	busy   bool
	status string
}

func NewDashboardModel(deps Deps) DashboardModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 13},
			{Title: "Type", Width: 8},
			{Title: "Category", Width: 18},
			{Title: "Description", Width: 30},
			{Title: "Amount", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	search := textinput.New()
	search.Placeholder = "search description or category"
	search.Prompt = "/ "

	return DashboardModel{
		deps:   deps,
		table:  t,
		search: search,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	switch {
	case m.confirm.Active():
		return "y: confirm | n: cancel"
	case m.state == dashboardAdding:
		return "Enter/Tab: navigate form | Esc: cancel"
	case m.state == dashboardSearch:
		return "Enter: apply | Esc: clear"
	}

	return "a: add | d: delete | /: search | t: type | c: category | r: refresh"
}

func (m DashboardModel) Capturing() bool {
	return m.state != dashboardBrowse || m.confirm.Active()
}

func (m DashboardModel) Init() tea.Cmd { return nil }

func (m DashboardModel) Update(msg tea.Msg) (Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case TransactionsLoadedMsg:
		if msg.Err == nil {
			m.txs = msg.Txs
			m.loaded = true
			m.refresh()
		}

		return m, nil

	case txSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render(failure("add transaction", msg.err))
			return m, nil
		}

		m.status = successStyle.Render("Transaction added.")

		return m, TransactionsChanged

	case txDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render(failure("delete transaction", msg.err))
			return m, nil
		}

		m.status = successStyle.Render("Transaction deleted.")

		return m, TransactionsChanged

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(5, msg.Height-24))
		return m, nil
	}

	if m.confirm.Active() {
		var cmd tea.Cmd

		m.confirm, cmd = m.confirm.Update(msg)
		if m.confirm.State() == ConfirmCommitted {
			m.busy = true
		}

		return m, cmd
	}

	switch m.state {
	case dashboardSearch:
		return m.updateSearch(msg)
	case dashboardAdding:
		return m.updateAdding(msg)
	}

	return m.updateBrowse(msg)
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "a":
			if m.busy {
				return m, nil
			}

			return m.startAdding()
		case "d":
			if m.busy {
				return m, nil
			}

			tx := m.selected()
			if tx == nil {
				return m, nil
			}

			m.confirm = m.confirm.Ask(
				fmt.Sprintf("Delete %q (%s)?", tx.Description, money.Signed(tx.Signed())),
				m.deleteCmd(tx.ID),
			)

			return m, nil
		case "/":
			m.state = dashboardSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "t":
			m.filter.Type = nextType(m.filter.Type)
			m.refresh()

			return m, nil
		case "c":
			m.filter.Category = nextCategory(analytics.Categories(m.txs), m.filter.Category)
			m.refresh()

			return m, nil
		case "r":
			return m, TransactionsChanged
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateSearch(msg tea.Msg) (Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.state = dashboardBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEsc:
			m.state = dashboardBrowse
			m.search.SetValue("")
			m.search.Blur()
			m.table.Focus()
			m.filter.Search = ""
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	m.filter.Search = m.search.Value()
	m.refresh()

	return m, cmd
}

func (m DashboardModel) startAdding() (Tab, tea.Cmd) {
	f := &txFields{
		Type: transaction.TypeExpense,
		Date: m.deps.now().Format(time.DateOnly),
	}

	m.fields = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&f.Type),

			huh.NewSelect[string]().
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					return huh.NewOptions(transaction.Categories(f.Type)...)
				}, &f.Type).
				Value(&f.Category),

			huh.NewInput().
				Title("Description").
				Value(&f.Description).
				Validate(required("description")),

			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(validAmount(false)),

			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.Date).
				Validate(validDate(true)),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = dashboardAdding
	m.table.Blur()

	return m, m.form.Init()
}

func (m DashboardModel) updateAdding(msg tea.Msg) (Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m.closeForm(), nil
	case huh.StateCompleted:
		fields := m.fields
		m = m.closeForm()
		m.busy = true

		return m, m.saveCmd(fields)
	}

	return m, cmd
}

func (m DashboardModel) closeForm() DashboardModel {
	m.state = dashboardBrowse
	m.form = nil
	m.fields = nil
	m.table.Focus()

	return m
}

func (m DashboardModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return m.visible[idx]
}

func (m *DashboardModel) refresh() {
	m.visible = analytics.FilterTransactions(m.txs, m.filter)

	rows := make([]table.Row, 0, len(m.visible))
	for _, tx := range m.visible {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			tx.Category,
			tx.Description,
			money.Signed(tx.Signed()),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m DashboardModel) View() string {
	if !m.loaded {
		return lipgloss.NewStyle().Padding(1).Render("Loading transactions...")
	}

	totals := analytics.Summarize(m.txs)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Income", incomeStyle.Render(money.Format(totals.Income))),
		card("Total Expenses", expenseStyle.Render(money.Format(totals.Expenses))),
		card("Balance", amountStyle(totals.Balance)),
		card("Savings Rate", fmt.Sprintf("%.1f%%", totals.SavingsRate)),
	)

	sections := []string{cards, "", m.viewCategories(), ""}

	filterLine := fmt.Sprintf("Type: %s | Category: %s",
		titleStyle.Render(orAll(string(m.filter.Type))),
		titleStyle.Render(orAll(m.filter.Category)),
	)

	if m.state == dashboardSearch || m.filter.Search != "" {
		filterLine += "  " + m.search.View()
	}

	sections = append(sections, filterLine, m.table.View())

	if len(m.visible) == 0 {
		sections = append(sections, faintStyle.Render("No transactions found."))
	}

	if v := m.confirm.View(); v != "" {
		sections = append(sections, v)
	} else if m.status != "" {
		sections = append(sections, m.status)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.state == dashboardAdding && m.form != nil {
		panel := panelStyle.Width(48).Render("Add Transaction\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) viewCategories() string {
	breakdown := analytics.CategoryBreakdown(m.txs, analytics.RecentSince(m.deps.now()))

	lines := []string{titleStyle.Render(fmt.Sprintf("Spending by category (last %d days)", analytics.RecentDays))}
	if len(breakdown) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, faintStyle.Render("No expenses yet."))...)
	}

	top := breakdown[0].Amount
	for i, c := range breakdown {
		if i == topCategories {
			break
		}

		lines = append(lines, fmt.Sprintf("%-18s %-20s %s", c.Category, expenseStyle.Render(bar(c.Amount, top, 20)), money.Format(c.Amount)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type txSavedMsg struct{ err error }

type txDeletedMsg struct{ err error }

func (m DashboardModel) saveCmd(f *txFields) tea.Cmd {
	return func() tea.Msg {
		err := withUser(m.deps, func(ctx context.Context, userID uuid.UUID) error {
			params, err := f.params(userID)
			if err != nil {
				return err
			}

			_, err = m.deps.Transactions.Create(ctx, params)

			return err
		})

		return txSavedMsg{err: err}
	}
}

func (m DashboardModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		err := withUser(m.deps, func(ctx context.Context, userID uuid.UUID) error {
			return m.deps.Transactions.Delete(ctx, userID, id)
		})

		return txDeletedMsg{err: err}
	}
}

func nextType(t transaction.Type) transaction.Type {
	switch t {
	case "":
		return transaction.TypeExpense
	case transaction.TypeExpense:
		return transaction.TypeIncome
	}

	return ""
}

func nextCategory(categories []string, current string) string {
	if len(categories) == 0 {
		return ""
	}

	if current == "" {
		return categories[0]
	}

	for i, c := range categories {
		if c == current && i+1 < len(categories) {
			return categories[i+1]
		}
	}

	return ""
}

func orAll(s string) string {
	if s == "" {
		return "All"
	}

	return titleCase.String(s)
}
