package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/money"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type budgetFields struct {
	Category string
	Amount   string
	Period   budget.Period
}

type BudgetsModel struct {
	deps Deps

	budgets []*budget.Budget
	txs     []*transaction.Transaction
	cursor  int

	form    *huh.Form
	fields  *budgetFields
	confirm Confirmation
	bar     progress.Model

	loaded bool
	busy   bool
	status string
}

func NewBudgetsModel(deps Deps) BudgetsModel {
	return BudgetsModel{
		deps: deps,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	switch {
	case m.confirm.Active():
		return "y: confirm | n: cancel"
	case m.form != nil:
		return "Enter/Tab: navigate form | Esc: cancel"
	}

	return "n: new budget | d: delete | ↑/↓: select | r: refresh"
}

func (m BudgetsModel) Capturing() bool {
	return m.form != nil || m.confirm.Active()
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case TransactionsLoadedMsg:
		if msg.Err == nil {
			m.txs = msg.Txs
		}

		return m, nil

	case budgetsLoadedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(failure("load budgets", msg.err))
			return m, nil
		}

		m.budgets = msg.budgets
		m.loaded = true
		m.cursor = min(m.cursor, max(0, len(m.budgets)-1))

		return m, nil

	case budgetSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render(failure(msg.action, msg.err))
			return m, nil
		}

		m.status = successStyle.Render(msg.done)

		return m, m.loadCmd()
	}

	if m.confirm.Active() {
		var cmd tea.Cmd

		m.confirm, cmd = m.confirm.Update(msg)
		if m.confirm.State() == ConfirmCommitted {
			m.busy = true
		}

		return m, cmd
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(max(0, len(m.budgets)-1), m.cursor+1)
	case "n":
		if !m.busy {
			return m.startForm()
		}
	case "d":
		if m.busy || len(m.budgets) == 0 {
			return m, nil
		}

		b := m.budgets[m.cursor]
		m.confirm = m.confirm.Ask(fmt.Sprintf("Delete the %s budget for %s?", b.Period, b.Category), m.deleteCmd(b.ID))
	case "r":
		return m, m.loadCmd()
	}

	return m, nil
}

func (m BudgetsModel) startForm() (Tab, tea.Cmd) {
	f := &budgetFields{
		Category: transaction.ExpenseCategories[0],
		Period:   budget.PeriodMonthly,
	}

	m.fields = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(transaction.ExpenseCategories...)...).
				Value(&f.Category),

			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(validAmount(true)),

			huh.NewSelect[budget.Period]().
				Title("Period").
				Options(
					huh.NewOption("Monthly", budget.PeriodMonthly),
					huh.NewOption("Weekly", budget.PeriodWeekly),
				).
				Value(&f.Period),
		),
	).WithWidth(45).WithShowHelp(false)

	return m, m.form.Init()
}

func (m BudgetsModel) updateForm(msg tea.Msg) (Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form, m.fields = nil, nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.form, m.fields = nil, nil
		return m, nil
	case huh.StateCompleted:
		fields := m.fields
		m.form, m.fields = nil, nil
		m.busy = true

		return m, m.createCmd(fields)
	}

	return m, cmd
}

func (m BudgetsModel) View() string {
	sections := []string{titleStyle.Render("Budgets") + faintStyle.Render("  spending this month")}

	switch {
	case !m.loaded:
		sections = append(sections, "Loading budgets...")
	case len(m.budgets) == 0:
		sections = append(sections, faintStyle.Render("No budgets yet. Press n to create one."))
	}

	now := m.deps.now()

	for i, b := range m.budgets {
		p := analytics.BudgetProgressFor(b, m.txs, now)

		cursor := "  "
		if i == m.cursor {
			cursor = titleStyle.Render("> ")
		}

		header := fmt.Sprintf("%s%s %s  %s",
			cursor,
			lipgloss.NewStyle().Bold(true).Render(b.Category),
			faintStyle.Render(fmt.Sprintf("(%s, %s to %s)", b.Period, b.StartDate.Format("Jan 2"), b.EndDate.Format("Jan 2"))),
			budgetStatusStyle(p.Status).Render(string(p.Status)),
		)

		detail := fmt.Sprintf("  %s %3.0f%%  %s of %s, %s left",
			m.bar.ViewAs(p.Percentage/100),
			p.Percentage,
			money.Format(p.Spent),
			money.Format(b.Amount),
			money.Format(p.Remaining),
		)

		sections = append(sections, header, detail, "")
	}

	if v := m.confirm.View(); v != "" {
		sections = append(sections, v)
	} else if m.status != "" {
		sections = append(sections, m.status)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render("New Budget\n\n"+m.form.View()))
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func budgetStatusStyle(s analytics.BudgetStatus) lipgloss.Style {
	switch s {
	case analytics.BudgetOverBudget, analytics.BudgetAlert:
		return errorStyle
	case analytics.BudgetWarning:
		return warnStyle
	}

	return successStyle
}

type budgetsLoadedMsg struct {
	budgets []*budget.Budget
	err     error
}

type budgetSavedMsg struct {
	action string
	done   string
	err    error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		var budgets []*budget.Budget

		err := withUser(m.deps, func(ctx context.Context, userID uuid.UUID) error {
			var err error
			budgets, err = m.deps.Budgets.List(ctx, userID)

			return err
		})

		return budgetsLoadedMsg{budgets: budgets, err: err}
	}
}

func (m BudgetsModel) createCmd(f *budgetFields) tea.Cmd {
	return func() tea.Msg {
		err := withUser(m.deps, func(ctx context.Context, userID uuid.UUID) error {
			amount, err := parseAmount(f.Amount)
			if err != nil {
				return err
			}

			_, err = m.deps.Budgets.Create(ctx, budget.CreateParams{
				UserID:   userID,
				Category: f.Category,
				Amount:   amount,
				Period:   f.Period,
			})

			return err
		})

		return budgetSavedMsg{action: "create budget", done: "Budget created.", err: err}
	}
}

func (m BudgetsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		err := withUser(m.deps, func(ctx context.Context, userID uuid.UUID) error {
			return m.deps.Budgets.Delete(ctx, userID, id)
		})

		return budgetSavedMsg{action: "delete budget", done: "Budget deleted.", err: err}
	}
}
