package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/money"
)

type goalFields struct {
	Name        string
	Description string
	Target      string
	Current     string
	TargetDate  string
}

type progressFields struct {
	Amount string
}

type goalFormKind int

const (
	goalFormNone goalFormKind = iota
	goalFormCreate
	goalFormProgress
)

type GoalsModel struct {
	deps Deps

	goals  []*goal.Goal
	cursor int

	formKind goalFormKind
	form     *huh.Form
	fields   *goalFields
	progress *progressFields
	confirm  Confirmation
	bar      progress.Model

	loaded bool
	busy   bool
	status string
}

func NewGoalsModel(deps Deps) GoalsModel {
	return GoalsModel{
		deps: deps,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
	}
}

func (m GoalsModel) Title() string { return "Goals" }

func (m GoalsModel) ShortHelp() string {
	switch {
	case m.confirm.Active():
		return "y: confirm | n: cancel"
	case m.form != nil:
		return "Enter/Tab: navigate form | Esc: cancel"
	}

	return "n: new goal | p: add progress | d: delete | ↑/↓: select | r: refresh"
}

func (m GoalsModel) Capturing() bool {
	return m.form != nil || m.confirm.Active()
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(failure("load goals", msg.err))
			return m, nil
		}

		m.goals = msg.goals
		m.loaded = true
		m.cursor = min(m.cursor, max(0, len(m.goals)-1))

		return m, nil

	case goalSavedMsg:
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
		m.cursor = min(max(0, len(m.goals)-1), m.cursor+1)
	case "n":
		if !m.busy {
			return m.startCreate()
		}
	case "p":
		if !m.busy && len(m.goals) > 0 {
			return m.startProgress()
		}
	case "d":
		if m.busy || len(m.goals) == 0 {
			return m, nil
		}

		g := m.goals[m.cursor]
		m.confirm = m.confirm.Ask(fmt.Sprintf("Delete goal %q?", g.Name), m.deleteCmd(g.ID))
	case "r":
		return m, m.loadCmd()
	}

	return m, nil
}

func (m GoalsModel) startCreate() (Tab, tea.Cmd) {
	f := &goalFields{}

	m.fields = f
	m.formKind = goalFormCreate
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(required("name")),

			huh.NewText().
				Title("Description").
				Lines(2).
				Value(&f.Description),

			huh.NewInput().
				Title("Target Amount").
				Placeholder("0.00").
				Value(&f.Target).
				Validate(validAmount(true)),

			huh.NewInput().
				Title("Already Saved").
				Placeholder("0.00").
				Value(&f.Current).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					return validAmount(false)(s)
				}),

			huh.NewInput().
				Title("Target Date").
				Description("Optional").
				Placeholder("YYYY-MM-DD").
				Value(&f.TargetDate).
				Validate(validDate(false)),
		),
	).WithWidth(45).WithShowHelp(false)

	return m, m.form.Init()
}

func (m GoalsModel) startProgress() (Tab, tea.Cmd) {
	f := &progressFields{}

	m.progress = f
	m.formKind = goalFormProgress
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Add to " + m.goals[m.cursor].Name).
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(validAmount(true)),
		),
	).WithWidth(45).WithShowHelp(false)

	return m, m.form.Init()
}

func (m GoalsModel) closeForm() GoalsModel {
	m.form = nil
	m.fields = nil
	m.progress = nil
	m.formKind = goalFormNone

	return m
}

func (m GoalsModel) updateForm(msg tea.Msg) (Tab, tea.Cmd) {
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
		kind, fields, pf := m.formKind, m.fields, m.progress
		m = m.closeForm()

		if kind == goalFormCreate {
			m.busy = true
			return m, m.createCmd(fields)
		}

		amount, err := parseAmount(pf.Amount)
		if err != nil {
			m.status = errorStyle.Render(err.Error())
			return m, nil
		}

		g := m.goals[m.cursor]
		m.confirm = m.confirm.Ask(
			fmt.Sprintf("Add %s to %q?", money.Format(amount), g.Name),
			m.progressCmd(g.ID, amount),
		)

		return m, nil
	}

	return m, cmd
}

func (m GoalsModel) View() string {
	sections := []string{titleStyle.Render("Savings Goals")}

	switch {
	case !m.loaded:
		sections = append(sections, "Loading goals...")
	case len(m.goals) == 0:
		sections = append(sections, faintStyle.Render("No goals yet. Press n to create one."))
	}

	now := m.deps.now()

	var active, completed int

	for i, g := range m.goals {
		p := analytics.GoalProgressFor(g, now)
		if g.IsCompleted {
			completed++
		} else {
			active++
		}

		cursor := "  "
		if i == m.cursor {
			cursor = titleStyle.Render("> ")
		}

		header := fmt.Sprintf("%s%s  %s", cursor, lipgloss.NewStyle().Bold(true).Render(g.Name), goalStatusStyle(p.Status).Render(string(p.Status)))
		if g.Description != "" {
			header += faintStyle.Render("  " + g.Description)
		}

		detail := fmt.Sprintf("  %s %3.0f%%  %s of %s",
			m.bar.ViewAs(p.Display/100),
			p.Percentage,
			money.Format(g.CurrentAmount),
			money.Format(g.TargetAmount),
		)

		if p.Remaining.IsPositive() {
			detail += fmt.Sprintf(", %s to go", money.Format(p.Remaining))
		}

		if p.DaysLeft != nil {
			detail += faintStyle.Render(fmt.Sprintf("  %s (%s)", daysLeft(*p.DaysLeft), FormatDate(*g.TargetDate)))
		}

		sections = append(sections, header, detail, "")
	}

	if len(m.goals) > 0 {
		sections = append(sections, faintStyle.Render(fmt.Sprintf("%d active, %d completed", active, completed)))
	}

	if v := m.confirm.View(); v != "" {
		sections = append(sections, v)
	} else if m.status != "" {
		sections = append(sections, m.status)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.form != nil {
		title := "New Goal"
		if m.formKind == goalFormProgress {
			title = "Add Progress"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render(title+"\n\n"+m.form.View()))
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func daysLeft(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 1:
		return "1 day left"
	}

	return fmt.Sprintf("%d days left", days)
}

func goalStatusStyle(s analytics.GoalStatus) lipgloss.Style {
	switch s {
	case analytics.GoalCompleted, analytics.GoalAlmostThere:
		return successStyle
	case analytics.GoalOverdue:
		return errorStyle
	case analytics.GoalOnTrack:
		return warnStyle
	}

	return faintStyle
}

type goalsLoadedMsg struct {
	goals []*goal.Goal
	err   error
}

type goalSavedMsg struct {
	action string
	done   string
	err    error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		var goals []*goal.Goal

		err := withUser(m.deps, func(ctx context.Context, userID uuid.UUID) error {
			var err error
			goals, err = m.deps.Goals.List(ctx, userID)

			return err
		})

		return goalsLoadedMsg{goals: goals, err: err}
	}
}

func (m GoalsModel) createCmd(f *goalFields) tea.Cmd {
	return func() tea.Msg {
		err := withUser(m.deps, func(ctx context.Context, userID uuid.UUID) error {
			target, err := parseAmount(f.Target)
			if err != nil {
				return err
			}

			current := decimal.Zero
			if strings.TrimSpace(f.Current) != "" {
				if current, err = parseAmount(f.Current); err != nil {
					return err
				}
			}

			targetDate, err := parseOptionalDate(f.TargetDate)
			if err != nil {
				return err
			}

			_, err = m.deps.Goals.Create(ctx, goal.CreateParams{
				UserID:        userID,
				Name:          f.Name,
				Description:   f.Description,
				TargetAmount:  target,
				CurrentAmount: current,
				TargetDate:    targetDate,
			})

			return err
		})

		return goalSavedMsg{action: "create goal", done: "Goal created.", err: err}
	}
}

func (m GoalsModel) progressCmd(id uuid.UUID, amount decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		var updated *goal.Goal

		err := withUser(m.deps, func(ctx context.Context, userID uuid.UUID) error {
			var err error
			updated, err = m.deps.Goals.AddProgress(ctx, userID, id, amount)

			return err
		})

		msg := goalSavedMsg{action: "update goal progress", done: "Progress added.", err: err}
		if err == nil && updated.IsCompleted {
			msg.done = fmt.Sprintf("Goal %q reached!", updated.Name)
		}

		return msg
	}
}

func (m GoalsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		err := withUser(m.deps, func(ctx context.Context, userID uuid.UUID) error {
			return m.deps.Goals.Delete(ctx, userID, id)
		})

		return goalSavedMsg{action: "delete goal", done: "Goal deleted.", err: err}
	}
}
