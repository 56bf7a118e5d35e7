package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/savvy/internal/export"
	"github.com/MrJamesThe3rd/savvy/internal/money"
	"github.com/MrJamesThe3rd/savvy/internal/report"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type exportState int

const (
	exportStateIdle exportState = iota
	exportStateForm
	exportStateExporting
)

type exportFields struct {
	Range  report.Range
	Format report.Format
	Dir    string
}

type ExportModel struct {
	deps Deps
	txs  []*transaction.Transaction

	state   exportState
	form    *huh.Form
	fields  *exportFields
	dir     string
	spinner spinner.Model

	result string
	err    error
}

func NewExportModel(deps Deps) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		deps:    deps,
		dir:     "./exports",
		spinner: s,
	}
}

func (m ExportModel) Title() string { return "Export" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateForm:
		return "Enter/Tab: navigate form | Esc: cancel"
	case exportStateExporting:
		return "Exporting..."
	}

	return "e: export data"
}

func (m ExportModel) Capturing() bool {
	return m.state != exportStateIdle
}

func (m ExportModel) Init() tea.Cmd { return nil }

func (m ExportModel) Update(msg tea.Msg) (Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case TransactionsLoadedMsg:
		if msg.Err == nil {
			m.txs = msg.Txs
		}

		return m, nil

	case exportResultMsg:
		m.state = exportStateIdle
		m.err = msg.err
		m.result = msg.summary

		return m, nil
	}

	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "e" {
		return m.startForm()
	}

	return m, nil
}

func (m ExportModel) startForm() (Tab, tea.Cmd) {
	f := &exportFields{Range: report.RangeMonth, Format: report.FormatCSV, Dir: m.dir}

	rangeOptions := make([]huh.Option[report.Range], 0, len(report.Ranges))
	for _, r := range report.Ranges {
		rangeOptions = append(rangeOptions, huh.NewOption(rangeTitle(r), r))
	}

	m.fields = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[report.Range]().
				Title("Date Range").
				Options(rangeOptions...).
				Value(&f.Range),

			huh.NewSelect[report.Format]().
				Title("Format").
				Options(
					huh.NewOption("CSV (spreadsheet)", report.FormatCSV),
					huh.NewOption("PDF (report)", report.FormatPDF),
				).
				Value(&f.Format),

			huh.NewInput().
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&f.Dir).
				Validate(required("output directory")),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = exportStateForm
	m.err = nil
	m.result = ""

	return m, m.form.Init()
}

func (m ExportModel) updateForm(msg tea.Msg) (Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = exportStateIdle
		m.form, m.fields = nil, nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.state = exportStateIdle
		m.form, m.fields = nil, nil

		return m, nil
	case huh.StateCompleted:
		fields := m.fields
		m.form, m.fields = nil, nil
		m.dir = fields.Dir
		m.state = exportStateExporting

		return m, tea.Batch(m.spinner.Tick, m.exportCmd(fields))
	}

	return m, cmd
}

func (m ExportModel) View() string {
	var content string

	switch m.state {
	case exportStateForm:
		content = m.form.View()
	case exportStateExporting:
		content = fmt.Sprintf("%s Exporting transactions...", m.spinner.View())
	default:
		lines := []string{
			titleStyle.Render("Export Data"),
			fmt.Sprintf("%d transactions loaded. Press e to export them as CSV or PDF.", len(m.txs)),
		}

		switch {
		case m.err != nil:
			lines = append(lines, "", errorStyle.Render(m.err.Error()))
		case m.result != "":
			lines = append(lines, "", successStyle.Render("Export Complete!"), "", m.result)
		}

		content = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func rangeTitle(r report.Range) string {
	switch r {
	case report.RangeMonth:
		return "Last Month"
	case report.RangeQuarter:
		return "Last 3 Months"
	case report.RangeYear:
		return "Last Year"
	}

	return "All Time"
}

type exportResultMsg struct {
	summary string
	err     error
}

// exportCmd renders the shared transaction slice, so the file matches what
// the other tabs show.
func (m ExportModel) exportCmd(f *exportFields) tea.Cmd {
	txs := m.txs
	now := m.deps.now()

	return func() tea.Msg {
		rep := report.New(txs, f.Range, now)

		path, err := export.Save(rep, f.Format, f.Dir)
		if err != nil {
			return exportResultMsg{err: errors.New(failure("export data", err))}
		}

		summary := fmt.Sprintf(
			"File:         %s\nTransactions: %d\nIncome:       %s\nExpenses:     %s\nNet Balance:  %s\nGenerated:    %s",
			path,
			len(rep.Transactions),
			money.Format(rep.Totals.Income),
			money.Format(rep.Totals.Expenses),
			money.Format(rep.Totals.Balance),
			rep.GeneratedAt.Format(time.DateTime),
		)

		return exportResultMsg{summary: summary}
	}
}
