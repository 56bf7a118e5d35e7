package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type credentials struct {
	Email    string
	Password string
}

// LoginModel exchanges an email and password for a session. Success is
// reported through the session's subscribers, not by this model.
type LoginModel struct {
	deps  Deps
	form  *huh.Form
	creds *credentials
	busy  bool
	err   string
}

func NewLoginModel(deps Deps) LoginModel {
	m := LoginModel{deps: deps}
	m.reset()

	return m
}

func (m *LoginModel) reset() {
	c := &credentials{}
	if m.creds != nil {
		c.Email = m.creds.Email
	}

	m.creds = c
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&c.Email).
				Validate(required("email")),

			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(required("password")),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.busy = false
		if result.err != nil {
			m.err = failure("sign in", result.err)
			m.reset()

			return m, m.form.Init()
		}

		m.err = ""

		return m, nil
	}

	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		return m, m.signInCmd(*m.creds)
	}

	return m, cmd
}

func (m LoginModel) View() string {
	body := m.form.View()
	if m.busy {
		body = "Signing in..."
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Sign in to Savvy"),
		"",
		body,
	)

	if m.err != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", errorStyle.Render(m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(panelStyle.Render(content))
}

type loginResultMsg struct{ err error }

func (m LoginModel) signInCmd(c credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.deps.Session.SignIn(ctx, c.Email, c.Password); err != nil {
			return loginResultMsg{err: fmt.Errorf("signing in as %s: %w", c.Email, err)}
		}

		return loginResultMsg{}
	}
}
