package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/savvy/internal/session"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
)

// Shell owns the transaction slice and the tabs. Any mutation ends in a
// TransactionsChangedMsg; the shell re-fetches and hands the fresh slice to
// every tab.
type Shell struct {
	deps Deps

	signedIn bool
	login    LoginModel

	tabs   []Tab
	active int

	txs     []*transaction.Transaction
	loading bool
	status  string
}

func NewShell(deps Deps) Shell {
	_, signedIn := deps.Session.Current()

	return Shell{
		deps:     deps,
		signedIn: signedIn,
		login:    NewLoginModel(deps),
		tabs:     newTabs(deps),
		loading:  signedIn,
	}
}

func newTabs(deps Deps) []Tab {
	return []Tab{
		NewDashboardModel(deps),
		NewBudgetsModel(deps),
		NewAnalyticsModel(deps),
		NewGoalsModel(deps),
		NewExportModel(deps),
	}
}

func (s Shell) Init() tea.Cmd {
	if !s.signedIn {
		return s.login.Init()
	}

	return s.start()
}

func (s Shell) start() tea.Cmd {
	cmds := []tea.Cmd{LoadTransactions(s.deps)}
	for _, t := range s.tabs {
		cmds = append(cmds, t.Init())
	}

	return tea.Batch(cmds...)
}

func (s Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return s, tea.Quit
		}

	case SessionMsg:
		return s.onSession(msg.Event)

	case TransactionsChangedMsg:
		s.loading = true
		return s, LoadTransactions(s.deps)

	case TransactionsLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.status = failure("load transactions", msg.Err)
			return s, nil
		}

		s.txs = msg.Txs
		s.status = ""

		return s, s.broadcast(msg)

	case signOutMsg:
		if msg.err != nil {
			s.status = failure("sign out", msg.err)
		}

		return s, nil
	}

	if !s.signedIn {
		var cmd tea.Cmd
		s.login, cmd = s.login.Update(msg)

		return s, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.broadcast(msg)
	}

	if !s.tabs[s.active].Capturing() {
		switch key := keyMsg.String(); key {
		case "q":
			return s, tea.Quit
		case "tab":
			s.active = (s.active + 1) % len(s.tabs)
			return s, nil
		case "shift+tab":
			s.active = (s.active + len(s.tabs) - 1) % len(s.tabs)
			return s, nil
		case "1", "2", "3", "4", "5":
			if i := int(key[0] - '1'); i < len(s.tabs) {
				s.active = i
			}

			return s, nil
		case "o":
			if s.deps.Session.CanSignIn() {
				return s, s.signOutCmd()
			}
		}
	}

	var cmd tea.Cmd
	s.tabs[s.active], cmd = s.tabs[s.active].Update(msg)

	return s, cmd
}

func (s Shell) onSession(ev session.Event) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case session.SignedIn:
		if s.signedIn {
			return s, nil
		}

		s.signedIn = true
		s.tabs = newTabs(s.deps)
		s.active = 0
		s.loading = true

		return s, s.start()
	case session.SignedOut:
		s.signedIn = false
		s.txs = nil
		s.status = ""
		s.login = NewLoginModel(s.deps)

		return s, s.login.Init()
	}

	return s, nil
}

// broadcast delivers msg to every tab. Tabs ignore messages they do not own.
func (s *Shell) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(s.tabs))

	for i, t := range s.tabs {
		var cmd tea.Cmd
		s.tabs[i], cmd = t.Update(msg)
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

func (s Shell) View() string {
	if !s.signedIn {
		return s.login.View()
	}

	titles := make([]string, 0, len(s.tabs))
	for i, t := range s.tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if i == s.active {
			titles = append(titles, activeTabStyle.Render(label))
		} else {
			titles = append(titles, inactiveTabStyle.Render(label))
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render("Savvy")+"  ", strings.Join(titles, " "))
	if u, ok := s.deps.Session.Current(); ok && u.Email != "" {
		header += faintStyle.Render("  " + u.Email)
	}

	active := s.tabs[s.active]

	help := active.ShortHelp()
	if !active.Capturing() {
		help += " | tab/1-5: switch"
		if s.deps.Session.CanSignIn() {
			help += " | o: sign out"
		}

		help += " | q: quit"
	}

	footer := faintStyle.Render(help)

	switch {
	case s.loading:
		footer = faintStyle.Render("Refreshing...") + "\n" + footer
	case s.status != "":
		footer = errorStyle.Render(s.status) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, active.View(), footer)
}

type signOutMsg struct{ err error }

func (s Shell) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return signOutMsg{err: s.deps.Session.SignOut(ctx)}
	}
}
