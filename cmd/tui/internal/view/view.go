// Package view holds the screens of the terminal UI. Every tab receives the
// same transaction slice from the shell and derives its own view of it.
package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/session"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

const dbTimeout = 5 * time.Second

// Tab is one screen of the shell.
type Tab interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Tab, tea.Cmd)
	View() string
	Title() string
	ShortHelp() string
	// Capturing reports whether the tab is consuming keys itself, for example
	// while a form or a confirmation is open.
	Capturing() bool
}

// Deps are the services the tabs talk to.
type Deps struct {
	Transactions *transaction.Service
	Budgets      *budget.Service
	Goals        *goal.Service
	Session      *session.Manager
	Now          func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}

	return d.Now()
}

// TransactionsChangedMsg asks the shell to re-fetch transactions.
type TransactionsChangedMsg struct{}

func TransactionsChanged() tea.Msg {
	return TransactionsChangedMsg{}
}

// TransactionsLoadedMsg carries a fresh transaction slice to every tab.
type TransactionsLoadedMsg struct {
	Txs []*transaction.Transaction
	Err error
}

// SessionMsg relays a session change into the program.
type SessionMsg struct {
	Event session.Event
}

// LoadTransactions fetches every transaction of the signed-in user.
func LoadTransactions(d Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		userID, err := d.Session.UserID()
		if err != nil {
			return TransactionsLoadedMsg{Err: err}
		}

		txs, err := d.Transactions.List(ctx, transaction.ListFilter{UserID: userID})

		return TransactionsLoadedMsg{Txs: txs, Err: err}
	}
}

// DbCtx returns a context with a standard timeout for backend calls.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// withUser runs fn with the signed-in user's id and a bounded context.
func withUser(d Deps, fn func(ctx context.Context, userID uuid.UUID) error) error {
	userID, err := d.Session.UserID()
	if err != nil {
		return err
	}

	ctx, cancel := DbCtx()
	defer cancel()

	return fn(ctx, userID)
}
