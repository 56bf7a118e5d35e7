package view

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/session"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

var (
	userID = uuid.MustParse("3f6c2a1e-8b4d-4e7f-9a2b-1c5d6e7f8a9b")
	today  = time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
)

func sampleTxs() []*transaction.Transaction {
	return []*transaction.Transaction{
		{ID: uuid.New(), UserID: userID, Type: transaction.TypeIncome, Category: "Salary", Description: "June salary", Amount: decimal.NewFromInt(85000), Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), UserID: userID, Type: transaction.TypeExpense, Category: "Food & Dining", Description: "Groceries", Amount: decimal.NewFromInt(4200), Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
	}
}

type fixture struct {
	deps    Deps
	txs     *transaction.MockRepository
	budgets *budget.MockRepository
	goals   *goal.MockRepository
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	sess := session.NewManager(nil)
	sess.SignInAs(session.User{ID: userID})

	txRepo := transaction.NewMockRepository(ctrl)
	budgetRepo := budget.NewMockRepository(ctrl)
	goalRepo := goal.NewMockRepository(ctrl)

	return fixture{
		deps: Deps{
			Transactions: transaction.NewService(txRepo),
			Budgets:      budget.NewService(budgetRepo).WithClock(func() time.Time { return today }),
			Goals:        goal.NewService(goalRepo),
			Session:      sess,
			Now:          func() time.Time { return today },
		},
		txs:     txRepo,
		budgets: budgetRepo,
		goals:   goalRepo,
	}
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}

	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}

	return out
}

func loaded(t *testing.T, s Shell, txs []*transaction.Transaction) Shell {
	t.Helper()

	model, _ := s.Update(TransactionsLoadedMsg{Txs: txs})

	return model.(Shell)
}

func TestShell_RefetchesAndBroadcasts(t *testing.T) {
	f := newFixture(t)
	txs := sampleTxs()

	f.txs.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{UserID: userID}).
		Return(txs, nil)

	s := NewShell(f.deps)
	require.True(t, s.signedIn)

	model, cmd := s.Update(TransactionsChangedMsg{})
	s = model.(Shell)
	assert.True(t, s.loading)
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, TransactionsLoadedMsg{}, msg)

	model, _ = s.Update(msg)
	s = model.(Shell)

	assert.False(t, s.loading)
	assert.Len(t, s.txs, 2)

	for _, tab := range s.tabs {
		switch tab := tab.(type) {
		case DashboardModel:
			assert.Len(t, tab.visible, 2)
		case AnalyticsModel:
			assert.Len(t, tab.txs, 2)
		case BudgetsModel:
			assert.Len(t, tab.txs, 2)
		case ExportModel:
			assert.Len(t, tab.txs, 2)
		}
	}
}

func TestShell_LoadFailureKeepsPreviousSlice(t *testing.T) {
	f := newFixture(t)

	s := loaded(t, NewShell(f.deps), sampleTxs())

	model, _ := s.Update(TransactionsLoadedMsg{Err: errors.New("connection reset")})
	s = model.(Shell)

	assert.Len(t, s.txs, 2)
	assert.Equal(t, "Failed to load transactions. Please try again.", s.status)
}

func TestShell_TabSwitching(t *testing.T) {
	f := newFixture(t)
	s := NewShell(f.deps)

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{key: key("3"), want: 2},
		{key: tea.KeyMsg{Type: tea.KeyTab}, want: 3},
		{key: tea.KeyMsg{Type: tea.KeyTab}, want: 4},
		{key: tea.KeyMsg{Type: tea.KeyTab}, want: 0},
		{key: tea.KeyMsg{Type: tea.KeyShiftTab}, want: 4},
		{key: key("9"), want: 4},
		{key: key("1"), want: 0},
	}

	for _, tt := range tests {
		model, _ := s.Update(tt.key)
		s = model.(Shell)

		assert.Equal(t, tt.want, s.active, "after %q", tt.key.String())
	}
}

func TestShell_CapturingTabKeepsKeys(t *testing.T) {
	f := newFixture(t)
	s := loaded(t, NewShell(f.deps), sampleTxs())

	// Open the delete confirmation on the dashboard.
	model, _ := s.Update(key("d"))
	s = model.(Shell)
	require.True(t, s.tabs[0].Capturing())

	model, _ = s.Update(key("2"))
	s = model.(Shell)
	assert.Equal(t, 0, s.active)

	model, _ = s.Update(key("n"))
	s = model.(Shell)
	assert.False(t, s.tabs[0].Capturing())
}

func TestShell_DeleteTriggersRefetch(t *testing.T) {
	f := newFixture(t)
	txs := sampleTxs()

	// Rows are shown in the order loaded; the cursor starts on the first.
	f.txs.EXPECT().DeleteTransaction(gomock.Any(), userID, txs[0].ID).Return(nil)

	s := loaded(t, NewShell(f.deps), txs)

	model, _ := s.Update(key("d"))
	s = model.(Shell)

	model, cmd := s.Update(key("y"))
	s = model.(Shell)
	require.NotNil(t, cmd)

	dash := s.tabs[0].(DashboardModel)
	assert.True(t, dash.busy)

	model, cmd = s.Update(cmd())
	s = model.(Shell)
	assert.Equal(t, []tea.Msg{TransactionsChangedMsg{}}, collect(cmd))

	dash = s.tabs[0].(DashboardModel)
	assert.False(t, dash.busy)
	assert.Contains(t, dash.status, "Transaction deleted.")
}

func TestShell_SignedOutShowsLogin(t *testing.T) {
	f := newFixture(t)
	s := loaded(t, NewShell(f.deps), sampleTxs())

	model, _ := s.Update(SessionMsg{Event: session.Event{Kind: session.SignedOut}})
	s = model.(Shell)

	assert.False(t, s.signedIn)
	assert.Empty(t, s.txs)
	assert.Contains(t, s.View(), "Sign in to Savvy")
}

func TestShell_SignedInStartsLoading(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.deps.Session.SignOut(context.Background()))

	s := NewShell(f.deps)
	require.False(t, s.signedIn)

	model, cmd := s.Update(SessionMsg{Event: session.Event{Kind: session.SignedIn, User: session.User{ID: userID}}})
	s = model.(Shell)

	assert.True(t, s.signedIn)
	assert.True(t, s.loading)
	assert.NotNil(t, cmd)
}
