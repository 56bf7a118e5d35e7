package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/savvy/internal/backend"
	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/config"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/matching"
	"github.com/MrJamesThe3rd/savvy/internal/obligation"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

func TestNewServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcs := backend.NewServices(backend.Repositories{
		Transactions: transaction.NewMockRepository(ctrl),
		Budgets:      budget.NewMockRepository(ctrl),
		Goals:        goal.NewMockRepository(ctrl),
		Obligations:  obligation.NewMockRepository(ctrl),
		Rules:        matching.NewMockRepository(ctrl),
	}, nil)

	assert.NotNil(t, svcs.Transactions)
	assert.NotNil(t, svcs.Budgets)
	assert.NotNil(t, svcs.Goals)
	assert.NotNil(t, svcs.Obligations)
	assert.NotNil(t, svcs.Matching)
	assert.NotNil(t, svcs.Importer)
	assert.NotNil(t, svcs.Export)
	require.NotNil(t, svcs.Session)
	assert.False(t, svcs.Session.CanSignIn())
}

func TestNew_Supabase(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendSupabase}
	cfg.Supabase.URL = "https://project.supabase.co"
	cfg.Supabase.Key = "anon-key"

	res, err := backend.New(cfg)
	require.NoError(t, err)
	assert.True(t, res.Session.CanSignIn())
	assert.NoError(t, res.Cleanup())
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := backend.New(&config.Config{Backend: "sqlite"})
	assert.Error(t, err)
}
