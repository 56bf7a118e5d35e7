package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/savvy/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND", "postgres")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Savvy", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, config.BackendPostgres, cfg.Backend)
	assert.Equal(t, "KSh", cfg.Currency)
	assert.Equal(t, "postgres://postgres:@localhost:5432/savvy?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_SupabaseRequiresCredentials(t *testing.T) {
	t.Setenv("BACKEND", "supabase")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendSupabase, cfg.Backend)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("BACKEND", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_Currency(t *testing.T) {
	t.Setenv("BACKEND", "postgres")
	t.Setenv("CURRENCY", "EUR")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Currency)
}
