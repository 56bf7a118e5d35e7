package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/savvy/internal/backend"
	"github.com/MrJamesThe3rd/savvy/internal/config"
	"github.com/MrJamesThe3rd/savvy/internal/money"
	savvyHttp "github.com/MrJamesThe3rd/savvy/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/savvy/internal/http/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	budgetHandler "github.com/MrJamesThe3rd/savvy/internal/http/budget"
	chartHandler "github.com/MrJamesThe3rd/savvy/internal/http/chart"
	exportHandler "github.com/MrJamesThe3rd/savvy/internal/http/export"
	goalHandler "github.com/MrJamesThe3rd/savvy/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/savvy/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/savvy/internal/http/matching"
	obligationHandler "github.com/MrJamesThe3rd/savvy/internal/http/obligation"
	txHandler "github.com/MrJamesThe3rd/savvy/internal/http/transaction"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	money.SetCurrency(cfg.Currency)

	authenticate, err := authenticator(cfg)
	if err != nil {
		slog.Error("failed to configure authentication", "error", err)
		os.Exit(1)
	}

	b, err := backend.New(cfg)
	if err != nil {
		slog.Error("failed to initialize backend", "error", err)
		os.Exit(1)
	}
	defer b.Cleanup()

	handlers := savvyHttp.Handlers{
		Transactions: txHandler.NewHandler(b.Transactions),
		Import:       importHandler.NewHandler(b.Importer, b.Transactions),
		Budgets:      budgetHandler.NewHandler(b.Budgets, b.Transactions),
		Goals:        goalHandler.NewHandler(b.Goals),
		Analytics:    analyticsHandler.NewHandler(b.Transactions, b.Budgets, b.Goals),
		Charts:       chartHandler.NewHandler(b.Transactions, b.Budgets),
		Export:       exportHandler.NewHandler(b.Export),
		Rules:        matchingHandler.NewHandler(b.Matching),
		Obligations:  obligationHandler.NewHandler(b.Obligations),
	}

	router := savvyHttp.New(handlers, savvyHttp.Options{
		Authenticate:   authenticate,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
	}

	slog.Info("starting server", "addr", srv.Addr, "backend", cfg.Backend)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// authenticator verifies Supabase access tokens on the hosted backend. A
// local Postgres install has a single user taken from USER_ID.
func authenticator(cfg *config.Config) (func(http.Handler) http.Handler, error) {
	if cfg.Backend == config.BackendSupabase {
		if cfg.Supabase.JWTSecret == "" {
			return nil, errors.New("SUPABASE_JWT_SECRET is required to serve the API")
		}

		return auth.JWT([]byte(cfg.Supabase.JWTSecret)), nil
	}

	id, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("USER_ID must be a UUID: %w", err)
	}

	return auth.Static(id), nil
}
