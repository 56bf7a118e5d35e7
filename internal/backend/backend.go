// Package backend wires the domain services to the persistence collaborator
// selected in configuration.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savvy/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/savvy/internal/budget/store"
	"github.com/MrJamesThe3rd/savvy/internal/config"
	"github.com/MrJamesThe3rd/savvy/internal/database"
	"github.com/MrJamesThe3rd/savvy/internal/export"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	goalStore "github.com/MrJamesThe3rd/savvy/internal/goal/store"
	"github.com/MrJamesThe3rd/savvy/internal/importer"
	"github.com/MrJamesThe3rd/savvy/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/savvy/internal/matching/store"
	"github.com/MrJamesThe3rd/savvy/internal/obligation"
	obligationStore "github.com/MrJamesThe3rd/savvy/internal/obligation/store"
	"github.com/MrJamesThe3rd/savvy/internal/session"
	"github.com/MrJamesThe3rd/savvy/internal/supabase"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
	txStore "github.com/MrJamesThe3rd/savvy/internal/transaction/store"
)

// Repositories is one implementation of every domain repository.
type Repositories struct {
	Transactions transaction.Repository
	Budgets      budget.Repository
	Goals        goal.Repository
	Obligations  obligation.Repository
	Rules        matching.Repository
}

type Services struct {
	Transactions *transaction.Service
	Budgets      *budget.Service
	Goals        *goal.Service
	Obligations  *obligation.Service
	Matching     *matching.Service
	Importer     *importer.Service
	Export       *export.Service
	Session      *session.Manager
}

// NewServices builds the services over repos. auth may be nil.
func NewServices(repos Repositories, auth session.Authenticator) *Services {
	txSvc := transaction.NewService(repos.Transactions)
	matchSvc := matching.NewService(repos.Rules)

	return &Services{
		Transactions: txSvc,
		Budgets:      budget.NewService(repos.Budgets),
		Goals:        goal.NewService(repos.Goals),
		Obligations:  obligation.NewService(repos.Obligations),
		Matching:     matchSvc,
		Importer:     importer.NewService(matchSvc),
		Export:       export.NewService(txSvc),
		Session:      session.NewManager(auth),
	}
}

// Result carries the wired services and releases their resources on Cleanup.
type Result struct {
	*Services
	Cleanup func() error
}

func New(cfg *config.Config) (*Result, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return newPostgres(cfg)
	case config.BackendSupabase:
		return newSupabase(cfg)
	}

	return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
}

func newPostgres(cfg *config.Config) (*Result, error) {
	connStr := cfg.ConnectionString()

	if cfg.DB.Migrate {
		if err := database.Migrate(connStr); err != nil {
			return nil, fmt.Errorf("migrating database: %w", err)
		}
	}

	db, err := database.New(connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	svcs := NewServices(Repositories{
		Transactions: txStore.New(db),
		Budgets:      budgetStore.New(db),
		Goals:        goalStore.New(db),
		Obligations:  obligationStore.New(db),
		Rules:        matchingStore.New(db),
	}, nil)

	if cfg.UserID != "" {
		id, err := uuid.Parse(cfg.UserID)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("parsing USER_ID: %w", err)
		}

		svcs.Session.SignInAs(session.User{ID: id})
	}

	slog.Info("initialized postgres backend", "host", cfg.DB.Host, "database", cfg.DB.Name)

	return &Result{Services: svcs, Cleanup: db.Close}, nil
}

func newSupabase(cfg *config.Config) (*Result, error) {
	client, err := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.Key)
	if err != nil {
		return nil, err
	}

	svcs := NewServices(Repositories{
		Transactions: supabase.NewTransactionRepository(client),
		Budgets:      supabase.NewBudgetRepository(client),
		Goals:        supabase.NewGoalRepository(client),
		Obligations:  supabase.NewObligationRepository(client),
		Rules:        supabase.NewRuleRepository(client),
	}, session.NewSupabaseAuth(client))

	slog.Info("initialized supabase backend", "url", cfg.Supabase.URL)

	return &Result{Services: svcs, Cleanup: func() error { return nil }}, nil
}
