package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/savvy/internal/backend"
	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/config"
)

func main() {
	_ = godotenv.Load()

	months := flag.Int("months", 6, "Number of months of history to generate")
	perMonth := flag.Int("per-month", 25, "Expenses generated per month")
	budgets := flag.Int("budgets", 4, "Monthly budgets to create")
	goals := flag.Int("goals", 3, "Savings goals to create")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed; reuse it to regenerate the same data")
	email := flag.String("email", os.Getenv("SEED_EMAIL"), "Supabase account to sign in as")
	password := flag.String("password", os.Getenv("SEED_PASSWORD"), "Password for -email")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	b, err := backend.New(cfg)
	if err != nil {
		slog.Error("failed to initialize backend", "error", err)
		os.Exit(1)
	}
	defer b.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if b.Session.CanSignIn() {
		if _, err := b.Session.SignIn(ctx, *email, *password); err != nil {
			slog.Error("failed to sign in", "email", *email, "error", err)
			os.Exit(1)
		}
	}

	userID, err := b.Session.UserID()
	if err != nil {
		slog.Error("no user to seed: set USER_ID or pass -email and -password", "error", err)
		os.Exit(1)
	}

	gen := newGenerator(*seed, time.Now())
	slog.Info("seeding", "user", userID, "seed", *seed, "months", *months)

	txs, err := b.Transactions.CreateBatch(ctx, userID, gen.transactions(*months, *perMonth))
	if err != nil {
		slog.Error("failed to create transactions", "error", err)
		os.Exit(1)
	}

	slog.Info("created transactions", "count", len(txs))

	for _, p := range gen.budgets(userID, *budgets) {
		created, err := b.Budgets.Create(ctx, p)
		if errors.Is(err, budget.ErrAlreadyExists) {
			slog.Info("skipping budget", "reason", err)
			continue
		}

		if err != nil {
			slog.Error("failed to create budget", "category", p.Category, "error", err)
			os.Exit(1)
		}

		slog.Info("created budget", "category", created.Category, "amount", created.Amount, "period", created.Period)
	}

	for _, p := range gen.goals(userID, *goals) {
		created, err := b.Goals.Create(ctx, p)
		if err != nil {
			slog.Error("failed to create goal", "name", p.Name, "error", err)
			os.Exit(1)
		}

		slog.Info("created goal", "name", created.Name, "target", created.TargetAmount)
	}
}
