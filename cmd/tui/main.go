package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/savvy/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/savvy/internal/backend"
	"github.com/MrJamesThe3rd/savvy/internal/config"
	"github.com/MrJamesThe3rd/savvy/internal/money"
	"github.com/MrJamesThe3rd/savvy/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	money.SetCurrency(cfg.Currency)

	b, err := backend.New(cfg)
	if err != nil {
		slog.Error("failed to initialize backend", "error", err)
		os.Exit(1)
	}
	defer b.Cleanup()

	if _, ok := b.Session.Current(); !ok && !b.Session.CanSignIn() {
		slog.Error("no user configured: set USER_ID or use the supabase backend")
		os.Exit(1)
	}

	stderr := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	if cfg.App.Debug {
		f, err := tea.LogToFile("savvy-debug.log", "savvy")
		if err != nil {
			stderr.Error("failed to open debug log", "error", err)
			os.Exit(1)
		}
		defer f.Close()

		slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.DiscardHandler))
	}

	shell := view.NewShell(view.Deps{
		Transactions: b.Transactions,
		Budgets:      b.Budgets,
		Goals:        b.Goals,
		Session:      b.Session,
	})

	p := tea.NewProgram(shell, tea.WithAltScreen())

	unsubscribe := b.Session.Subscribe(func(ev session.Event) {
		slog.Info("session changed", "event", ev.Kind, "user", ev.User.ID)
		p.Send(view.SessionMsg{Event: ev})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		stderr.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
