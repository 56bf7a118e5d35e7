package chart

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/charts"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type Handler struct {
	txSvc     *transaction.Service
	budgetSvc *budget.Service
	now       func() time.Time
}

func NewHandler(txSvc *transaction.Service, budgetSvc *budget.Service) *Handler {
	return &Handler{txSvc: txSvc, budgetSvc: budgetSvc, now: time.Now}
}

func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/categories.png", h.categories)
	r.Get("/monthly.png", h.monthly)
	r.Get("/weekly.png", h.weekly)
	r.Get("/budgets.png", h.budgets)
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) (uuid.UUID, []*transaction.Transaction, bool) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return uuid.Nil, nil, false
	}

	txs, err := h.txSvc.List(r.Context(), transaction.ListFilter{UserID: userID})
	if err != nil {
		slog.Error("failed to list transactions", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return uuid.Nil, nil, false
	}

	return userID, txs, true
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	_, txs, ok := h.transactions(w, r)
	if !ok {
		return
	}

	var since time.Time
	if r.URL.Query().Get("window") != "all" {
		since = analytics.RecentSince(h.now())
	}

	writePNG(w, "categories")(charts.CategoryPie(analytics.CategoryBreakdown(txs, since)))
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	_, txs, ok := h.transactions(w, r)
	if !ok {
		return
	}

	writePNG(w, "monthly")(charts.MonthlyLines(analytics.MonthlyTrend(txs)))
}

func (h *Handler) weekly(w http.ResponseWriter, r *http.Request) {
	_, txs, ok := h.transactions(w, r)
	if !ok {
		return
	}

	writePNG(w, "weekly")(charts.WeeklyBars(analytics.WeeklyTrend(txs)))
}

func (h *Handler) budgets(w http.ResponseWriter, r *http.Request) {
	userID, txs, ok := h.transactions(w, r)
	if !ok {
		return
	}

	budgets, err := h.budgetSvc.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list budgets", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writePNG(w, "budgets")(charts.BudgetPie(analytics.BudgetDistribution(budgets, txs, h.now())))
}

// writePNG returns a sink for a renderer's result. Nothing to plot is answered
// with 204 so clients can show their own empty state.
func writePNG(w http.ResponseWriter, name string) func([]byte, error) {
	return func(img []byte, err error) {
		if err != nil {
			if errors.Is(err, charts.ErrNoData) {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			slog.Error("failed to render chart", "chart", name, "error", err)
			http.Error(w, "failed to render chart", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(img)))
		w.Header().Set("Cache-Control", "no-store")

		if _, err := w.Write(img); err != nil {
			slog.Error("failed to write chart", "chart", name, "error", err)
		}
	}
}
