package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type Handler struct {
	txSvc     *transaction.Service
	budgetSvc *budget.Service
	goalSvc   *goal.Service
	now       func() time.Time
}

func NewHandler(txSvc *transaction.Service, budgetSvc *budget.Service, goalSvc *goal.Service) *Handler {
	return &Handler{
		txSvc:     txSvc,
		budgetSvc: budgetSvc,
		goalSvc:   goalSvc,
		now:       time.Now,
	}
}

// WithClock overrides the clock used for windows and progress.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/categories", h.categories)
	r.Get("/monthly", h.monthly)
	r.Get("/weekly", h.weekly)
}

type TotalsResponse struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Balance     decimal.Decimal `json:"balance"`
	SavingsRate float64         `json:"savings_rate"`
}

type CategoryResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type MonthResponse struct {
	Month    string          `json:"month"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

type WeekResponse struct {
	Week   string          `json:"week"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type BudgetAlertResponse struct {
	Category   string                 `json:"category"`
	Percentage float64                `json:"percentage"`
	Status     analytics.BudgetStatus `json:"status"`
}

type SummaryResponse struct {
	Totals           TotalsResponse        `json:"totals"`
	RecentCategories []CategoryResponse    `json:"recent_categories"`
	BudgetAlerts     []BudgetAlertResponse `json:"budget_alerts"`
	ActiveGoals      int                   `json:"active_goals"`
	CompletedGoals   int                   `json:"completed_goals"`
	Transactions     int                   `json:"transactions"`
}

func toTotals(t analytics.Totals) TotalsResponse {
	return TotalsResponse{
		Income:      t.Income,
		Expenses:    t.Expenses,
		Balance:     t.Balance,
		SavingsRate: t.SavingsRate,
	}
}

func toCategories(in []analytics.CategoryAmount) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(in))
	for _, c := range in {
		out = append(out, CategoryResponse{Category: c.Category, Amount: c.Amount})
	}

	return out
}

// summary loads transactions, budgets and goals concurrently and folds them
// into the dashboard overview. Budgets below the warning threshold are left out.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	var (
		txs     []*transaction.Transaction
		budgets []*budget.Budget
		goals   []*goal.Goal
	)

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		var err error
		txs, err = h.txSvc.List(ctx, transaction.ListFilter{UserID: userID})

		return err
	})

	g.Go(func() error {
		var err error
		budgets, err = h.budgetSvc.List(ctx, userID)

		return err
	})

	g.Go(func() error {
		var err error
		goals, err = h.goalSvc.List(ctx, userID)

		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to load summary", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	now := h.now()

	resp := SummaryResponse{
		Totals:           toTotals(analytics.Summarize(txs)),
		RecentCategories: toCategories(analytics.CategoryBreakdown(txs, analytics.RecentSince(now))),
		BudgetAlerts:     []BudgetAlertResponse{},
		Transactions:     len(txs),
	}

	for _, b := range budgets {
		p := analytics.BudgetProgressFor(b, txs, now)
		if p.Status == analytics.BudgetOnTrack {
			continue
		}

		resp.BudgetAlerts = append(resp.BudgetAlerts, BudgetAlertResponse{
			Category:   b.Category,
			Percentage: p.Percentage,
			Status:     p.Status,
		})
	}

	for _, gl := range goals {
		if gl.IsCompleted {
			resp.CompletedGoals++
		} else {
			resp.ActiveGoals++
		}
	}

	writeJSON(w, resp)
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) ([]*transaction.Transaction, bool) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return nil, false
	}

	txs, err := h.txSvc.List(r.Context(), transaction.ListFilter{UserID: userID})
	if err != nil {
		slog.Error("failed to list transactions", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return txs, true
}

// categories returns the expense breakdown for the trailing window, or for
// all time with ?window=all.
func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	txs, ok := h.transactions(w, r)
	if !ok {
		return
	}

	var since time.Time
	if r.URL.Query().Get("window") != "all" {
		since = analytics.RecentSince(h.now())
	}

	writeJSON(w, toCategories(analytics.CategoryBreakdown(txs, since)))
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	txs, ok := h.transactions(w, r)
	if !ok {
		return
	}

	buckets := analytics.MonthlyTrend(txs)
	resp := make([]MonthResponse, 0, len(buckets))

	for _, b := range buckets {
		resp = append(resp, MonthResponse{
			Month:    b.Key,
			Label:    b.Label(),
			Income:   b.Income,
			Expenses: b.Expenses,
			Balance:  b.Balance,
		})
	}

	writeJSON(w, resp)
}

func (h *Handler) weekly(w http.ResponseWriter, r *http.Request) {
	txs, ok := h.transactions(w, r)
	if !ok {
		return
	}

	buckets := analytics.WeeklyTrend(txs)
	resp := make([]WeekResponse, 0, len(buckets))

	for _, b := range buckets {
		resp = append(resp, WeekResponse{Week: b.Key, Label: b.Label(), Amount: b.Amount})
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
