package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/budget"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type Handler struct {
	svc   *budget.Service
	txSvc *transaction.Service
	now   func() time.Time
}

func NewHandler(svc *budget.Service, txSvc *transaction.Service) *Handler {
	return &Handler{svc: svc, txSvc: txSvc, now: time.Now}
}

// WithClock overrides the clock used for progress calculations.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/progress", h.progress)
	r.Delete("/{id}", h.delete)
}

type createBudgetRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   budget.Period   `json:"period"`
}

type BudgetResponse struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    budget.Period   `json:"period"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	CreatedAt time.Time       `json:"created_at"`
}

type ProgressResponse struct {
	Budget     BudgetResponse         `json:"budget"`
	Spent      decimal.Decimal        `json:"spent"`
	Remaining  decimal.Decimal        `json:"remaining"`
	Percentage float64                `json:"percentage"`
	Status     analytics.BudgetStatus `json:"status"`
}

func toResponse(b *budget.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID,
		Category:  b.Category,
		Amount:    b.Amount,
		Period:    b.Period,
		StartDate: b.StartDate.Format(time.DateOnly),
		EndDate:   b.EndDate.Format(time.DateOnly),
		CreatedAt: b.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), budget.CreateParams{
		UserID:   userID,
		Category: req.Category,
		Amount:   req.Amount,
		Period:   req.Period,
	})
	if err != nil {
		var conflict *budget.ConflictError

		switch {
		case errors.As(err, &conflict):
			http.Error(w, conflict.Error(), http.StatusConflict)
		case errors.Is(err, budget.ErrMissingCategory),
			errors.Is(err, budget.ErrInvalidPeriod),
			errors.Is(err, budget.ErrNonPositiveAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			slog.Error("failed to create budget", "user_id", userID, "error", err)
			http.Error(w, "failed to create budget", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	budgets, err := h.svc.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list budgets", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		resp = append(resp, toResponse(b))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// progress reports spending against each budget for the current calendar month.
func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	budgets, err := h.svc.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list budgets", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	txs, err := h.txSvc.List(r.Context(), transaction.ListFilter{UserID: userID})
	if err != nil {
		slog.Error("failed to list transactions", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	now := h.now()
	resp := make([]ProgressResponse, 0, len(budgets))

	for _, b := range budgets {
		p := analytics.BudgetProgressFor(b, txs, now)
		resp = append(resp, ProgressResponse{
			Budget:     toResponse(b),
			Spent:      p.Spent,
			Remaining:  p.Remaining,
			Percentage: p.Percentage,
			Status:     p.Status,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to delete budget", "user_id", userID, "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
