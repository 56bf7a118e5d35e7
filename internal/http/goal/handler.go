package goal

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
	"github.com/MrJamesThe3rd/savvy/internal/goal"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
)

type Handler struct {
	svc *goal.Service
	now func() time.Time
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// WithClock overrides the clock used for days-left and status.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/{id}/progress", h.addProgress)
	r.Delete("/{id}", h.delete)
}

type createGoalRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date,omitempty"`
}

type progressRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type GoalResponse struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	Category      string               `json:"category,omitempty"`
	TargetAmount  decimal.Decimal      `json:"target_amount"`
	CurrentAmount decimal.Decimal      `json:"current_amount"`
	TargetDate    string               `json:"target_date,omitempty"`
	IsCompleted   bool                 `json:"is_completed"`
	Percentage    float64              `json:"percentage"`
	Remaining     decimal.Decimal      `json:"remaining"`
	DaysLeft      *int                 `json:"days_left,omitempty"`
	Status        analytics.GoalStatus `json:"status"`
}

func (h *Handler) toResponse(g *goal.Goal) GoalResponse {
	p := analytics.GoalProgressFor(g, h.now())

	resp := GoalResponse{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		Category:      g.Category,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		IsCompleted:   g.IsCompleted,
		Percentage:    p.Percentage,
		Remaining:     p.Remaining,
		DaysLeft:      p.DaysLeft,
		Status:        p.Status,
	}

	if g.TargetDate != nil {
		resp.TargetDate = g.TargetDate.Format(time.DateOnly)
	}

	return resp
}

func isValidation(err error) bool {
	return errors.Is(err, goal.ErrMissingName) ||
		errors.Is(err, goal.ErrNonPositiveTarget) ||
		errors.Is(err, goal.ErrNegativeCurrent) ||
		errors.Is(err, goal.ErrNonPositiveProgress)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := goal.CreateParams{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
	}

	if req.TargetDate != "" {
		d, err := time.Parse(time.DateOnly, req.TargetDate)
		if err != nil {
			http.Error(w, "target_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params.TargetDate = &d
	}

	g, err := h.svc.Create(r.Context(), params)
	if err != nil {
		if isValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to create goal", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(h.toResponse(g)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	goals, err := h.svc.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list goals", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, h.toResponse(g))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) addProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.AddProgress(r.Context(), userID, id, req.Amount)
	if err != nil {
		switch {
		case isValidation(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, goal.ErrNotFound):
			http.Error(w, "goal not found", http.StatusNotFound)
		default:
			slog.Error("failed to add goal progress", "user_id", userID, "id", id, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(g)); err != nil {
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
		if errors.Is(err, goal.ErrNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to delete goal", "user_id", userID, "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
