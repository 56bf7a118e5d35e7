package obligation

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	"github.com/MrJamesThe3rd/savvy/internal/obligation"
	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

type Handler struct {
	svc *obligation.Service
	now func() time.Time
}

func NewHandler(svc *obligation.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// Routes mounts the read-only bill and recurring transaction endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/bills", h.bills)
	r.Get("/bills/upcoming", h.upcomingBills)
	r.Get("/recurring", h.recurring)
	r.Get("/recurring/due", h.dueRecurring)
}

type billResponse struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Category     string               `json:"category"`
	Amount       decimal.Decimal      `json:"amount"`
	Frequency    obligation.Frequency `json:"frequency"`
	DueDate      string               `json:"due_date"`
	IsPaid       bool                 `json:"is_paid"`
	ReminderDays int                  `json:"reminder_days"`
}

type recurringResponse struct {
	ID          uuid.UUID            `json:"id"`
	Type        transaction.Type     `json:"type"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Frequency   obligation.Frequency `json:"frequency"`
	NextDueDate string               `json:"next_due_date"`
	EndDate     string               `json:"end_date,omitempty"`
	IsActive    bool                 `json:"is_active"`
}

func toBills(bills []*obligation.Bill) []billResponse {
	out := make([]billResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, billResponse{
			ID:           b.ID,
			Name:         b.Name,
			Category:     b.Category,
			Amount:       b.Amount,
			Frequency:    b.Frequency,
			DueDate:      b.DueDate.Format(time.DateOnly),
			IsPaid:       b.IsPaid,
			ReminderDays: b.ReminderDays,
		})
	}

	return out
}

func toRecurring(items []*obligation.RecurringTransaction) []recurringResponse {
	out := make([]recurringResponse, 0, len(items))
	for _, r := range items {
		resp := recurringResponse{
			ID:          r.ID,
			Type:        r.Type,
			Category:    r.Category,
			Description: r.Description,
			Amount:      r.Amount,
			Frequency:   r.Frequency,
			NextDueDate: r.NextDueDate.Format(time.DateOnly),
			IsActive:    r.IsActive,
		}

		if r.EndDate != nil {
			resp.EndDate = r.EndDate.Format(time.DateOnly)
		}

		out = append(out, resp)
	}

	return out
}

func (h *Handler) bills(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	bills, err := h.svc.Bills(r.Context(), userID)
	if err != nil {
		serverError(w, "failed to list bills", err)
		return
	}

	writeJSON(w, toBills(bills))
}

func (h *Handler) upcomingBills(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	bills, err := h.svc.UpcomingBills(r.Context(), userID, h.now())
	if err != nil {
		serverError(w, "failed to list upcoming bills", err)
		return
	}

	writeJSON(w, toBills(bills))
}

func (h *Handler) recurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	items, err := h.svc.Recurring(r.Context(), userID)
	if err != nil {
		serverError(w, "failed to list recurring transactions", err)
		return
	}

	writeJSON(w, toRecurring(items))
}

func (h *Handler) dueRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	items, err := h.svc.DueRecurring(r.Context(), userID, h.now())
	if err != nil {
		serverError(w, "failed to list due recurring transactions", err)
		return
	}

	writeJSON(w, toRecurring(items))
}

func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
