package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/savvy/internal/export"
	"github.com/MrJamesThe3rd/savvy/internal/http/auth"
	"github.com/MrJamesThe3rd/savvy/internal/report"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download renders the report in memory first so a failure can still be
// answered with a status code instead of a truncated attachment.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	format, err := report.ParseFormat(valueOr(q.Get("format"), string(report.FormatCSV)))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rng, err := report.ParseRange(valueOr(q.Get("range"), string(report.RangeAll)))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := h.svc.Build(r.Context(), userID, rng)
	if err != nil {
		slog.Error("failed to build report", "user_id", userID, "range", rng, "error", err)
		http.Error(w, "failed to export data", http.StatusInternalServerError)

		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, rep, format); err != nil {
		if errors.Is(err, report.ErrInvalidFormat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to render report", "user_id", userID, "format", format, "error", err)
		http.Error(w, "failed to export data", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename(format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}
