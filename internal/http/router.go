package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/savvy/internal/http/analytics"
	"github.com/MrJamesThe3rd/savvy/internal/http/budget"
	"github.com/MrJamesThe3rd/savvy/internal/http/chart"
	"github.com/MrJamesThe3rd/savvy/internal/http/export"
	"github.com/MrJamesThe3rd/savvy/internal/http/goal"
	"github.com/MrJamesThe3rd/savvy/internal/http/importcsv"
	"github.com/MrJamesThe3rd/savvy/internal/http/matching"
	"github.com/MrJamesThe3rd/savvy/internal/http/obligation"
	"github.com/MrJamesThe3rd/savvy/internal/http/transaction"
	"github.com/MrJamesThe3rd/savvy/internal/metrics"
)

type Handlers struct {
	Transactions *transaction.Handler
	Import       *importcsv.Handler
	Budgets      *budget.Handler
	Goals        *goal.Handler
	Analytics    *analytics.Handler
	Charts       *chart.Handler
	Export       *export.Handler
	Rules        *matching.Handler
	Obligations  *obligation.Handler
}

type Options struct {
	// Authenticate resolves the user of every /api/v1 request.
	Authenticate   func(http.Handler) http.Handler
	AllowedOrigins []string
	Timeout        time.Duration
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(opts.Authenticate)

		r.Route("/transactions", func(r chi.Router) {
			r.Route("/import", h.Import.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Transactions.Routes(r)
			})
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Budgets.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		r.Route("/rules", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Rules.Routes(r)
		})

		r.Route("/analytics", h.Analytics.Routes)
		r.Route("/charts", h.Charts.Routes)
		r.Route("/export", h.Export.Routes)
		r.Group(h.Obligations.Routes)
	})

	return router
}
