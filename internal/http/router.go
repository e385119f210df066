package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/carteira/internal/http/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/http/categorize"
	"github.com/MrJamesThe3rd/carteira/internal/http/export"
	"github.com/MrJamesThe3rd/carteira/internal/http/goal"
	"github.com/MrJamesThe3rd/carteira/internal/http/importcsv"
	"github.com/MrJamesThe3rd/carteira/internal/http/investment"
	"github.com/MrJamesThe3rd/carteira/internal/http/plan"
	"github.com/MrJamesThe3rd/carteira/internal/http/summary"
	"github.com/MrJamesThe3rd/carteira/internal/http/transaction"
	planpkg "github.com/MrJamesThe3rd/carteira/internal/plan"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

type Handlers struct {
	Transactions *transaction.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
	Categorize   *categorize.Handler
	Investments  *investment.Handler
	Goals        *goal.Handler
	Summary      *summary.Handler
	Plan         *plan.Handler
	Catalog      *catalog.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Route("/import", h.Import.Routes)
			r.Route("/export", h.Export.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Transactions.Routes(r)
			})
		})

		r.Route("/categorize", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categorize.Routes(r)
		})

		r.Route("/investments", func(r chi.Router) {
			r.Use(h.Plan.Require(planpkg.FeatureInvestments))
			r.Use(middleware.AllowContentType("application/json"))
			h.Investments.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(h.Plan.Require(planpkg.FeatureGoals))
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		r.Route("/summary", h.Summary.Routes)
		r.Route("/catalog", h.Catalog.Routes)

		r.Route("/plan", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Plan.Routes(r)
		})
	})

	return router
}
