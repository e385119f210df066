package summary

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/carteira/internal/app"
	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/export"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/http/api"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
)

// Builder produces the plan-aware dashboard.
type Builder interface {
	Overview(ctx context.Context, month metrics.Month, kind metrics.KindFilter, now time.Time) (*app.Overview, error)
}

type Handler struct {
	builder Builder
	export  *export.Service
	catalog *catalog.Catalog
	now     func() time.Time
}

func NewHandler(b Builder, exp *export.Service, c *catalog.Catalog) *Handler {
	return &Handler{builder: b, export: exp, catalog: c, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type goalResponse struct {
	Name          string      `json:"name"`
	Progress      string      `json:"progress"`
	DaysRemaining int         `json:"daysRemaining"`
	Completed     bool        `json:"completed"`
	Status        goal.Status `json:"status"`
}

type summaryResponse struct {
	Month       string                    `json:"month"`
	Label       string                    `json:"label"`
	Plan        string                    `json:"plan"`
	Kind        metrics.KindFilter        `json:"type"`
	Totals      metrics.Totals            `json:"totals"`
	Categories  []metrics.CategorySlice   `json:"categories"`
	Series      []metrics.MonthlyPoint    `json:"series"`
	Investments *metrics.InvestmentTotals `json:"investments,omitempty"`
	ByType      []metrics.TypeSlice       `json:"investmentsByType,omitempty"`
	Goals       []goalResponse            `json:"goals,omitempty"`
}

// get builds the dashboard for ?month=YYYY-MM (default: current month) and
// ?type=all|income|expense. Investment and goal sections are included only
// when the plan unlocks them. ?format=markdown returns the text report.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	month := metrics.MonthOf(now)

	if s := r.URL.Query().Get("month"); s != "" {
		m, err := metrics.ParseMonth(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		month = m
	}

	kind, err := metrics.ParseKindFilter(r.URL.Query().Get("type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ov, err := h.builder.Overview(r.Context(), month, kind, now)
	if err != nil {
		api.Error(w, err, nil, nil)
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(h.export.Report(ov.Dashboard)))

		return
	}

	d := ov.Dashboard

	for i := range d.Categories {
		d.Categories[i].Share = d.Categories[i].Share.Round(2)
	}

	resp := summaryResponse{
		Month:      month.String(),
		Label:      month.Label(h.catalog),
		Plan:       ov.Plan.Name,
		Kind:       d.Kind,
		Totals:     d.Totals,
		Categories: d.Categories,
		Series:     d.Series,
	}

	if ov.ShowInvestments {
		totals := d.Investments
		totals.GainPercent = totals.GainPercent.Round(2)
		resp.Investments = &totals
		resp.ByType = d.ByType
	}

	for _, g := range d.Goals {
		resp.Goals = append(resp.Goals, goalResponse{
			Name:          g.Goal.Name,
			Progress:      g.Progress.StringFixed(2),
			DaysRemaining: g.DaysRemaining,
			Completed:     g.Completed,
			Status:        g.Status,
		})
	}

	api.JSON(w, http.StatusOK, resp)
}
