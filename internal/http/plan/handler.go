package plan

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/http/api"
	"github.com/MrJamesThe3rd/carteira/internal/plan"
)

type Handler struct {
	svc *plan.Service
}

func NewHandler(svc *plan.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.current)
	r.Put("/", h.switchPlan)
}

type planResponse struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Features []string `json:"features"`
}

func toResponse(p catalog.Plan) planResponse {
	return planResponse{Name: p.Name, Label: p.Label, Features: p.Features}
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Current(r.Context())
	if err != nil {
		api.Error(w, err, nil, nil)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(p))
}

type switchRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) switchPlan(w http.ResponseWriter, r *http.Request) {
	var req switchRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Switch(r.Context(), req.Name)
	if err != nil {
		api.Error(w, err, plan.ErrUnknownPlan, nil)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(p))
}

// Require answers 403 unless the current plan unlocks feature. The plan is
// read on every request, so a switch applies immediately.
func (h *Handler) Require(feature string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := h.svc.HasAccess(r.Context(), feature)
			if err != nil {
				slog.Error("checking plan access", "feature", feature, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)

				return
			}

			if !ok {
				http.Error(w, "your plan does not include "+feature, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
