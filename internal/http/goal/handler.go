package goal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/http/api"
)

type Handler struct {
	svc *goal.Service
	now func() time.Time
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Post("/{id}/contribute", h.contribute)
	r.Delete("/{id}", h.delete)
}

type goalRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	TargetAmount  decimal.Decimal `json:"targetAmount" validate:"gte=0"`
	CurrentAmount decimal.Decimal `json:"currentAmount" validate:"gte=0"`
	Deadline      api.Date        `json:"deadline" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Priority      goal.Priority   `json:"priority" validate:"required,oneof=low medium high"`
}

func (req goalRequest) params() goal.Params {
	return goal.Params{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline.Time,
		Category:      req.Category,
		Priority:      req.Priority,
	}
}

type goalResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      api.Date        `json:"deadline"`
	Category      string          `json:"category"`
	Priority      goal.Priority   `json:"priority"`
	Progress      decimal.Decimal `json:"progress"`
	Remaining     decimal.Decimal `json:"remaining"`
	DaysRemaining int             `json:"daysRemaining"`
	Completed     bool            `json:"completed"`
	Status        goal.Status     `json:"status"`
}

func (h *Handler) toResponse(g *goal.Goal) goalResponse {
	now := h.now()

	return goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      api.Date{Time: g.Deadline},
		Category:      g.Category,
		Priority:      g.Priority,
		Progress:      g.Progress().Round(2),
		Remaining:     g.Remaining(),
		DaysRemaining: g.DaysRemaining(now),
		Completed:     g.Completed(),
		Status:        g.Status(now),
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Add(r.Context(), req.params())
	if err != nil {
		api.Error(w, err, goal.ErrInvalid, goal.ErrNotFound)
		return
	}

	api.JSON(w, http.StatusCreated, h.toResponse(g))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err, nil, nil)
		return
	}

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = h.toResponse(g)
	}

	api.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err, nil, goal.ErrNotFound)
		return
	}

	api.JSON(w, http.StatusOK, h.toResponse(g))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req goalRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, err, goal.ErrInvalid, goal.ErrNotFound)
		return
	}

	if g == nil {
		http.Error(w, goal.ErrNotFound.Error(), http.StatusNotFound)
		return
	}

	api.JSON(w, http.StatusOK, h.toResponse(g))
}

type contributeRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

func (h *Handler) contribute(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req contributeRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Contribute(r.Context(), id, req.Amount)
	if err != nil {
		api.Error(w, err, goal.ErrInvalid, goal.ErrNotFound)
		return
	}

	api.JSON(w, http.StatusOK, h.toResponse(g))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Remove(r.Context(), id); err != nil {
		api.Error(w, err, nil, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
