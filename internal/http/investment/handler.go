package investment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/http/api"
	"github.com/MrJamesThe3rd/carteira/internal/investment"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
)

type Handler struct {
	svc     *investment.Service
	catalog *catalog.Catalog
}

func NewHandler(svc *investment.Service, c *catalog.Catalog) *Handler {
	return &Handler{svc: svc, catalog: c}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type investmentRequest struct {
	Name         string          `json:"name" validate:"required,max=100"`
	Type         string          `json:"type" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"gte=0"`
	CurrentValue decimal.Decimal `json:"currentValue" validate:"gte=0"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gte=0"`
	Symbol       string          `json:"symbol" validate:"max=20"`
	PurchaseDate api.Date        `json:"purchaseDate" validate:"required"`
}

func (req investmentRequest) params() investment.Params {
	return investment.Params{
		Name:         req.Name,
		Type:         req.Type,
		Amount:       req.Amount,
		CurrentValue: req.CurrentValue,
		Quantity:     req.Quantity,
		Symbol:       req.Symbol,
		PurchaseDate: req.PurchaseDate.Time,
	}
}

type investmentResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	TypeLabel    string          `json:"typeLabel"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	Quantity     decimal.Decimal `json:"quantity"`
	Symbol       string          `json:"symbol"`
	PurchaseDate api.Date        `json:"purchaseDate"`
	Gain         decimal.Decimal `json:"gain"`
	GainPercent  decimal.Decimal `json:"gainPercent"`
}

func (h *Handler) toResponse(inv *investment.Investment) investmentResponse {
	return investmentResponse{
		ID:           inv.ID,
		Name:         inv.Name,
		Type:         inv.Type,
		TypeLabel:    h.catalog.InvestmentLabel(inv.Type),
		Amount:       inv.Amount,
		CurrentValue: inv.CurrentValue,
		Quantity:     inv.Quantity,
		Symbol:       inv.Symbol,
		PurchaseDate: api.Date{Time: inv.PurchaseDate},
		Gain:         inv.Gain(),
		GainPercent:  inv.GainPercent().Round(2),
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Add(r.Context(), req.params())
	if err != nil {
		api.Error(w, err, investment.ErrInvalid, investment.ErrNotFound)
		return
	}

	api.JSON(w, http.StatusCreated, h.toResponse(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err, nil, nil)
		return
	}

	resp := make([]investmentResponse, len(invs))
	for i, inv := range invs {
		resp[i] = h.toResponse(inv)
	}

	api.JSON(w, http.StatusOK, resp)
}

type summaryResponse struct {
	metrics.InvestmentTotals
	ByType []metrics.TypeSlice `json:"byType"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err, nil, nil)
		return
	}

	totals := metrics.InvestmentTotalsOf(invs)
	totals.GainPercent = totals.GainPercent.Round(2)

	api.JSON(w, http.StatusOK, summaryResponse{
		InvestmentTotals: totals,
		ByType:           metrics.ByType(invs, h.catalog),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err, nil, investment.ErrNotFound)
		return
	}

	api.JSON(w, http.StatusOK, h.toResponse(inv))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req investmentRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, err, investment.ErrInvalid, investment.ErrNotFound)
		return
	}

	if inv == nil {
		http.Error(w, investment.ErrNotFound.Error(), http.StatusNotFound)
		return
	}

	api.JSON(w, http.StatusOK, h.toResponse(inv))
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
