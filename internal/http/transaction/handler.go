package transaction

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/http/api"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type transactionRequest struct {
	Type        transaction.Kind `json:"type" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal  `json:"amount" validate:"gte=0"`
	Category    string           `json:"category" validate:"required"`
	Description string           `json:"description" validate:"max=200"`
	Date        api.Date         `json:"date" validate:"required"`
}

func (req transactionRequest) params() transaction.Params {
	return transaction.Params{
		Kind:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date.Time,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Add(r.Context(), req.params())
	if err != nil {
		api.Error(w, err, transaction.ErrInvalid, transaction.ErrNotFound)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(tx))
}

// list accepts optional month (YYYY-MM) and type (all, income, expense)
// filters. Without a month every transaction is returned.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err, nil, nil)
		return
	}

	kind, err := metrics.ParseKindFilter(r.URL.Query().Get("type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if s := r.URL.Query().Get("month"); s != "" {
		month, err := metrics.ParseMonth(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		txs = metrics.FilterTransactions(txs, month, kind)
	} else {
		txs = slices.DeleteFunc(txs, func(tx *transaction.Transaction) bool { return !kind.Match(tx.Kind) })
	}

	api.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err, nil, transaction.ErrNotFound)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := api.ID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req transactionRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Update(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, err, transaction.ErrInvalid, transaction.ErrNotFound)
		return
	}

	if tx == nil {
		http.Error(w, transaction.ErrNotFound.Error(), http.StatusNotFound)
		return
	}

	api.JSON(w, http.StatusOK, toResponse(tx))
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
