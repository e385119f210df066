package categorize

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/carteira/internal/categorize"
	"github.com/MrJamesThe3rd/carteira/internal/http/api"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

type Handler struct {
	svc *categorize.Service
}

func NewHandler(svc *categorize.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Suggested   string `json:"suggestedDescription,omitempty"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")
	if desc == "" {
		http.Error(w, "description query parameter is required", http.StatusBadRequest)
		return
	}

	kind := transaction.Kind(r.URL.Query().Get("type"))
	if kind == "" {
		kind = transaction.KindExpense
	}

	if !kind.Valid() {
		http.Error(w, "type must be income or expense", http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Suggest(r.Context(), kind, desc)
	if err != nil {
		api.Error(w, err, nil, nil)
		return
	}

	resp := suggestResponse{Description: desc}
	if rule != nil {
		resp.Category = rule.Category
		resp.Suggested = rule.Description
	}

	api.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	Pattern     string           `json:"pattern" validate:"required"`
	Type        transaction.Kind `json:"type" validate:"required,oneof=income expense"`
	Category    string           `json:"category" validate:"required"`
	Description string           `json:"description"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := api.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), req.Type, req.Pattern, req.Category, req.Description); err != nil {
		api.Error(w, err, transaction.ErrInvalid, nil)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
