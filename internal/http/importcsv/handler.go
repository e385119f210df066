package importcsv

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/http/api"
	"github.com/MrJamesThe3rd/carteira/internal/importer"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type rowDTO struct {
	Type        transaction.Kind `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        api.Date         `json:"date"`
}

func toRow(p transaction.Params) rowDTO {
	return rowDTO{
		Type:        p.Kind,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		Date:        api.Date{Time: p.Date},
	}
}

func toRows(params []transaction.Params) []rowDTO {
	rows := make([]rowDTO, len(params))
	for i, p := range params {
		rows[i] = toRow(p)
	}

	return rows
}

type importResponse struct {
	Parsed      int      `json:"parsed"`
	Categorized int      `json:"categorized"`
	Imported    []rowDTO `json:"imported"`
	Skipped     []rowDTO `json:"skipped"`
}

// importCSV takes a multipart form with "bank" and "file". With
// dry_run=true the parsed rows are returned without being stored.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		http.Error(w, "bank field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	dryRun, _ := strconv.ParseBool(r.FormValue("dry_run"))

	if dryRun {
		rows, categorized, err := h.svc.Parse(r.Context(), bank, file)
		if err != nil {
			h.fail(w, err)
			return
		}

		api.JSON(w, http.StatusOK, importResponse{
			Parsed:      len(rows),
			Categorized: categorized,
			Imported:    toRows(rows),
			Skipped:     []rowDTO{},
		})

		return
	}

	res, err := h.svc.Import(r.Context(), bank, file)
	if err != nil {
		h.fail(w, err)
		return
	}

	imported := make([]rowDTO, len(res.Imported))
	for i, tx := range res.Imported {
		imported[i] = rowDTO{
			Type:        tx.Kind,
			Amount:      tx.Amount,
			Category:    tx.Category,
			Description: tx.Description,
			Date:        api.Date{Time: tx.Date},
		}
	}

	api.JSON(w, http.StatusCreated, importResponse{
		Parsed:      res.Parsed,
		Categorized: res.Categorized,
		Imported:    imported,
		Skipped:     toRows(res.Skipped),
	})
}

// fail reports unknown banks and unreadable files as client errors.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, importer.ErrUnknownBank) || errors.Is(err, importer.ErrParse) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	api.Error(w, err, transaction.ErrInvalid, nil)
}
