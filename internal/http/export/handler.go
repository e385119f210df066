package export

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/carteira/internal/encoding"
	"github.com/MrJamesThe3rd/carteira/internal/export"
	"github.com/MrJamesThe3rd/carteira/internal/http/api"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download returns the CSV for ?month=YYYY-MM (default: current month),
// ?type=all|income|expense and ?charset= (default UTF-8).
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := export.Options{
		Month:   metrics.MonthOf(h.now()),
		Charset: q.Get("charset"),
	}

	if s := q.Get("month"); s != "" {
		m, err := metrics.ParseMonth(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		opts.Month = m
	}

	kind, err := metrics.ParseKindFilter(q.Get("type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts.Kind = kind

	var buf bytes.Buffer

	if _, err := h.svc.WriteCSV(r.Context(), &buf, opts); err != nil {
		if errors.Is(err, encoding.ErrUnsupported) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		api.Error(w, err, nil, nil)

		return
	}

	charset := opts.Charset
	if charset == "" {
		charset = encoding.UTF8
	}

	w.Header().Set("Content-Type", "text/csv; charset="+charset)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.FileName(opts.Month, opts.Kind)))

	_, _ = w.Write(buf.Bytes())
}
