package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/importer/cgd"
	"github.com/MrJamesThe3rd/carteira/internal/importer/nubank"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

var (
	ErrUnknownBank = errors.New("unknown bank")
	ErrParse       = errors.New("unreadable export")
)

// Categorizer fills in categories from learned rules.
type Categorizer interface {
	Apply(ctx context.Context, rows []transaction.Params) (int, error)
}

// Recorder stores imported rows.
type Recorder interface {
	ImportBatch(ctx context.Context, params []transaction.Params) (*transaction.ImportResult, error)
}

type Service struct {
	importers   map[Bank]Importer
	fallback    string
	categorizer Categorizer
	recorder    Recorder
}

// NewService wires the bank parsers. categorizer may be nil, in which case
// every row keeps the fallback category.
func NewService(c *catalog.Catalog, categorizer Categorizer, recorder Recorder) *Service {
	return &Service{
		importers: map[Bank]Importer{
			BankCGD:    cgd.NewParser(),
			BankNubank: nubank.NewParser(),
		},
		fallback:    c.FallbackCategory,
		categorizer: categorizer,
		recorder:    recorder,
	}
}

type Result struct {
	Parsed      int
	Categorized int
	*transaction.ImportResult
}

// Parse reads an export and returns its rows with categories suggested
// from learned rules, without storing anything.
func (s *Service) Parse(ctx context.Context, bank Bank, r io.Reader) ([]transaction.Params, int, error) {
	imp, ok := s.importers[bank]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownBank, bank)
	}

	rows, err := imp.Parse(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrParse, bank, err)
	}

	for i := range rows {
		if rows[i].Category == "" {
			rows[i].Category = s.fallback
		}
	}

	if s.categorizer == nil {
		return rows, 0, nil
	}

	n, err := s.categorizer.Apply(ctx, rows)
	if err != nil {
		return nil, 0, fmt.Errorf("categorizing: %w", err)
	}

	return rows, n, nil
}

// Import parses an export and stores the rows that are not already present.
func (s *Service) Import(ctx context.Context, bank Bank, r io.Reader) (*Result, error) {
	rows, categorized, err := s.Parse(ctx, bank, r)
	if err != nil {
		return nil, err
	}

	res, err := s.recorder.ImportBatch(ctx, rows)
	if err != nil {
		return nil, err
	}

	slog.Info("import finished",
		"bank", bank,
		"parsed", len(rows),
		"imported", len(res.Imported),
		"skipped", len(res.Skipped),
		"categorized", categorized,
	)

	return &Result{Parsed: len(rows), Categorized: categorized, ImportResult: res}, nil
}
