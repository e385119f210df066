package transaction

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	LoadTransactions(ctx context.Context) ([]*Transaction, error)
	SaveTransactions(ctx context.Context, txs []*Transaction) error
}

type Service struct {
	repo    Repository
	catalog *catalog.Catalog

	// mu serializes load-modify-save cycles.
	mu sync.Mutex
}

func NewService(repo Repository, c *catalog.Catalog) *Service {
	return &Service{repo: repo, catalog: c}
}

// Params carries the user-editable fields of a transaction.
type Params struct {
	Kind        Kind
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// Validate checks params against the entry rules: a known kind, a
// non-negative amount, a category offered for that kind and a date.
func (p Params) Validate(c *catalog.Catalog) error {
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalid, p.Kind)
	}

	if p.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalid)
	}

	if !c.HasCategory(string(p.Kind), p.Category) {
		return fmt.Errorf("%w: category %q is not a %s category", ErrInvalid, p.Category, p.Kind)
	}

	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}

	return nil
}

func (p Params) apply(tx *Transaction) {
	tx.Kind = p.Kind
	tx.Amount = p.Amount
	tx.Category = p.Category
	tx.Description = strings.TrimSpace(p.Description)
	tx.Date = p.Date
}

func (s *Service) List(ctx context.Context) ([]*Transaction, error) {
	return s.repo.LoadTransactions(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Transaction, error) {
	txs, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	for _, tx := range txs {
		if tx.ID == id {
			return tx, nil
		}
	}

	return nil, ErrNotFound
}

// Add assigns a fresh ID and appends the transaction.
func (s *Service) Add(ctx context.Context, params Params) (*Transaction, error) {
	if err := params.Validate(s.catalog); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{ID: uuid.NewString()}
	params.apply(tx)

	if err := s.repo.SaveTransactions(ctx, append(txs, tx)); err != nil {
		return nil, err
	}

	return tx, nil
}

// Update replaces the transaction with the given ID. When no transaction
// matches nothing is written and both results are nil.
func (s *Service) Update(ctx context.Context, id string, params Params) (*Transaction, error) {
	if err := params.Validate(s.catalog); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	updated := &Transaction{ID: id}
	params.apply(updated)

	found := false
	next := make([]*Transaction, len(txs))

	for i, tx := range txs {
		if tx.ID == id {
			next[i] = updated
			found = true

			continue
		}

		next[i] = tx
	}

	if !found {
		return nil, nil
	}

	if err := s.repo.SaveTransactions(ctx, next); err != nil {
		return nil, err
	}

	return updated, nil
}

// Remove drops every transaction with the given ID. Removing an unknown ID
// is not an error.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return err
	}

	next := make([]*Transaction, 0, len(txs))

	for _, tx := range txs {
		if tx.ID != id {
			next = append(next, tx)
		}
	}

	return s.repo.SaveTransactions(ctx, next)
}

type ImportResult struct {
	Imported []*Transaction
	// Skipped holds incoming rows that duplicate an existing transaction.
	Skipped []Params
}

// ImportBatch adds many transactions with a single write. Rows that match an
// existing transaction, or an earlier row of the same batch, on date, kind,
// amount and description are skipped.
func (s *Service) ImportBatch(ctx context.Context, params []Params) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	for i, p := range params {
		if err := p.Validate(s.catalog); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	type dupKey struct {
		Date        string
		Kind        Kind
		Amount      string
		Description string
	}

	keyOf := func(kind Kind, amount decimal.Decimal, desc string, date time.Time) dupKey {
		return dupKey{
			Date:        date.Format(time.DateOnly),
			Kind:        kind,
			Amount:      amount.String(),
			Description: strings.TrimSpace(desc),
		}
	}

	existing := make(map[dupKey]struct{}, len(txs))
	for _, tx := range txs {
		existing[keyOf(tx.Kind, tx.Amount, tx.Description, tx.Date)] = struct{}{}
	}

	result := &ImportResult{}

	for _, p := range params {
		k := keyOf(p.Kind, p.Amount, p.Description, p.Date)
		if _, found := existing[k]; found {
			result.Skipped = append(result.Skipped, p)
			continue
		}

		tx := &Transaction{ID: uuid.NewString()}
		p.apply(tx)

		existing[k] = struct{}{}
		result.Imported = append(result.Imported, tx)
	}

	if len(result.Imported) == 0 {
		return result, nil
	}

	if err := s.repo.SaveTransactions(ctx, append(txs, result.Imported...)); err != nil {
		return nil, fmt.Errorf("saving import: %w", err)
	}

	return result, nil
}
