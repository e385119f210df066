package investment

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

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=investment
type Repository interface {
	LoadInvestments(ctx context.Context) ([]*Investment, error)
	SaveInvestments(ctx context.Context, invs []*Investment) error
}

type Service struct {
	repo    Repository
	catalog *catalog.Catalog
	mu      sync.Mutex
}

func NewService(repo Repository, c *catalog.Catalog) *Service {
	return &Service{repo: repo, catalog: c}
}

type Params struct {
	Name         string
	Type         string
	Amount       decimal.Decimal
	CurrentValue decimal.Decimal
	Quantity     decimal.Decimal
	Symbol       string
	PurchaseDate time.Time
}

func (p Params) Validate(c *catalog.Catalog) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if !c.HasInvestmentType(p.Type) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, p.Type)
	}

	if p.Amount.IsNegative() || p.CurrentValue.IsNegative() || p.Quantity.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalid)
	}

	if p.PurchaseDate.IsZero() {
		return fmt.Errorf("%w: purchase date is required", ErrInvalid)
	}

	return nil
}

func (p Params) apply(inv *Investment) {
	inv.Name = strings.TrimSpace(p.Name)
	inv.Type = p.Type
	inv.Amount = p.Amount
	inv.CurrentValue = p.CurrentValue
	inv.Quantity = p.Quantity
	inv.Symbol = strings.ToUpper(strings.TrimSpace(p.Symbol))
	inv.PurchaseDate = p.PurchaseDate
}

func (s *Service) List(ctx context.Context) ([]*Investment, error) {
	return s.repo.LoadInvestments(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Investment, error) {
	invs, err := s.repo.LoadInvestments(ctx)
	if err != nil {
		return nil, err
	}

	for _, inv := range invs {
		if inv.ID == id {
			return inv, nil
		}
	}

	return nil, ErrNotFound
}

func (s *Service) Add(ctx context.Context, params Params) (*Investment, error) {
	if err := params.Validate(s.catalog); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invs, err := s.repo.LoadInvestments(ctx)
	if err != nil {
		return nil, err
	}

	inv := &Investment{ID: uuid.NewString()}
	params.apply(inv)

	if err := s.repo.SaveInvestments(ctx, append(invs, inv)); err != nil {
		return nil, err
	}

	return inv, nil
}

// Update replaces the investment with the given ID. An unknown ID is a
// no-op returning nil, nil.
func (s *Service) Update(ctx context.Context, id string, params Params) (*Investment, error) {
	if err := params.Validate(s.catalog); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invs, err := s.repo.LoadInvestments(ctx)
	if err != nil {
		return nil, err
	}

	updated := &Investment{ID: id}
	params.apply(updated)

	found := false
	next := make([]*Investment, len(invs))

	for i, inv := range invs {
		if inv.ID == id {
			next[i] = updated
			found = true

			continue
		}

		next[i] = inv
	}

	if !found {
		return nil, nil
	}

	if err := s.repo.SaveInvestments(ctx, next); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invs, err := s.repo.LoadInvestments(ctx)
	if err != nil {
		return err
	}

	next := make([]*Investment, 0, len(invs))

	for _, inv := range invs {
		if inv.ID != id {
			next = append(next, inv)
		}
	}

	return s.repo.SaveInvestments(ctx, next)
}
