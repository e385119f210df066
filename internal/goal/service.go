package goal

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

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	LoadGoals(ctx context.Context) ([]*Goal, error)
	SaveGoals(ctx context.Context, goals []*Goal) error
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
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	Category      string
	Priority      Priority
}

func (p Params) Validate(c *catalog.Catalog) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if p.TargetAmount.IsNegative() || p.CurrentAmount.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalid)
	}

	if !c.HasGoalCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, p.Category)
	}

	if !c.HasPriority(string(p.Priority)) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalid, p.Priority)
	}

	if p.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalid)
	}

	return nil
}

func (p Params) apply(g *Goal) {
	g.Name = strings.TrimSpace(p.Name)
	g.TargetAmount = p.TargetAmount
	g.CurrentAmount = p.CurrentAmount
	g.Deadline = p.Deadline
	g.Category = p.Category
	g.Priority = p.Priority
}

func (s *Service) List(ctx context.Context) ([]*Goal, error) {
	return s.repo.LoadGoals(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Goal, error) {
	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}

	for _, g := range goals {
		if g.ID == id {
			return g, nil
		}
	}

	return nil, ErrNotFound
}

func (s *Service) Add(ctx context.Context, params Params) (*Goal, error) {
	if err := params.Validate(s.catalog); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}

	g := &Goal{ID: uuid.NewString()}
	params.apply(g)

	if err := s.repo.SaveGoals(ctx, append(goals, g)); err != nil {
		return nil, err
	}

	return g, nil
}

// Update replaces the goal with the given ID. An unknown ID writes nothing
// and returns nil, nil.
func (s *Service) Update(ctx context.Context, id string, params Params) (*Goal, error) {
	if err := params.Validate(s.catalog); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}

	updated := &Goal{ID: id}
	params.apply(updated)

	found := false
	next := make([]*Goal, len(goals))

	for i, g := range goals {
		if g.ID == id {
			next[i] = updated
			found = true

			continue
		}

		next[i] = g
	}

	if !found {
		return nil, nil
	}

	if err := s.repo.SaveGoals(ctx, next); err != nil {
		return nil, err
	}

	return updated, nil
}

// Contribute adds amount to the goal's saved amount.
func (s *Service) Contribute(ctx context.Context, id string, amount decimal.Decimal) (*Goal, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: contribution must not be negative", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}

	for i, g := range goals {
		if g.ID != id {
			continue
		}

		updated := *g
		updated.CurrentAmount = g.CurrentAmount.Add(amount)
		goals[i] = &updated

		if err := s.repo.SaveGoals(ctx, goals); err != nil {
			return nil, err
		}

		return &updated, nil
	}

	return nil, ErrNotFound
}

func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return err
	}

	next := make([]*Goal, 0, len(goals))

	for _, g := range goals {
		if g.ID != id {
			next = append(next, g)
		}
	}

	return s.repo.SaveGoals(ctx, next)
}
