// Package categorize learns which category a bank description belongs to
// and suggests it for imported rows.
package categorize

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

// Rule maps descriptions containing Pattern to a category, and optionally
// to a cleaner description.
type Rule struct {
	Pattern     string
	Kind        transaction.Kind
	Category    string
	Description string
	CreatedAt   time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	LoadRules(ctx context.Context) ([]*Rule, error)
	SaveRules(ctx context.Context, rules []*Rule) error
}

type Service struct {
	repo    Repository
	catalog *catalog.Catalog
	now     func() time.Time
	mu      sync.Mutex
}

func NewService(repo Repository, c *catalog.Catalog) *Service {
	return &Service{repo: repo, catalog: c, now: time.Now}
}

// Suggest finds the rule for a raw description of the given kind. The
// longest matching pattern wins; among equal lengths the newest rule wins.
func (s *Service) Suggest(ctx context.Context, kind transaction.Kind, rawDescription string) (*Rule, error) {
	rules, err := s.repo.LoadRules(ctx)
	if err != nil {
		return nil, err
	}

	return match(rules, kind, rawDescription), nil
}

func match(rules []*Rule, kind transaction.Kind, rawDescription string) *Rule {
	raw := strings.ToLower(rawDescription)

	var best *Rule

	for _, r := range rules {
		if r.Kind != kind || !strings.Contains(raw, strings.ToLower(r.Pattern)) {
			continue
		}

		switch {
		case best == nil,
			len(r.Pattern) > len(best.Pattern),
			len(r.Pattern) == len(best.Pattern) && r.CreatedAt.After(best.CreatedAt):
			best = r
		}
	}

	return best
}

// Learn remembers that descriptions containing pattern belong to category.
// An existing rule for the same pattern and kind is replaced.
func (s *Service) Learn(ctx context.Context, kind transaction.Kind, pattern, category, description string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return fmt.Errorf("%w: empty pattern", transaction.ErrInvalid)
	}

	if !s.catalog.HasCategory(string(kind), category) {
		return fmt.Errorf("%w: category %q is not a %s category", transaction.ErrInvalid, category, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.repo.LoadRules(ctx)
	if err != nil {
		return err
	}

	next := make([]*Rule, 0, len(rules)+1)

	for _, r := range rules {
		if r.Kind == kind && strings.EqualFold(r.Pattern, pattern) {
			continue
		}

		next = append(next, r)
	}

	next = append(next, &Rule{
		Pattern:     pattern,
		Kind:        kind,
		Category:    category,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
	})

	if err := s.repo.SaveRules(ctx, next); err != nil {
		return fmt.Errorf("saving rules: %w", err)
	}

	return nil
}

// Apply fills in category and description of rows still carrying the
// fallback category, using the learned rules. It returns how many rows were
// changed.
func (s *Service) Apply(ctx context.Context, rows []transaction.Params) (int, error) {
	rules, err := s.repo.LoadRules(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0

	for i := range rows {
		if rows[i].Category != s.catalog.FallbackCategory {
			continue
		}

		r := match(rules, rows[i].Kind, rows[i].Description)
		if r == nil {
			continue
		}

		rows[i].Category = r.Category
		if r.Description != "" {
			rows[i].Description = r.Description
		}

		changed++
	}

	return changed, nil
}
