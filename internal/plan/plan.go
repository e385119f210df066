// Package plan gates feature areas by the session's access tier.
package plan

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/slot"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
)

// Feature areas.
const (
	FeatureDashboard   = "dashboard"
	FeatureGoals       = "goals"
	FeatureInvestments = "investments"
)

const Default = "basic"

var ErrUnknownPlan = errors.New("unknown plan")

// HasAccess reports whether tier unlocks feature. Unknown tiers unlock
// nothing.
func HasAccess(c *catalog.Catalog, tier, feature string) bool {
	p, ok := c.Plan(tier)
	if !ok {
		return false
	}

	return slices.Contains(p.Features, feature)
}

// Service holds the session's current tier in the plan slot.
type Service struct {
	catalog *catalog.Catalog
	slot    *slot.Value[string]
	mu      sync.Mutex
}

func NewService(kv storage.Storage, c *catalog.Catalog) *Service {
	return &Service{catalog: c, slot: slot.NewValue[string](kv, slot.Plan)}
}

// Current returns the stored tier, or the default tier when none is stored
// or the stored one no longer exists.
func (s *Service) Current(ctx context.Context) (catalog.Plan, error) {
	name, err := s.slot.Load(ctx, Default)
	if err != nil {
		return catalog.Plan{}, err
	}

	if p, ok := s.catalog.Plan(name); ok {
		return p, nil
	}

	p, _ := s.catalog.Plan(Default)

	return p, nil
}

// Switch makes tier current. It applies to the next access check.
func (s *Service) Switch(ctx context.Context, tier string) (catalog.Plan, error) {
	p, ok := s.catalog.Plan(tier)
	if !ok {
		return catalog.Plan{}, fmt.Errorf("%w: %q", ErrUnknownPlan, tier)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Save(ctx, p.Name); err != nil {
		return catalog.Plan{}, err
	}

	return p, nil
}

func (s *Service) HasAccess(ctx context.Context, feature string) (bool, error) {
	p, err := s.Current(ctx)
	if err != nil {
		return false, err
	}

	return slices.Contains(p.Features, feature), nil
}
