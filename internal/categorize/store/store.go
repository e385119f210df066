package store

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/carteira/internal/categorize"
	"github.com/MrJamesThe3rd/carteira/internal/slot"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

type record struct {
	Pattern     string           `json:"pattern"`
	Type        transaction.Kind `json:"type"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type Store struct {
	slot *slot.Collection[record]
}

func New(kv storage.Storage) *Store {
	return &Store{slot: slot.NewCollection[record](kv, slot.CategoryRules)}
}

func (s *Store) LoadRules(ctx context.Context) ([]*categorize.Rule, error) {
	records, err := s.slot.Load(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]*categorize.Rule, len(records))
	for i, r := range records {
		rules[i] = &categorize.Rule{
			Pattern:     r.Pattern,
			Kind:        r.Type,
			Category:    r.Category,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		}
	}

	return rules, nil
}

func (s *Store) SaveRules(ctx context.Context, rules []*categorize.Rule) error {
	records := make([]record, len(rules))
	for i, r := range rules {
		records[i] = record{
			Pattern:     r.Pattern,
			Type:        r.Kind,
			Category:    r.Category,
			Description: r.Description,
			CreatedAt:   r.CreatedAt.UTC(),
		}
	}

	return s.slot.Save(ctx, records)
}
