package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/slot"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
)

type record struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      time.Time       `json:"deadline"`
	Category      string          `json:"category"`
	Priority      goal.Priority   `json:"priority"`
}

type Store struct {
	slot *slot.Collection[record]
}

func New(kv storage.Storage) *Store {
	return &Store{slot: slot.NewCollection[record](kv, slot.Goals)}
}

func (s *Store) LoadGoals(ctx context.Context) ([]*goal.Goal, error) {
	records, err := s.slot.Load(ctx)
	if err != nil {
		return nil, err
	}

	goals := make([]*goal.Goal, len(records))
	for i, r := range records {
		goals[i] = &goal.Goal{
			ID:            r.ID,
			Name:          r.Name,
			TargetAmount:  r.TargetAmount,
			CurrentAmount: r.CurrentAmount,
			Deadline:      r.Deadline,
			Category:      r.Category,
			Priority:      r.Priority,
		}
	}

	return goals, nil
}

func (s *Store) SaveGoals(ctx context.Context, goals []*goal.Goal) error {
	records := make([]record, len(goals))
	for i, g := range goals {
		records[i] = record{
			ID:            g.ID,
			Name:          g.Name,
			TargetAmount:  g.TargetAmount,
			CurrentAmount: g.CurrentAmount,
			Deadline:      g.Deadline.UTC(),
			Category:      g.Category,
			Priority:      g.Priority,
		}
	}

	return s.slot.Save(ctx, records)
}
