package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/investment"
	"github.com/MrJamesThe3rd/carteira/internal/slot"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
)

type record struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	Quantity     decimal.Decimal `json:"quantity"`
	Symbol       string          `json:"symbol"`
	PurchaseDate time.Time       `json:"purchaseDate"`
}

type Store struct {
	slot *slot.Collection[record]
}

func New(kv storage.Storage) *Store {
	return &Store{slot: slot.NewCollection[record](kv, slot.Investments)}
}

func (s *Store) LoadInvestments(ctx context.Context) ([]*investment.Investment, error) {
	records, err := s.slot.Load(ctx)
	if err != nil {
		return nil, err
	}

	invs := make([]*investment.Investment, len(records))
	for i, r := range records {
		invs[i] = &investment.Investment{
			ID:           r.ID,
			Name:         r.Name,
			Type:         r.Type,
			Amount:       r.Amount,
			CurrentValue: r.CurrentValue,
			Quantity:     r.Quantity,
			Symbol:       r.Symbol,
			PurchaseDate: r.PurchaseDate,
		}
	}

	return invs, nil
}

func (s *Store) SaveInvestments(ctx context.Context, invs []*investment.Investment) error {
	records := make([]record, len(invs))
	for i, inv := range invs {
		records[i] = record{
			ID:           inv.ID,
			Name:         inv.Name,
			Type:         inv.Type,
			Amount:       inv.Amount,
			CurrentValue: inv.CurrentValue,
			Quantity:     inv.Quantity,
			Symbol:       inv.Symbol,
			PurchaseDate: inv.PurchaseDate.UTC(),
		}
	}

	return s.slot.Save(ctx, records)
}
