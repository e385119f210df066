package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/slot"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

// record is the persisted shape of a transaction.
type record struct {
	ID          string           `json:"id"`
	Type        transaction.Kind `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
}

type Store struct {
	slot *slot.Collection[record]
}

func New(kv storage.Storage) *Store {
	return &Store{slot: slot.NewCollection[record](kv, slot.Transactions)}
}

func (s *Store) LoadTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	records, err := s.slot.Load(ctx)
	if err != nil {
		return nil, err
	}

	txs := make([]*transaction.Transaction, len(records))
	for i, r := range records {
		txs[i] = &transaction.Transaction{
			ID:          r.ID,
			Kind:        r.Type,
			Amount:      r.Amount,
			Category:    r.Category,
			Description: r.Description,
			Date:        r.Date,
		}
	}

	return txs, nil
}

func (s *Store) SaveTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	records := make([]record, len(txs))
	for i, tx := range txs {
		records[i] = record{
			ID:          tx.ID,
			Type:        tx.Kind,
			Amount:      tx.Amount,
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date.UTC(),
		}
	}

	return s.slot.Save(ctx, records)
}
