package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/http/api"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

type transactionResponse struct {
	ID          string           `json:"id"`
	Type        transaction.Kind `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        api.Date         `json:"date"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Type:        tx.Kind,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        api.Date{Time: tx.Date},
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
