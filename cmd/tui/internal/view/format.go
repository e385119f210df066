package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/money"
)

const dbTimeout = 5 * time.Second

// FormatAmount formats an amount in the given currency, e.g. "R$ 1.234,56".
func FormatAmount(d decimal.Decimal, currency string) string {
	return money.Format(d, currency)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
