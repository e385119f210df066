package investment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/money"
)

var (
	ErrNotFound = errors.New("investment not found")
	ErrInvalid  = errors.New("invalid investment")
)

type Investment struct {
	ID           string
	Name         string
	Type         string
	Amount       decimal.Decimal // invested
	CurrentValue decimal.Decimal
	Quantity     decimal.Decimal
	Symbol       string
	PurchaseDate time.Time
}

// Gain is the current value minus the amount invested.
func (i *Investment) Gain() decimal.Decimal {
	return i.CurrentValue.Sub(i.Amount)
}

// GainPercent is Gain relative to the amount invested, or zero when nothing
// was invested.
func (i *Investment) GainPercent() decimal.Decimal {
	return money.Percent(i.Gain(), i.Amount)
}
