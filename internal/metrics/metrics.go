// Package metrics derives dashboard figures from the stored collections.
// Every function recomputes from its input and performs no I/O.
package metrics

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/investment"
	"github.com/MrJamesThe3rd/carteira/internal/money"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

// SeriesMonths is the number of months shown in the monthly series.
const SeriesMonths = 6

// KindFilter selects transactions by kind.
type KindFilter string

const (
	KindAll     KindFilter = "all"
	KindIncome  KindFilter = KindFilter(transaction.KindIncome)
	KindExpense KindFilter = KindFilter(transaction.KindExpense)
)

// ParseKindFilter accepts "all", "income" or "expense". Empty means all.
func ParseKindFilter(s string) (KindFilter, error) {
	switch KindFilter(s) {
	case "", KindAll:
		return KindAll, nil
	case KindIncome, KindExpense:
		return KindFilter(s), nil
	}

	return "", fmt.Errorf("unknown kind filter %q", s)
}

func (f KindFilter) Match(k transaction.Kind) bool {
	return f == KindAll || f == "" || KindFilter(k) == f
}

// FilterTransactions returns the transactions dated within month whose kind
// matches the filter, in input order.
func FilterTransactions(txs []*transaction.Transaction, month Month, kind KindFilter) []*transaction.Transaction {
	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if month.Contains(tx.Date) && kind.Match(tx.Kind) {
			out = append(out, tx)
		}
	}

	return out
}

type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

func TotalsOf(txs []*transaction.Transaction) Totals {
	var t Totals

	for _, tx := range txs {
		switch tx.Kind {
		case transaction.KindIncome:
			t.Income = t.Income.Add(tx.Amount)
		case transaction.KindExpense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
	}

	t.Balance = t.Income.Sub(t.Expenses)

	return t
}

// CategorySlice is the summed amount of one category of one kind.
type CategorySlice struct {
	Kind     transaction.Kind `json:"kind"`
	Category string           `json:"category"`
	Amount   decimal.Decimal  `json:"amount"`
	// Share is the percentage of the sum of all returned slices.
	Share decimal.Decimal `json:"share"`
}

// ByCategory sums amounts per (kind, category) in first-seen order, keeping
// only kinds the filter matches. A category name listed for both kinds,
// such as "Outros", yields one slice per kind rather than a single slice
// labelled with whichever kind appeared first.
func ByCategory(txs []*transaction.Transaction, kind KindFilter) []CategorySlice {
	type key struct {
		kind     transaction.Kind
		category string
	}

	index := make(map[key]int)
	out := []CategorySlice{}
	total := decimal.Zero

	for _, tx := range txs {
		if !kind.Match(tx.Kind) {
			continue
		}

		k := key{kind: tx.Kind, category: tx.Category}

		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, CategorySlice{Kind: tx.Kind, Category: tx.Category})
		}

		out[i].Amount = out[i].Amount.Add(tx.Amount)
		total = total.Add(tx.Amount)
	}

	for i := range out {
		out[i].Share = money.Percent(out[i].Amount, total)
	}

	return out
}

type MonthlyPoint struct {
	Month    Month           `json:"-"`
	Label    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// MonthlySeries sums income and expenses per calendar month over all
// transactions and returns the latest n months in chronological order.
// Months without transactions are not included.
func MonthlySeries(txs []*transaction.Transaction, n int, c *catalog.Catalog) []MonthlyPoint {
	byMonth := make(map[Month]*MonthlyPoint)

	for _, tx := range txs {
		m := MonthOf(tx.Date)

		p, ok := byMonth[m]
		if !ok {
			p = &MonthlyPoint{Month: m, Label: m.Label(c)}
			byMonth[m] = p
		}

		switch tx.Kind {
		case transaction.KindIncome:
			p.Income = p.Income.Add(tx.Amount)
		case transaction.KindExpense:
			p.Expenses = p.Expenses.Add(tx.Amount)
		}
	}

	points := make([]MonthlyPoint, 0, len(byMonth))
	for _, p := range byMonth {
		points = append(points, *p)
	}

	slices.SortFunc(points, func(a, b MonthlyPoint) int {
		switch {
		case a.Month.Before(b.Month):
			return -1
		case b.Month.Before(a.Month):
			return 1
		}

		return 0
	})

	if n >= 0 && len(points) > n {
		points = points[len(points)-n:]
	}

	return points
}

type InvestmentTotals struct {
	Invested    decimal.Decimal `json:"invested"`
	Current     decimal.Decimal `json:"current"`
	Gain        decimal.Decimal `json:"gain"`
	GainPercent decimal.Decimal `json:"gainPercent"`
}

func InvestmentTotalsOf(invs []*investment.Investment) InvestmentTotals {
	var t InvestmentTotals

	for _, inv := range invs {
		t.Invested = t.Invested.Add(inv.Amount)
		t.Current = t.Current.Add(inv.CurrentValue)
	}

	t.Gain = t.Current.Sub(t.Invested)
	t.GainPercent = money.Percent(t.Gain, t.Invested)

	return t
}

type TypeSlice struct {
	Type   string          `json:"type"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ByType sums current value per investment type in first-seen order.
func ByType(invs []*investment.Investment, c *catalog.Catalog) []TypeSlice {
	index := make(map[string]int)
	out := []TypeSlice{}

	for _, inv := range invs {
		i, ok := index[inv.Type]
		if !ok {
			i = len(out)
			index[inv.Type] = i
			out = append(out, TypeSlice{Type: inv.Type, Label: c.InvestmentLabel(inv.Type)})
		}

		out[i].Amount = out[i].Amount.Add(inv.CurrentValue)
	}

	return out
}

type GoalSummary struct {
	Goal          *goal.Goal
	Progress      decimal.Decimal
	Remaining     decimal.Decimal
	DaysRemaining int
	Completed     bool
	Status        goal.Status
}

func GoalProgress(goals []*goal.Goal, now time.Time) []GoalSummary {
	out := make([]GoalSummary, len(goals))

	for i, g := range goals {
		out[i] = GoalSummary{
			Goal:          g,
			Progress:      g.Progress(),
			Remaining:     g.Remaining(),
			DaysRemaining: g.DaysRemaining(now),
			Completed:     g.Completed(),
			Status:        g.Status(now),
		}
	}

	return out
}
