package metrics

import (
	"time"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/investment"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

// DashboardGoals is how many goals the dashboard previews.
const DashboardGoals = 3

type Input struct {
	Transactions []*transaction.Transaction
	Investments  []*investment.Investment
	Goals        []*goal.Goal
	Month        Month
	Kind         KindFilter
	Now          time.Time
}

// Dashboard is everything the overview screen shows for one month and kind.
type Dashboard struct {
	Month       Month
	Kind        KindFilter
	Filtered    []*transaction.Transaction
	Totals      Totals
	Categories  []CategorySlice
	Series      []MonthlyPoint
	Investments InvestmentTotals
	ByType      []TypeSlice
	Goals       []GoalSummary
}

// BuildDashboard recomputes the dashboard. Totals and categories follow the
// month and kind filter; the monthly series always spans all transactions.
func BuildDashboard(in Input, c *catalog.Catalog) Dashboard {
	if in.Kind == "" {
		in.Kind = KindAll
	}

	filtered := FilterTransactions(in.Transactions, in.Month, in.Kind)

	goals := in.Goals
	if len(goals) > DashboardGoals {
		goals = goals[:DashboardGoals]
	}

	return Dashboard{
		Month:       in.Month,
		Kind:        in.Kind,
		Filtered:    filtered,
		Totals:      TotalsOf(filtered),
		Categories:  ByCategory(filtered, in.Kind),
		Series:      MonthlySeries(in.Transactions, SeriesMonths, c),
		Investments: InvestmentTotalsOf(in.Investments),
		ByType:      ByType(in.Investments, c),
		Goals:       GoalProgress(goals, in.Now),
	}
}
