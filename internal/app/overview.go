package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/plan"
)

// Overview is a dashboard together with the plan it was built under.
// Investment and goal sections are empty unless the plan unlocks them.
type Overview struct {
	metrics.Dashboard
	Plan            catalog.Plan
	ShowInvestments bool
	ShowGoals       bool
}

// Overview loads every collection and builds the dashboard for month and
// kind as of now.
func (a *App) Overview(ctx context.Context, month metrics.Month, kind metrics.KindFilter, now time.Time) (*Overview, error) {
	p, err := a.Plans.Current(ctx)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Plan:            p,
		ShowInvestments: plan.HasAccess(a.Catalog, p.Name, plan.FeatureInvestments),
		ShowGoals:       plan.HasAccess(a.Catalog, p.Name, plan.FeatureGoals),
	}

	in := metrics.Input{Month: month, Kind: kind, Now: now}

	if in.Transactions, err = a.Transactions.List(ctx); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	if ov.ShowInvestments {
		if in.Investments, err = a.Investments.List(ctx); err != nil {
			return nil, fmt.Errorf("listing investments: %w", err)
		}
	}

	if ov.ShowGoals {
		if in.Goals, err = a.Goals.List(ctx); err != nil {
			return nil, fmt.Errorf("listing goals: %w", err)
		}
	}

	ov.Dashboard = metrics.BuildDashboard(in, a.Catalog)

	return ov, nil
}
