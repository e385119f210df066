package app_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/app"
	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/config"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/investment"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

func TestOpen_SQLitePersists(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_DSN", filepath.Join(t.TempDir(), "carteira.db"))

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx := context.Background()

	a, closeFn, err := app.Open(cfg)
	require.NoError(t, err)

	_, err = a.Transactions.Add(ctx, transaction.Params{
		Kind:        transaction.KindIncome,
		Amount:      decimal.RequireFromString("3000"),
		Category:    "Salário",
		Description: "Salário",
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = a.Plans.Switch(ctx, "premium")
	require.NoError(t, err)
	require.NoError(t, closeFn())

	a, closeFn, err = app.Open(cfg)
	require.NoError(t, err)
	defer closeFn()

	txs, err := a.Transactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, decimal.RequireFromString("3000").Equal(txs[0].Amount))

	p, err := a.Plans.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "premium", p.Name)
}

func TestOpen_Memory(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	a, closeFn, err := app.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, closeFn())

	txs, err := a.Transactions.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestOpen_BadCatalog(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CATALOG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := config.Load()
	require.NoError(t, err)

	_, _, err = app.Open(cfg)
	assert.Error(t, err)
}

func TestApp_OverviewFollowsPlan(t *testing.T) {
	ctx := context.Background()
	a := app.New(storage.NewMemory(), catalog.Default(), "BRL")
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := a.Investments.Add(ctx, investment.Params{
		Name:         "Tesouro Selic",
		Type:         "bonds",
		Amount:       decimal.NewFromInt(1000),
		CurrentValue: decimal.NewFromInt(1100),
		PurchaseDate: now,
	})
	require.NoError(t, err)

	_, err = a.Goals.Add(ctx, goal.Params{
		Name:          "Reserva",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(2500),
		Deadline:      now.AddDate(1, 0, 0),
		Category:      "Emergência",
		Priority:      goal.PriorityHigh,
	})
	require.NoError(t, err)

	month := metrics.MonthOf(now)

	ov, err := a.Overview(ctx, month, metrics.KindAll, now)
	require.NoError(t, err)
	assert.Equal(t, "basic", ov.Plan.Name)
	assert.False(t, ov.ShowInvestments)
	assert.False(t, ov.ShowGoals)
	assert.True(t, ov.Investments.Invested.IsZero())
	assert.Empty(t, ov.Goals)

	_, err = a.Plans.Switch(ctx, "premium")
	require.NoError(t, err)

	ov, err = a.Overview(ctx, month, metrics.KindAll, now)
	require.NoError(t, err)
	assert.True(t, ov.ShowInvestments)
	assert.True(t, ov.ShowGoals)
	assert.True(t, decimal.NewFromInt(100).Equal(ov.Investments.Gain))
	require.Len(t, ov.Goals, 1)
	assert.True(t, decimal.NewFromInt(25).Equal(ov.Goals[0].Progress))
}
