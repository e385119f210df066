package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/goal/store"
	"github.com/MrJamesThe3rd/carteira/internal/slot"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := store.New(kv)

	want := &goal.Goal{
		ID:            uuid.NewString(),
		Name:          "Reserva",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.RequireFromString("2500.75"),
		Deadline:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Category:      "Emergência",
		Priority:      goal.PriorityHigh,
	}

	require.NoError(t, s.SaveGoals(ctx, []*goal.Goal{want}))

	raw, ok, err := kv.Get(ctx, slot.Goals)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"targetAmount":"10000"`)
	assert.Contains(t, raw, `"deadline":"2025-12-31T00:00:00Z"`)

	got, err := s.LoadGoals(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, want.ID, got[0].ID)
	assert.Equal(t, want.Name, got[0].Name)
	assert.True(t, want.TargetAmount.Equal(got[0].TargetAmount))
	assert.True(t, want.CurrentAmount.Equal(got[0].CurrentAmount))
	assert.True(t, want.Deadline.Equal(got[0].Deadline))
	assert.Equal(t, want.Category, got[0].Category)
	assert.Equal(t, want.Priority, got[0].Priority)
}

func TestStore_AbsentSlotIsEmpty(t *testing.T) {
	got, err := store.New(storage.NewMemory()).LoadGoals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
