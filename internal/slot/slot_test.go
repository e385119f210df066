package slot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/slot"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestCollection_AbsentIsEmpty(t *testing.T) {
	c := slot.NewCollection[record](storage.NewMemory(), slot.Goals)

	items, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCollection_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := slot.NewCollection[record](storage.NewMemory(), slot.Goals)

	want := []record{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}
	require.NoError(t, c.Save(ctx, want))

	got, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCollection_MalformedResetsSlot(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, slot.Transactions, `{not json`))

	c := slot.NewCollection[record](kv, slot.Transactions)

	items, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	raw, ok, err := kv.Get(ctx, slot.Transactions)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestCollection_SkipsUndecodableElements(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	raw := `[{"id":"1700000000000","name":"a"},{"id":42,"name":"b"},{"id":"1700000000001","name":"c"}]`
	require.NoError(t, kv.Set(ctx, slot.Goals, raw))

	items, err := slot.NewCollection[record](kv, slot.Goals).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "1700000000000", Name: "a"}, {ID: "1700000000001", Name: "c"}}, items)

	stored, _, err := kv.Get(ctx, slot.Goals)
	require.NoError(t, err)
	assert.Equal(t, raw, stored)
}

func TestCollection_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	require.NoError(t, slot.NewCollection[record](kv, slot.Investments).Save(ctx, nil))

	raw, _, err := kv.Get(ctx, slot.Investments)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestValue(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	v := slot.NewValue[string](kv, slot.Plan)

	got, err := v.Load(ctx, "basic")
	require.NoError(t, err)
	assert.Equal(t, "basic", got)

	require.NoError(t, v.Save(ctx, "premium"))

	got, err = v.Load(ctx, "basic")
	require.NoError(t, err)
	assert.Equal(t, "premium", got)

	require.NoError(t, kv.Set(ctx, slot.Plan, "premium"))

	got, err = v.Load(ctx, "basic")
	require.NoError(t, err)
	assert.Equal(t, "basic", got)
}
