// Package slot encodes typed collections into named storage slots.
package slot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/carteira/internal/storage"
)

// Slot names. They match the keys the data has always been stored under.
const (
	Transactions  = "finance-transactions"
	Investments   = "finance-investments"
	Goals         = "finance-goals"
	Plan          = "finance-plan"
	CategoryRules = "finance-category-rules"
)

// Collection reads and writes an ordered list of T as a JSON array.
type Collection[T any] struct {
	kv  storage.Storage
	key string
}

func NewCollection[T any](kv storage.Storage, key string) *Collection[T] {
	return &Collection[T]{kv: kv, key: key}
}

// Load returns the stored list. An absent slot is an empty list. A slot that
// is not a JSON array is reset to an empty list and reported as empty.
// Elements that do not decode are dropped and the rest are returned.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.key, err)
	}

	if !ok || raw == "" {
		return []T{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		slog.Warn("resetting malformed slot", "slot", c.key, "error", err)

		if err := c.kv.Set(ctx, c.key, "[]"); err != nil {
			return nil, fmt.Errorf("resetting %s: %w", c.key, err)
		}

		return []T{}, nil
	}

	items := make([]T, 0, len(elems))

	for i, elem := range elems {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			slog.Warn("skipping malformed element", "slot", c.key, "index", i, "error", err)
			continue
		}

		items = append(items, item)
	}

	return items, nil
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}

	if err := c.kv.Set(ctx, c.key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", c.key, err)
	}

	return nil
}

// Value reads and writes a single JSON value.
type Value[T any] struct {
	kv  storage.Storage
	key string
}

func NewValue[T any](kv storage.Storage, key string) *Value[T] {
	return &Value[T]{kv: kv, key: key}
}

// Load returns the stored value, or def when the slot is absent or malformed.
func (v *Value[T]) Load(ctx context.Context, def T) (T, error) {
	raw, ok, err := v.kv.Get(ctx, v.key)
	if err != nil {
		return def, fmt.Errorf("loading %s: %w", v.key, err)
	}

	if !ok || raw == "" {
		return def, nil
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Warn("ignoring malformed slot", "slot", v.key, "error", err)
		return def, nil
	}

	return out, nil
}

func (v *Value[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", v.key, err)
	}

	if err := v.kv.Set(ctx, v.key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", v.key, err)
	}

	return nil
}
