package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/store"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
)

// collection persists a whole JSON array under one store key.
// Writes always replace the full value.
type collection[T any] struct {
	store store.Store
	key   string
	mu    sync.Mutex
}

func newCollection[T any](s store.Store, key string) *collection[T] {
	return &collection[T]{store: s, key: key}
}

// load reads the current array. A missing key or undecodable value yields an
// empty collection; only store failures are returned.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, store.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		utils.LogWarn("Stored collection is malformed, treating as empty", map[string]interface{}{
			"key":   c.key,
			"error": err.Error(),
		})
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

func (c *collection[T]) Load(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

func (c *collection[T]) SaveAll(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, items)
}

// Update re-reads the collection, applies fn and persists the result when fn
// reports a change. Concurrent updates in this process are serialized.
func (c *collection[T]) Update(ctx context.Context, fn func([]T) ([]T, bool, error)) ([]T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.load(ctx)
	if err != nil {
		return nil, false, err
	}

	next, changed, err := fn(current)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return current, false, nil
	}

	if err := c.save(ctx, next); err != nil {
		return nil, false, err
	}
	return next, true, nil
}
