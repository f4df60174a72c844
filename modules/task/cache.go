package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/Parasuram76/Task-Management-System/domain/task"
)

// Store is the part of a storage.Storage the list cache needs. The cache
// plugin's Redis storage satisfies it.
type Store interface {
	GetWithContext(ctx context.Context, key string) ([]byte, error)
	SetWithContext(ctx context.Context, key string, val []byte, exp time.Duration) error
	DeleteWithContext(ctx context.Context, key string) error
}

// DefaultCachePrefix namespaces the per-owner list keys.
const DefaultCachePrefix = "tasks:"

// ListCache caches each owner's task list as JSON under prefix+ownerID.
type ListCache struct {
	store  Store
	prefix string
	ttl    time.Duration
}

// NewListCache creates a ListCache over store.
func NewListCache(store Store, prefix string, ttl time.Duration) *ListCache {
	return &ListCache{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *ListCache) key(ownerID string) string {
	return c.prefix + ownerID
}

// Get returns the cached list and whether it was found.
func (c *ListCache) Get(ctx context.Context, ownerID string) ([]domain.Task, bool, error) {
	data, err := c.store.GetWithContext(ctx, c.key(ownerID))
	if err != nil {
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}
	// nil or empty means key not found (cache miss)
	if len(data) == 0 {
		return nil, false, nil
	}

	tasks := []domain.Task{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return tasks, true, nil
}

// Set stores the owner's list with the configured TTL.
func (c *ListCache) Set(ctx context.Context, ownerID string, tasks []domain.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.store.SetWithContext(ctx, c.key(ownerID), data, c.ttl); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// Invalidate drops the owner's cached list.
func (c *ListCache) Invalidate(ctx context.Context, ownerID string) error {
	if err := c.store.DeleteWithContext(ctx, c.key(ownerID)); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// Ping reads a key that never exists to check connectivity.
func (c *ListCache) Ping(ctx context.Context) error {
	_, err := c.store.GetWithContext(ctx, c.prefix+"__health_check__")
	return err
}
