package state

import (
	"context"
	"sync"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/gateway"
)

// Reconciliation names how local state follows a mutation.
type Reconciliation int

// ReconcileFromReturnValue merges the gateway's return value into the local
// list. The collection is never re-fetched after a mutation.
const ReconcileFromReturnValue Reconciliation = iota

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one merge applied to a collection. Record is nil for
// deletions.
type Change struct {
	Resource federation.Kind
	Op       Op
	Key      any
	Record   any
}

type Observer func(Change)

// Gateway is the subset of gateway.Resource a collection depends on.
type Gateway[T any, K comparable] interface {
	GetAllWithSource(ctx context.Context) ([]T, gateway.Source)
	Create(ctx context.Context, item T) T
	Update(ctx context.Context, item T) T
	Delete(ctx context.Context, key K) bool
}

// Collection owns the in-memory list of one resource type. Gateway calls are
// made without holding the lock, so merges land in the order calls settle.
type Collection[T federation.Record[T, K], K comparable] struct {
	kind federation.Kind
	gw   Gateway[T, K]

	mu        sync.RWMutex
	items     []T
	loaded    bool
	observers []Observer
	loadOnce  sync.Once
	source    gateway.Source
}

func NewCollection[T federation.Record[T, K], K comparable](kind federation.Kind, gw Gateway[T, K]) *Collection[T, K] {
	return &Collection[T, K]{kind: kind, gw: gw}
}

func (c *Collection[T, K]) Kind() federation.Kind { return c.kind }

func (c *Collection[T, K]) Reconciliation() Reconciliation { return ReconcileFromReturnValue }

// Load populates the collection from the gateway. Only the first call fetches.
func (c *Collection[T, K]) Load(ctx context.Context) gateway.Source {
	c.loadOnce.Do(func() {
		items, src := c.gw.GetAllWithSource(ctx)
		c.mu.Lock()
		c.items = items
		c.loaded = true
		c.source = src
		c.mu.Unlock()
	})
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

func (c *Collection[T, K]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// All returns a copy of the current list, newest first.
func (c *Collection[T, K]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T, K]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T, K]) Find(key K) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.Key() == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T, K]) Observe(o Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, o)
	c.mu.Unlock()
}

// Create stores the gateway's returned record at the front of the list.
func (c *Collection[T, K]) Create(ctx context.Context, item T) T {
	created := c.gw.Create(ctx, item)

	c.mu.Lock()
	c.items = append([]T{created}, c.items...)
	obs := c.observers
	c.mu.Unlock()

	c.notify(obs, Change{Resource: c.kind, Op: OpCreate, Key: created.Key(), Record: created})
	return created
}

// Update replaces the entry with the same key, keeping its position. An entry
// that is no longer present is not re-added.
func (c *Collection[T, K]) Update(ctx context.Context, item T) T {
	updated := c.gw.Update(ctx, item)

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Key() == item.Key() {
			c.items[i] = updated
			break
		}
	}
	obs := c.observers
	c.mu.Unlock()

	c.notify(obs, Change{Resource: c.kind, Op: OpUpdate, Key: updated.Key(), Record: updated})
	return updated
}

// Delete removes the entry only when the gateway reports success.
func (c *Collection[T, K]) Delete(ctx context.Context, key K) bool {
	if !c.gw.Delete(ctx, key) {
		return false
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Key() == key {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			break
		}
	}
	obs := c.observers
	c.mu.Unlock()

	c.notify(obs, Change{Resource: c.kind, Op: OpDelete, Key: key})
	return true
}

func (c *Collection[T, K]) notify(obs []Observer, ch Change) {
	for _, o := range obs {
		o(ch)
	}
}
