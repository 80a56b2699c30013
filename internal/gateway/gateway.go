// Package gateway wraps the remote resource API. Each operation tries the
// remote call first and, on any failure, resolves to a fixed fallback value,
// so no error ever reaches the caller.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
)

// MaxSyntheticID bounds locally generated ids: they are drawn from
// [1, MaxSyntheticID] and are not guaranteed to be unique.
const MaxSyntheticID = 9999

type IDSource func() int

func RandomID() int { return rand.IntN(MaxSyntheticID) + 1 }

// Absorb returns v when err is nil and the fallback value otherwise.
func Absorb[V any](v V, err error, fallback func() V) V {
	if err != nil {
		return fallback()
	}
	return v
}

type Options struct {
	Metrics *Metrics
	Logger  *slog.Logger
	IDs     IDSource
}

type Resource[T federation.Record[T, K], K comparable] struct {
	client   *Client
	name     string
	path     string
	query    url.Values
	prepare  func(T) T
	fixtures func() []T
	ids      IDSource
	metrics  *Metrics
	log      *slog.Logger
}

func newResource[T federation.Record[T, K], K comparable](c *Client, name, path string, fixtures func() []T, opts Options) *Resource[T, K] {
	r := &Resource[T, K]{
		client:   c,
		name:     name,
		path:     path,
		fixtures: fixtures,
		ids:      opts.IDs,
		metrics:  opts.Metrics,
		log:      opts.Logger,
	}
	if r.ids == nil {
		r.ids = RandomID
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

func (r *Resource[T, K]) Name() string { return r.name }

func (r *Resource[T, K]) fetchAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.doRequest(ctx, http.MethodGet, r.path, r.query, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Resource[T, K]) postOne(ctx context.Context, item T) (T, error) {
	body := item
	if r.prepare != nil {
		body = r.prepare(item)
	}
	var out T
	err := r.client.doRequest(ctx, http.MethodPost, r.path, nil, body, &out)
	return out, err
}

func (r *Resource[T, K]) putOne(ctx context.Context, item T) (T, error) {
	var out T
	err := r.client.doRequest(ctx, http.MethodPut, r.itemPath(item.Key()), nil, item, &out)
	return out, err
}

func (r *Resource[T, K]) deleteOne(ctx context.Context, key K) (bool, error) {
	if err := r.client.doRequest(ctx, http.MethodDelete, r.itemPath(key), nil, nil, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Resource[T, K]) itemPath(key K) string {
	return r.path + "/" + url.PathEscape(fmt.Sprint(key))
}

// record counts the call and logs a fallback.
func (r *Resource[T, K]) record(op string, err error) Source {
	if err == nil {
		r.metrics.observe(r.name, op, SourceRemote)
		return SourceRemote
	}
	r.metrics.observe(r.name, op, SourceFallback)
	r.log.Warn("gateway fallback", "resource", r.name, "op", op, "timeout", r.client.Timeout(), "error", err)
	return SourceFallback
}

// GetAll returns the remote collection, or the fixture collection when the
// remote call fails.
func (r *Resource[T, K]) GetAll(ctx context.Context) []T {
	items, _ := r.GetAllWithSource(ctx)
	return items
}

func (r *Resource[T, K]) GetAllWithSource(ctx context.Context) ([]T, Source) {
	items, err := r.fetchAll(ctx)
	src := r.record("get_all", err)
	return Absorb(items, err, r.fixtures), src
}

// Create returns the server-assigned record, or the input with a synthetic id.
func (r *Resource[T, K]) Create(ctx context.Context, item T) T {
	created, err := r.postOne(ctx, item)
	r.record("create", err)
	return Absorb(created, err, func() T {
		return item.WithNumericID(r.ids())
	})
}

// Update returns the server's version of the record, or the input unchanged.
func (r *Resource[T, K]) Update(ctx context.Context, item T) T {
	updated, err := r.putOne(ctx, item)
	r.record("update", err)
	return Absorb(updated, err, func() T { return item })
}

// Delete reports success even when the remote call failed.
func (r *Resource[T, K]) Delete(ctx context.Context, key K) bool {
	ok, err := r.deleteOne(ctx, key)
	r.record("delete", err)
	return Absorb(ok, err, func() bool { return true })
}
