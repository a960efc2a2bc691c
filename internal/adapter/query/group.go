// Package query collapses concurrent fetches for the same key into a single
// call.
package query

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Group is a keyed in-flight deduplicator
type Group[T any] struct {
	sf singleflight.Group
}

func NewGroup[T any]() *Group[T] {
	return &Group[T]{}
}

// Result is what every caller sharing a call receives
type Result[T any] struct {
	Err    error
	Value  T
	Shared bool
}

// Do runs fn once per key at a time, callers arriving while it runs wait for
// the same result. fn is not tied to any caller's ctx, ctx only bounds how long
// this caller waits.
func (g *Group[T]) Do(ctx context.Context, key string, fn func() (T, error)) Result[T] {
	ch := g.sf.DoChan(key, func() (any, error) {
		return fn()
	})

	select {
	case res := <-ch:
		var value T
		if res.Val != nil {
			value = res.Val.(T)
		}
		return Result[T]{Value: value, Err: res.Err, Shared: res.Shared}
	case <-ctx.Done():
		var zero T
		return Result[T]{Value: zero, Err: ctx.Err()}
	}
}

// Forget makes the next Do for key start a fresh call
func (g *Group[T]) Forget(key string) {
	g.sf.Forget(key)
}
