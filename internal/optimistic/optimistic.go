// Package optimistic implements tentative state with commit/rollback on an
// async result: apply the hoped-for value immediately, run the operation,
// and restore the prior value if it fails. Toggle-style UI state (likes,
// bookmarks, notification read flags) shares this one wrapper instead of
// hand-rolling the pattern per feature.
package optimistic

import (
	"context"
	"sync"
)

// Value holds a T whose changes can be applied tentatively.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	prior   T
	pending bool
}

// New creates a Value with a committed initial state.
func New[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current (possibly tentative) value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set commits a value directly, discarding any pending tentative state.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = val
	v.pending = false
}

// Do applies tentative, runs op, and commits on success. On failure the
// prior committed value is restored and the operation's error returned, so
// the caller's view reverts to its pre-click state.
func (v *Value[T]) Do(ctx context.Context, tentative T, op func(context.Context) error) error {
	v.mu.Lock()
	if !v.pending {
		v.prior = v.current
	}
	v.current = tentative
	v.pending = true
	v.mu.Unlock()

	err := op(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.current = v.prior
	}
	v.pending = false
	return err
}
