// SPDX-License-Identifier: Apache-2.0

// Package cache provides a keyed in-flight call group: concurrent
// callers asking for the same key share one outstanding execution and
// all receive its result. Used to collapse duplicate auth-token claims
// and default-room fetches.
package cache

import (
	"context"
	"sync"
)

type inflightCall struct {
	done  chan struct{}
	value any
	err   error
}

// InflightGroup guarantees at most one outstanding execution per key.
type InflightGroup struct {
	mu    sync.Mutex
	calls map[string]*inflightCall
}

func NewInflightGroup() *InflightGroup {
	return &InflightGroup{calls: make(map[string]*inflightCall)}
}

// Do runs fn for key unless an execution for the same key is already in
// flight, in which case it waits for that execution and returns its
// result. The context cancels the wait, not the shared execution.
func (g *InflightGroup) Do(ctx context.Context, key string, fn func() (any, error)) (any, error) {
	g.mu.Lock()
	if call, ok := g.calls[key]; ok {
		g.mu.Unlock()
		select {
		case <-call.done:
			return call.value, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := &inflightCall{done: make(chan struct{})}
	g.calls[key] = call
	g.mu.Unlock()

	call.value, call.err = fn()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(call.done)

	return call.value, call.err
}

// Forget drops any in-flight record for key so the next Do starts a
// fresh execution. Waiters on the dropped record still get its result.
func (g *InflightGroup) Forget(key string) {
	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
}
