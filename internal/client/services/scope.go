package services

import (
	"context"
	"sync"
)

// Scope ties work to the lifetime of a view.
//
// Context is cancelled by Close. State changes made through Apply are
// serialized and dropped once the scope is closed; Read gives a consistent
// view of that state.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

func (s *Scope) Context() context.Context { return s.ctx }

// Close cancels in-flight requests. It is safe to call more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

func (s *Scope) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Apply runs fn unless the scope is closed and reports whether it ran.
func (s *Scope) Apply(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	fn()
	return true
}

// Read runs fn under the scope's read lock, closed or not.
func (s *Scope) Read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}
