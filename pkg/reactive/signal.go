package reactive

import (
	"log/slog"
	"sync"
)

// Signal is a reactive value cell.
//
// Reading a signal while a hook is rendering subscribes that hook. Writing it
// outside any hook moves every subscriber into the engine's dirty queue and
// clears the subscriber set: subscribers re-subscribe when they next render.
//
//	count := reactive.NewSignal(0)
//	count.Get()                              // tracked read
//	count.Update(func(n int) int { return n + 1 })
type Signal[T any] struct {
	mu     sync.Mutex
	value  T
	deps   []HookKey
	engine *Engine
	linted bool
}

// NewSignal creates a signal holding v.
func NewSignal[T any](v T) *Signal[T] {
	return &Signal[T]{value: v}
}

// Get returns the value and subscribes the current hook, if any.
// Repeated reads by the same hook register one dependency.
func (s *Signal[T]) Get() T {
	f := currentFrame()
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.active() {
		s.subscribeLocked(f)
	}
	return s.value
}

// Peek returns the value without subscribing anything.
func (s *Signal[T]) Peek() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value. Every write counts as a change.
func (s *Signal[T]) Set(v T) {
	s.write(func(cur *T) { *cur = v })
}

// Update replaces the value with fn(old).
func (s *Signal[T]) Update(fn func(T) T) {
	s.write(func(cur *T) { *cur = fn(*cur) })
}

// Mut lets fn modify the value in place.
func (s *Signal[T]) Mut(fn func(*T)) {
	s.write(fn)
}

// Dependents returns the number of hooks currently subscribed.
func (s *Signal[T]) Dependents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deps)
}

func (s *Signal[T]) write(fn func(*T)) {
	f := currentFrame()

	// fn runs unlocked so it may read other signals.
	s.mu.Lock()
	v := s.value
	s.mu.Unlock()
	fn(&v)

	var (
		deps []HookKey
		e    *Engine
	)
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.value = v
		if f.active() {
			// Read-modify-write inside a hook keeps the hook subscribed.
			s.subscribeLocked(f)
			return
		}
		deps, e = s.deps, s.engine
		s.deps = nil
		s.linted = false
	}()

	if e != nil && len(deps) > 0 {
		e.markDirty(deps)
	}
}

func (s *Signal[T]) subscribeLocked(f frame) {
	switch {
	case s.engine == f.engine:
	case s.engine == nil || s.engine.Closed() || len(s.deps) == 0:
		// Nothing live depends on the old binding.
		s.engine = f.engine
		s.deps = s.deps[:0]
		s.linted = false
	default:
		LogOrPanic(f.engine.logger, "R004", "hook", f.key.String())
		return
	}

	for _, k := range s.deps {
		if k == f.key {
			return
		}
	}
	s.deps = append(s.deps, f.key)

	if !s.linted && lintEnabled() && len(s.deps) > lintThreshold() {
		s.linted = true
		f.engine.logger.Warn("signal has an unusually large number of dependents",
			slog.Int("dependents", len(s.deps)),
			slog.Int("threshold", lintThreshold()),
		)
	}
}
