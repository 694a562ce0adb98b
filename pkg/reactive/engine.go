package reactive

import (
	"container/heap"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var engineIDCounter atomic.Uint64

// Engine owns a hook store and propagates signal writes to it.
//
// One engine backs one mounted root. Exclusive access is taken with a
// non-blocking borrow: a second tick arriving while one is running is a
// framework bug, never something to wait for.
type Engine struct {
	id       uint64
	store    *Store
	logger   *slog.Logger
	observer Observer

	borrow sync.Mutex
	closed atomic.Bool

	mu     sync.Mutex
	dirty  []HookKey
	queued map[HookKey]struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver attaches an observer for tick metrics.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// NewEngine creates an engine with an empty store.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		id:     engineIDCounter.Add(1),
		logger: slog.Default(),
		queued: make(map[HookKey]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("engine", e.id)
	e.store = NewStore(e.logger)
	return e
}

// ID returns the engine's process-unique id.
func (e *Engine) ID() uint64 { return e.id }

// Store returns the engine's hook arena. Only use it inside a tick.
func (e *Engine) Store() *Store { return e.store }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Observer returns the attached observer, or nil.
func (e *Engine) Observer() Observer { return e.observer }

// Pending returns the number of hook keys waiting for the next propagation.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.dirty)
}

// Close retires the engine. Later ticks are refused and signals it fed
// rebind to the next engine that reads them.
func (e *Engine) Close() {
	e.closed.Store(true)
	e.mu.Lock()
	e.dirty = nil
	clear(e.queued)
	e.mu.Unlock()
}

// Closed reports whether Close was called.
func (e *Engine) Closed() bool { return e.closed.Load() }

// Run executes one tick: fn runs with no hook current, then every hook
// made dirty by fn is updated once.
//
// Run returns false without calling fn if the process has panicked, if the
// engine is closed or if another tick holds the engine. A panic inside the
// tick is recovered, sets the global panic flag and makes Run return false.
func (e *Engine) Run(fn func()) (ok bool) {
	if HasPanicked() || e.closed.Load() {
		return false
	}
	if !e.borrow.TryLock() {
		LogOrPanic(e.logger, "R001")
		return false
	}
	defer e.borrow.Unlock()

	var end func(TickStats)
	if e.observer != nil {
		end = e.observer.BeginTick()
	}
	var stats TickStats
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			stats.Panicked = true
			ok = false
			markPanicked(e.logger, r)
		}
		stats.Duration = time.Since(start)
		if end != nil {
			end(stats)
		}
		if Debug.LogTicks {
			e.logger.Debug("tick",
				"dirty", stats.Dirty,
				"updated", stats.Updated,
				"missed", stats.Missed,
				"removed", stats.Removed,
				"duration", stats.Duration,
			)
		}
	}()

	if fn != nil {
		Untracked(fn)
	}
	e.propagate(&stats)
	return true
}

// Exclusive runs fn while holding the engine borrow, without propagation
// and without checking the panic flag. It is used for teardown.
func (e *Engine) Exclusive(fn func()) bool {
	if !e.borrow.TryLock() {
		LogOrPanic(e.logger, "R001")
		return false
	}
	defer e.borrow.Unlock()
	Untracked(fn)
	return true
}

// Track runs fn with key as the current hook, so every signal fn reads
// subscribes key.
func (e *Engine) Track(key HookKey, fn func()) {
	withFrame(frame{engine: e, key: key}, fn)
}

func (e *Engine) markDirty(keys []HookKey) {
	if e.closed.Load() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, k := range keys {
		if _, ok := e.queued[k]; ok {
			continue
		}
		e.queued[k] = struct{}{}
		e.dirty = append(e.dirty, k)
	}
}

// propagate drains the dirty queue once. Keys dirtied while it runs are
// left for the next tick.
func (e *Engine) propagate(stats *TickStats) {
	e.mu.Lock()
	pending := e.dirty
	e.dirty = nil
	clear(e.queued)
	e.mu.Unlock()

	stats.Dirty = len(pending)
	if len(pending) == 0 {
		return
	}

	q := &runQueue{queued: make(map[HookKey]struct{}, len(pending))}
	for _, k := range pending {
		if !q.push(e.store, k) {
			stats.Missed++
		}
	}

	for q.Len() > 0 {
		k := heap.Pop(q).(queuedHook).key
		delete(q.queued, k)

		res, ok := e.store.Update(e, k)
		if !ok {
			stats.Missed++
			continue
		}
		stats.Updated++

		switch res.kind {
		case resultRunHook:
			if !q.push(e.store, res.run) {
				stats.Missed++
			}
		case resultDropHooks:
			for _, d := range res.drop {
				stats.Removed += e.store.Remove(d)
			}
		}
	}
}

type queuedHook struct {
	key   HookKey
	order uint64
}

// runQueue orders hook keys by creation sequence, outer hooks first.
type runQueue struct {
	items  []queuedHook
	queued map[HookKey]struct{}
}

func (q *runQueue) push(s *Store, k HookKey) bool {
	order, ok := s.Order(k)
	if !ok {
		return false
	}
	if _, dup := q.queued[k]; dup {
		return true
	}
	q.queued[k] = struct{}{}
	heap.Push(q, queuedHook{key: k, order: order})
	return true
}

func (q *runQueue) Len() int           { return len(q.items) }
func (q *runQueue) Less(i, j int) bool { return q.items[i].order < q.items[j].order }
func (q *runQueue) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *runQueue) Push(x any)         { q.items = append(q.items, x.(queuedHook)) }
func (q *runQueue) Pop() any {
	old := q.items
	n := len(old)
	x := old[n-1]
	q.items = old[:n-1]
	return x
}
