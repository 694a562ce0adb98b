package reactive

import (
	"fmt"
	"log/slog"
)

// HookKey identifies a hook slot in a Store. The zero key is never valid.
type HookKey struct {
	index uint32
	gen   uint32
}

// IsZero reports whether k is the zero key.
func (k HookKey) IsZero() bool {
	return k.gen == 0
}

func (k HookKey) String() string {
	if k.IsZero() {
		return "hook(none)"
	}
	return fmt.Sprintf("hook(%d@%d)", k.index, k.gen)
}

type slotState uint8

const (
	slotFree slotState = iota
	slotReserved
	slotInstalled
	slotRunning
)

type slot struct {
	gen   uint32
	state slotState
	order uint64
	hook  Hook
}

// Store is the arena that owns every hook of one engine.
//
// Keys are reserved before the hook body exists so a hook can know its own
// key while it is being constructed. Store is not safe for concurrent use;
// the owning Engine serializes access.
type Store struct {
	slots  []slot
	free   []uint32
	seq    uint64
	live   int
	logger *slog.Logger
}

// NewStore creates an empty store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger}
}

// Reserve allocates a slot for a hook that does not exist yet.
func (s *Store) Reserve() HookKey {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}

	s.seq++
	sl := &s.slots[idx]
	sl.gen++
	if sl.gen == 0 {
		sl.gen = 1
	}
	sl.state = slotReserved
	sl.order = s.seq
	sl.hook = nil
	s.live++
	return HookKey{index: idx, gen: sl.gen}
}

// Install fills a reserved slot. Installing into a missing key is a bug.
func (s *Store) Install(key HookKey, h Hook) {
	sl := s.lookup(key)
	if sl == nil || sl.state != slotReserved {
		LogOrPanic(s.logger, "R003", "key", key.String())
		return
	}
	sl.hook = h
	sl.state = slotInstalled
}

// Update runs the hook stored under key. It returns false without doing
// anything if the key has been removed: the hook may have been unmounted
// after it was queued.
func (s *Store) Update(e *Engine, key HookKey) (UpdateResult, bool) {
	sl := s.lookup(key)
	if sl == nil {
		return Nothing(), false
	}
	switch sl.state {
	case slotReserved:
		LogOrPanic(s.logger, "R002", "key", key.String())
		return Nothing(), false
	case slotRunning:
		LogOrPanic(s.logger, "R005", "key", key.String())
		return Nothing(), false
	}

	h := sl.hook
	sl.state = slotRunning
	res := h.Update(e, key)

	// The slot slice may have grown while the hook ran.
	if sl = s.lookup(key); sl != nil && sl.state == slotRunning {
		sl.state = slotInstalled
	}
	return res, true
}

// Remove drops the hook under key and, recursively, every hook it reports
// owning. Missing keys are ignored. It returns the number of hooks removed.
func (s *Store) Remove(key HookKey) int {
	removed := 0
	stack := []HookKey{key}
	for len(stack) > 0 {
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sl := s.lookup(k)
		if sl == nil {
			continue
		}
		h := sl.hook
		sl.hook = nil
		sl.state = slotFree
		s.free = append(s.free, k.index)
		s.live--
		removed++

		if h != nil {
			stack = append(stack, h.Teardown()...)
		}
	}
	return removed
}

// Contains reports whether key refers to a reserved or installed hook.
func (s *Store) Contains(key HookKey) bool {
	return s.lookup(key) != nil
}

// Order returns the creation sequence number of key.
func (s *Store) Order(key HookKey) (uint64, bool) {
	sl := s.lookup(key)
	if sl == nil {
		return 0, false
	}
	return sl.order, true
}

// Len returns the number of live slots.
func (s *Store) Len() int {
	return s.live
}

func (s *Store) lookup(key HookKey) *slot {
	if key.IsZero() || int(key.index) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[key.index]
	if sl.gen != key.gen || sl.state == slotFree {
		return nil
	}
	return sl
}
