package reactive

// Watch derives a value from signals and returns it. The calling hook only
// re-renders when the derived value changes, not whenever a signal behind it
// is written.
//
//	even := reactive.Watch(rc, func() bool { return count.Get()%2 == 0 })
func Watch[T comparable](rc *RenderCtx, fn func() T) T {
	e := rc.Engine()
	key := e.Store().Reserve()

	var v T
	e.Track(key, func() { v = fn() })

	e.Store().Install(key, &watchHook[T]{fn: fn, last: v, parent: rc.Parent()})
	rc.AddChild(key)
	return v
}

type watchHook[T comparable] struct {
	fn     func() T
	last   T
	parent HookKey
}

func (w *watchHook[T]) Update(e *Engine, self HookKey) UpdateResult {
	var v T
	e.Track(self, func() { v = w.fn() })
	if v == w.last {
		return Nothing()
	}
	w.last = v
	return RunHook(w.parent)
}

func (w *watchHook[T]) Teardown() []HookKey { return nil }
