package reactive

// Guard splits a render on whether check accepts the value of sig. The
// calling hook re-runs only when the answer flips. Inside the accepted
// branch, get returns the checked value and subscribes whichever hook calls
// it, so changes that keep the answer the same only reach inner hooks.
//
//	get, ok := reactive.Guard(rc, result, func(r Result) (int, bool) {
//		return r.Value, r.Err == nil
//	})
func Guard[T, V any](rc *RenderCtx, sig *Signal[T], check func(T) (V, bool)) (get func() V, ok bool) {
	ok = Watch(rc, func() bool {
		_, ok := check(sig.Get())
		return ok
	})
	if !ok {
		return nil, false
	}
	logger := rc.Engine().Logger()
	return func() V {
		v, ok := check(sig.Get())
		if !ok {
			LogOrPanic(logger, "R006")
		}
		return v
	}, true
}

// GuardSome is Guard for pointer signals: the branch renders while sig
// holds a non-nil pointer and get dereferences it.
func GuardSome[T any](rc *RenderCtx, sig *Signal[*T]) (get func() T, ok bool) {
	return Guard(rc, sig, func(p *T) (T, bool) {
		if p == nil {
			var zero T
			return zero, false
		}
		return *p, true
	})
}
