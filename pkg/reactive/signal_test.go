package reactive

import (
	"strings"
	"testing"
)

func TestSignalGetPeekSet(t *testing.T) {
	s := NewSignal(1)
	if s.Get() != 1 {
		t.Errorf("Get() = %d, want 1", s.Get())
	}
	s.Set(2)
	if s.Peek() != 2 {
		t.Errorf("Peek() = %d, want 2", s.Peek())
	}
	s.Update(func(n int) int { return n * 10 })
	if s.Peek() != 20 {
		t.Errorf("after Update = %d, want 20", s.Peek())
	}

	items := NewSignal([]string{"a"})
	items.Mut(func(v *[]string) { *v = append(*v, "b") })
	if got := strings.Join(items.Peek(), ","); got != "a,b" {
		t.Errorf("after Mut = %q, want a,b", got)
	}
}

func TestSignalUntrackedReadDoesNotSubscribe(t *testing.T) {
	s := NewSignal(0)
	_ = s.Get()
	if s.Dependents() != 0 {
		t.Errorf("Dependents() = %d, want 0", s.Dependents())
	}
}

func TestSignalRepeatedReadsRegisterOnce(t *testing.T) {
	resetGlobals(t)
	e := NewEngine()
	s := NewSignal(0)

	for _, n := range []int{1, 2, 5, 50} {
		s.Set(0)
		newTestHook(e, func() {
			for i := 0; i < n; i++ {
				_ = s.Get()
			}
		})
		if s.Dependents() != 1 {
			t.Errorf("%d reads: Dependents() = %d, want 1", n, s.Dependents())
		}
	}
}

func TestSignalPeekInsideHookDoesNotSubscribe(t *testing.T) {
	resetGlobals(t)
	e := NewEngine()
	s := NewSignal(0)
	newTestHook(e, func() { _ = s.Peek() })
	if s.Dependents() != 0 {
		t.Errorf("Dependents() = %d, want 0", s.Dependents())
	}
}

func TestSignalWriteInsideHookSubscribes(t *testing.T) {
	resetGlobals(t)
	e := NewEngine()
	s := NewSignal(0)

	newTestHook(e, func() { s.Update(func(n int) int { return n + 1 }) })

	if s.Dependents() != 1 {
		t.Errorf("Dependents() = %d, want 1", s.Dependents())
	}
	if e.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0: tracked writes must not queue", e.Pending())
	}
	if s.Peek() != 1 {
		t.Errorf("value = %d, want 1", s.Peek())
	}
}

func TestSignalUntrackedWriteQueuesAndClears(t *testing.T) {
	resetGlobals(t)
	e := NewEngine()
	s := NewSignal(0)
	newTestHook(e, func() { _ = s.Get() })
	newTestHook(e, func() { _ = s.Get() })

	s.Set(1)

	if s.Dependents() != 0 {
		t.Errorf("Dependents() after write = %d, want 0", s.Dependents())
	}
	if e.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", e.Pending())
	}

	// A second write has no subscribers left to queue.
	s.Set(2)
	if e.Pending() != 2 {
		t.Errorf("Pending() after second write = %d, want 2", e.Pending())
	}
}

func TestSignalSubscribersKeepInsertionOrder(t *testing.T) {
	resetGlobals(t)
	e := NewEngine()
	s := NewSignal(0)
	a, _ := newTestHook(e, func() { _ = s.Get() })
	b, _ := newTestHook(e, func() { _ = s.Get() })
	e.Track(a, func() { _ = s.Get() })

	s.mu.Lock()
	deps := append([]HookKey(nil), s.deps...)
	s.mu.Unlock()

	if len(deps) != 2 || deps[0] != a || deps[1] != b {
		t.Errorf("deps = %v, want [%v %v]", deps, a, b)
	}
}

func TestSignalSharedAcrossEnginesIsDropped(t *testing.T) {
	resetGlobals(t)
	logger, buf := newBufferLogger()
	e1 := NewEngine()
	e2 := NewEngine(WithLogger(logger))
	s := NewSignal(0)

	newTestHook(e1, func() { _ = s.Get() })
	newTestHook(e2, func() { _ = s.Get() })

	if s.Dependents() != 1 {
		t.Errorf("Dependents() = %d, want 1", s.Dependents())
	}
	if !strings.Contains(buf.String(), "R004") {
		t.Errorf("expected R004 log, got %q", buf.String())
	}
}

func TestSignalRebindsAfterEngineClose(t *testing.T) {
	resetGlobals(t)
	logger, buf := newBufferLogger()
	e1 := NewEngine()
	e2 := NewEngine(WithLogger(logger))
	s := NewSignal(0)

	newTestHook(e1, func() { _ = s.Get() })
	e1.Close()
	if !e1.Closed() || e1.Run(nil) {
		t.Fatalf("closed engine still accepts ticks")
	}

	_, h := newTestHook(e2, func() { _ = s.Get() })
	if s.Dependents() != 1 {
		t.Errorf("Dependents() = %d, want 1", s.Dependents())
	}
	if strings.Contains(buf.String(), "R004") {
		t.Errorf("unexpected R004 after rebind: %q", buf.String())
	}

	e2.Run(func() { s.Set(1) })
	if h.runs != 1 {
		t.Errorf("hook on the new engine ran %d times, want 1", h.runs)
	}
	if e1.Pending() != 0 {
		t.Errorf("closed engine queued %d keys", e1.Pending())
	}
}

func TestSignalDependentLint(t *testing.T) {
	resetGlobals(t)
	Debug.PerformanceLints = true
	Debug.DependentLintThreshold = 3

	logger, buf := newBufferLogger()
	e := NewEngine(WithLogger(logger))
	s := NewSignal(0)
	for i := 0; i < 5; i++ {
		newTestHook(e, func() { _ = s.Get() })
	}

	out := buf.String()
	if strings.Count(out, "unusually large number of dependents") != 1 {
		t.Errorf("expected exactly one lint warning, got:\n%s", out)
	}
}

func TestSignalNoLintByDefault(t *testing.T) {
	resetGlobals(t)
	logger, buf := newBufferLogger()
	e := NewEngine(WithLogger(logger))
	s := NewSignal(0)
	for i := 0; i < DefaultDependentLintThreshold+5; i++ {
		newTestHook(e, func() { _ = s.Get() })
	}
	if strings.Contains(buf.String(), "dependents") {
		t.Errorf("lint should be off by default, got:\n%s", buf.String())
	}
}
