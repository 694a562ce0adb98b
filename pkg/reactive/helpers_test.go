package reactive

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
)

// testHook re-runs fn under tracking on every update and reports children
// on teardown.
type testHook struct {
	fn       func()
	runs     int
	children []HookKey
	torn     bool
	onUpdate func(e *Engine, self HookKey) UpdateResult
}

func (h *testHook) Update(e *Engine, self HookKey) UpdateResult {
	h.runs++
	if h.fn != nil {
		e.Track(self, h.fn)
	}
	if h.onUpdate != nil {
		return h.onUpdate(e, self)
	}
	return Nothing()
}

func (h *testHook) Teardown() []HookKey {
	h.torn = true
	return h.children
}

// newTestHook reserves a key, runs fn once under tracking and installs the hook.
func newTestHook(e *Engine, fn func()) (HookKey, *testHook) {
	key := e.Store().Reserve()
	h := &testHook{fn: fn}
	if fn != nil {
		e.Track(key, fn)
	}
	e.Store().Install(key, h)
	return key, h
}

// resetGlobals restores package globals after a test.
func resetGlobals(t *testing.T) {
	t.Helper()
	debugMode, debug := DebugMode, Debug
	t.Cleanup(func() {
		DebugMode = debugMode
		Debug = debug
		ResetPanicked()
	})
	ResetPanicked()
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newBufferLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

type recordingObserver struct {
	mu       sync.Mutex
	ticks    []TickStats
	rejected []string
}

func (o *recordingObserver) BeginTick() func(TickStats) {
	return func(s TickStats) {
		o.mu.Lock()
		o.ticks = append(o.ticks, s)
		o.mu.Unlock()
	}
}

func (o *recordingObserver) DeferredRejected(reason string) {
	o.mu.Lock()
	o.rejected = append(o.rejected, reason)
	o.mu.Unlock()
}

func (o *recordingObserver) last() TickStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ticks[len(o.ticks)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
