package telemetry

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/cells/pkg/reactive"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

type countingHook struct{ runs int }

func (p *countingHook) Update(*reactive.Engine, reactive.HookKey) reactive.UpdateResult {
	p.runs++
	return reactive.Nothing()
}

func (p *countingHook) Teardown() []reactive.HookKey { return nil }

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestCollectorRecordsTicks(t *testing.T) {
	reactive.ResetPanicked()
	t.Cleanup(reactive.ResetPanicked)

	reg := prometheus.NewRegistry()
	c := New(WithRegistry(reg))
	e := reactive.NewEngine(reactive.WithObserver(c), reactive.WithLogger(quiet()))

	sig := reactive.NewSignal(0)
	p := &countingHook{}
	key := e.Store().Reserve()
	e.Store().Install(key, p)
	e.Run(func() {
		e.Track(key, func() { _ = sig.Get() })
	})
	e.Run(func() { sig.Set(1) })

	if got := counterValue(t, c.ticks.WithLabelValues("ok")); got != 2 {
		t.Errorf("ticks_total(ok) = %v, want 2", got)
	}
	if got := counterValue(t, c.updates); got != 1 {
		t.Errorf("hook_updates_total = %v, want 1", got)
	}
	if got := histogramCount(t, c.tickDuration); got != 2 {
		t.Errorf("tick_duration_seconds count = %v, want 2", got)
	}
	if p.runs != 1 {
		t.Errorf("hook runs = %d, want 1", p.runs)
	}
}

func TestCollectorRecordsPanics(t *testing.T) {
	reactive.ResetPanicked()
	t.Cleanup(reactive.ResetPanicked)

	c := New(WithRegistry(prometheus.NewRegistry()))
	remove := c.WatchPanics()
	defer remove()

	e := reactive.NewEngine(reactive.WithObserver(c), reactive.WithLogger(quiet()))
	if e.Run(func() { panic("boom") }) {
		t.Fatal("Run() = true for a panicking tick")
	}

	if got := counterValue(t, c.ticks.WithLabelValues("panic")); got != 1 {
		t.Errorf("ticks_total(panic) = %v, want 1", got)
	}
	if got := counterValue(t, c.panics); got != 1 {
		t.Errorf("panics_total = %v, want 1", got)
	}
}

func TestCollectorDeferredRejected(t *testing.T) {
	c := New(WithRegistry(prometheus.NewRegistry()))
	c.DeferredRejected(reactive.RejectUnmounted)
	c.DeferredRejected(reactive.RejectUnmounted)
	c.DeferredRejected(reactive.RejectBorrowed)

	if got := counterValue(t, c.rejected.WithLabelValues(reactive.RejectUnmounted)); got != 2 {
		t.Errorf("rejected(unmounted) = %v, want 2", got)
	}
	if got := counterValue(t, c.rejected.WithLabelValues(reactive.RejectBorrowed)); got != 1 {
		t.Errorf("rejected(borrowed) = %v, want 1", got)
	}
}

func TestCollectorHandler(t *testing.T) {
	c := New(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
	c.DeferredRejected(reactive.RejectPanicked)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `test_reactive_deferred_rejected_total{reason="panicked"} 1`) {
		t.Errorf("metrics output missing rejected counter:\n%s", body)
	}
}
