package reactive

import "time"

// TickStats summarizes one tick.
type TickStats struct {
	// Dirty is the number of queued hook keys taken at the start of propagation.
	Dirty int
	// Updated is the number of hook updates that ran.
	Updated int
	// Missed counts queued keys whose hooks were already gone.
	Missed int
	// Removed counts hooks torn down during propagation.
	Removed int
	// Duration is the wall time of the tick, including the mutation.
	Duration time.Duration
	// Panicked is set when the tick panicked.
	Panicked bool
}

// Rejection reasons passed to Observer.DeferredRejected.
const (
	RejectUnmounted = "unmounted"
	RejectBorrowed  = "borrowed"
	RejectPanicked  = "panicked"
)

// Observer receives engine events. Implementations must be cheap; they run
// on the tick's goroutine while the engine is borrowed.
type Observer interface {
	// BeginTick is called before a tick mutates anything. The returned
	// function is called once with the tick's stats.
	BeginTick() func(TickStats)

	// DeferredRejected is called when a deferred update could not run.
	DeferredRejected(reason string)
}
