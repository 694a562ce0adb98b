package reactive

// DebugMode turns framework-bug reports into panics.
// When true, every LogOrPanic call panics at the bug site.
// When false (production), the bug is logged and the engine keeps running
// in a degraded state: a missed update instead of a dead page.
//
//	func main() {
//	    reactive.DebugMode = os.Getenv("CELLS_DEBUG") == "1"
//	}
var DebugMode = false

// DefaultDependentLintThreshold is the subscriber count past which a signal
// is reported as a performance smell.
const DefaultDependentLintThreshold = 20

// DebugConfig controls development diagnostics.
type DebugConfig struct {
	// PerformanceLints logs a warning when a signal's dependent set grows
	// past DependentLintThreshold. Always on when DebugMode is set.
	PerformanceLints bool

	// DependentLintThreshold is the dependent count that triggers the lint.
	// Zero means DefaultDependentLintThreshold.
	DependentLintThreshold int

	// LogTicks logs queue sizes at the end of every tick.
	LogTicks bool
}

// DefaultDebugConfig returns a DebugConfig with all diagnostics disabled.
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{
		DependentLintThreshold: DefaultDependentLintThreshold,
	}
}

// Debug is the global debug configuration.
var Debug = DefaultDebugConfig()

func lintEnabled() bool {
	return DebugMode || Debug.PerformanceLints
}

func lintThreshold() int {
	if Debug.DependentLintThreshold <= 0 {
		return DefaultDependentLintThreshold
	}
	return Debug.DependentLintThreshold
}
