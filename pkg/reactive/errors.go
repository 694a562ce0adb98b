package reactive

import (
	"errors"
	"log/slog"

	cerrors "github.com/vango-dev/cells/internal/errors"
)

// ErrPanicked is the cancellation cause of every task context once any tick
// has panicked.
var ErrPanicked = errors.New("cells: a panic occurred, reactive state is frozen")

// LogOrPanic reports a framework bug identified by a registered error code.
// The error is always logged; it panics only when DebugMode is set.
func LogOrPanic(logger *slog.Logger, code string, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	err := cerrors.New(code)
	logger.Error(err.Error(), append(args, "detail", err.Detail)...)
	if DebugMode {
		panic(err)
	}
}
