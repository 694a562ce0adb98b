package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryReactive  Category = "reactive"
	CategoryDOM       Category = "dom"
	CategoryScheduler Category = "scheduler"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// CellsError is a structured error with a registered code and an optional hint.
type CellsError struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CellsError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CellsError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a CellsError with the same code.
func (e *CellsError) Is(target error) bool {
	t, ok := target.(*CellsError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CellsError) WithSuggestion(s string) *CellsError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *CellsError) WithDetail(d string) *CellsError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *CellsError) Wrap(err error) *CellsError {
	e.Wrapped = err
	return e
}

// New creates a CellsError from a registered error code.
func New(code string) *CellsError {
	template, ok := GetTemplate(code)
	if !ok {
		return &CellsError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CellsError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new CellsError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *CellsError {
	return &CellsError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a CellsError.
func FromError(err error, code string) *CellsError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CellsError); ok {
		return ce
	}
	return New(code).Wrap(err)
}
