// Package errors provides structured, coded errors for cells.
//
// Every failure the engine reports through its log-or-panic path carries a
// registered code (e.g. "R001") that maps to a category, a short message and
// a longer explanation. The CLI uses the same errors for configuration and
// startup failures.
//
// # Error Categories
//
//   - reactive: framework bugs detected inside the engine (borrow conflicts,
//     uninstalled hooks, signals shared across engines)
//   - dom: impossible DOM operations
//   - scheduler: host loop failures
//   - config: configuration file and flag problems
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("R001").
//	    WithDetail("root counter").
//	    WithSuggestion("Do not call Deferred.Update from inside an event handler")
//
//	fmt.Println(err.Format())
package errors
