// Package errors provides structured, coded errors for vnode.
//
// Every failure the engine or its tooling reports is an *Error carrying a
// code from the registry, a category, a short message and optional detail,
// suggestion, source location and wrapped cause:
//
//	err := errors.New(errors.CodeDuplicateKey).
//	    WithDetail(`key "a" appears twice under <ul>`).
//	    WithSuggestion("Give every sibling a distinct key")
//
// Two *Error values with the same code match under errors.Is, so callers
// can test against sentinels (errors.Is(err, render.ErrDuplicateKey))
// while the concrete error keeps its detail and cause.
//
// # Error Categories
//
//   - render: reconciliation precondition violations
//   - host: failures surfaced by the host tree adapter
//   - config: vnode.json problems
//   - scene: scene file problems
//   - snapshot: snapshot store failures
//   - cli: command-line failures not raised by the packages above
//
// # Formatting
//
// Format renders an error for the terminal, FormatCompact on one line and
// FormatJSON as an object for machine consumers. SetColor turns the
// terminal colors off for pipes and --color=never. Fprint picks between
// Format and FormatJSON and wraps uncoded errors with a fallback code.
package errors
