// Package xerrors centralizes the fatal-diagnostic helper shared by
// bitset, text, and deque. Per spec.md §7, domain errors, bounds errors,
// and invalid-argument errors on mutating operations are all fatal: there
// are no recoverable error returns on those paths. We still want a
// diagnostic a test can recover and inspect, so the panic value is a
// github.com/pkg/errors error carrying a stack trace rather than a bare
// string.
package xerrors

import "github.com/pkg/errors"

// Fail panics with a stack-carrying error built from format and args. The
// fatal preconditions of bitset, deque and text go through it, matching
// spec.md §7's "fail fast with a clear message" policy; internal/rope's
// ElementAt and text's sizeOf panic with a plain string instead.
func Fail(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}
