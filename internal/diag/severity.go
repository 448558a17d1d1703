// Package diag collects compile-time diagnostics so the compiler can run
// as a library: callers decide how (or whether) to render them, instead
// of the compiler writing to stderr directly.
package diag

// Severity ranks a Diagnostic.
type Severity uint8

const (
	SevWarning Severity = iota
	SevError
)

func (s Severity) String() string {
	if s == SevError {
		return "Error"
	}
	return "Warning"
}
