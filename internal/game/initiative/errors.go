package initiative

import "fmt"

// InvalidStateError reports a tracker operation that could not proceed, such
// as initializing with an empty order or removing an unknown creature. It is
// the only error type the tracker returns; callers branch on it rather than
// on unrecoverable faults.
type InvalidStateError struct {
	// Op is the tracker operation that failed.
	Op string
	// Reason is a human-readable description of the violation.
	Reason string
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("initiative: %s: %s", e.Op, e.Reason)
}

// invalidState builds an InvalidStateError for op.
func invalidState(op, format string, args ...any) *InvalidStateError {
	return &InvalidStateError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
