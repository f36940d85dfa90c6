package histcore

import "fmt"

// InvalidArgumentError reports a shape or range violation detected
// before any dispatch begins. Field names the offending argument or
// config field; Reason is a short human-readable explanation.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("histcore: invalid argument %q: %s", e.Field, e.Reason)
}

// ResourceExhaustionError reports a failed histogram allocation.
type ResourceExhaustionError struct {
	Reason string
}

func (e *ResourceExhaustionError) Error() string {
	return fmt.Sprintf("histcore: resource exhausted: %s", e.Reason)
}
