package processor

import "fmt"

// ValidationError is returned when an on-chain event does not match what a processor expects.
type ValidationError struct {
	Process ProcessName
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s event: %s", e.Process, e.Reason)
}

func newValidationError(process ProcessName, format string, args ...any) *ValidationError {
	return &ValidationError{
		Process: process,
		Reason:  fmt.Sprintf(format, args...),
	}
}
