package framework

import "strings"

// AggregatedError collects the errors of a group of Runnables.
type AggregatedError struct {
	Errors []error
}

// Add appends the non-nil errors.
func (e *AggregatedError) Add(errs ...error) *AggregatedError {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
	return e
}

// Aggregate returns nil when nothing was added, otherwise e.
func (e *AggregatedError) Aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Error implements error. A single error reads as itself, several are
// listed one per line.
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	if len(e.Errors) > 1 {
		b.WriteString("multiple errors:")
	}
	for _, err := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap lets errors.Is and errors.As see every collected error.
func (e *AggregatedError) Unwrap() []error {
	return e.Errors
}
