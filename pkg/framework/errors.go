package framework

import (
	"fmt"
	"strings"
)

// RunError is returned by a Runnable started in a Runner.
type RunError struct {
	Name string
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// Unwrap returns the error of the Runnable.
func (e *RunError) Unwrap() error {
	return e.Err
}

// AggregatedError collects the errors of all Runnables of a Runner.
// errors.Is and errors.As look into every collected error.
type AggregatedError struct {
	Errors []error
}

func (e *AggregatedError) Error() string {
	switch len(e.Errors) {
	case 0:
		return ""
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for n, err := range e.Errors {
		msgs[n] = err.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap returns the collected errors.
func (e *AggregatedError) Unwrap() []error {
	return e.Errors
}

// Add collects errs, skipping nil.
func (e *AggregatedError) Add(errs ...error) *AggregatedError {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
	return e
}

// Aggregate returns nil if nothing was collected.
func (e *AggregatedError) Aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
