package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no recognized recipe exists at the given path.
	ErrNotFound = errors.New("recipe not found")
	// ErrAmbiguous is returned when a directory holds more than one recipe variant
	// and strict locating is enabled.
	ErrAmbiguous = errors.New("ambiguous recipe")
	// ErrExtraction is returned when a recipe exists but cannot be parsed or evaluated.
	ErrExtraction = errors.New("requirement extraction failed")
	// ErrQueryFailure marks a failed or timed-out version lookup. It never aborts a run.
	ErrQueryFailure = errors.New("version query failed")
)

// ExtractionError wraps the underlying cause of a failed extraction.
type ExtractionError struct {
	Path  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract requirements from %s: %v", e.Path, e.Cause)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtraction, e.Cause}
}

// QueryError wraps the cause of a failed version lookup for a single package.
type QueryError struct {
	Package string
	Cause   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("failed to search versions of %s: %v", e.Package, e.Cause)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQueryFailure, e.Cause}
}
