// Package reports turns a review cycle's responses into a persisted report and
// serves display views, competency profiles and share links for it.
package reports

import (
	"errors"
	"fmt"
)

var (
	// ErrCycleNotFound is returned when the review cycle does not exist.
	ErrCycleNotFound = errors.New("review cycle not found")
	// ErrReportNotFound is returned when no report has been generated for a cycle.
	ErrReportNotFound = errors.New("report not found")
	// ErrReportUnavailable is returned when a report exists but is not published.
	ErrReportUnavailable = errors.New("report is not available")
	// ErrInvalidShareLink is returned for share links that fail verification.
	ErrInvalidShareLink = errors.New("invalid share link")
)

// Error represents a failure in one step of report generation
type Error struct {
	Step  string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("report %s failed: %v", e.Step, e.Cause)
	}
	return fmt.Sprintf("report %s failed", e.Step)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
