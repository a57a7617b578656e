package directory

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a site or report does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateURL is returned when the submitted URL is already indexed.
	ErrDuplicateURL = errors.New("this website has already been submitted")

	// ErrAlreadyProcessed is returned when a processed report is processed again.
	ErrAlreadyProcessed = errors.New("report already processed")

	// ErrValidation wraps all malformed or out-of-bounds submission input.
	ErrValidation = errors.New("invalid submission")

	// ErrDecode wraps failures to decode a persisted record. Bulk read paths
	// treat it as "skip this record", never as fatal.
	ErrDecode = errors.New("malformed record")
)

// CooldownError signals that the submitter must wait before submitting again.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %d seconds before submitting again", int(e.Remaining.Seconds()))
}
