package changelog

import (
	"errors"
	"fmt"
)

// Reasons a section is rejected. Rejection drops one section; it never aborts
// the run.
var (
	ErrNoHeading      = errors.New("no release heading")
	ErrNoDate         = errors.New("heading has no parenthetical date")
	ErrInvalidDate    = errors.New("heading date is not YYYY-MM-DD")
	ErrSlotsExhausted = errors.New("no publish hour left for this date")
	ErrDuplicateEntry = errors.New("another section already publishes this date and title")
)

// SectionError describes why one section was rejected.
type SectionError struct {
	Line    int
	Heading string
	Reason  error
}

func (e *SectionError) Error() string {
	if e.Heading == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Heading, e.Reason)
}

func (e *SectionError) Unwrap() error {
	return e.Reason
}
