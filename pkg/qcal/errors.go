package qcal

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrFileNotFound indicates the input report does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidProtocol indicates the protocol number is not an integer.
var ErrInvalidProtocol = errors.New("invalid protocol number")

// ExtractionError represents a failure extracting one section of a report.
type ExtractionError struct {
	Sheet   string
	Section string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error for sheet %q (%s): %v", e.Sheet, e.Section, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheet, section string, err error) *ExtractionError {
	return &ExtractionError{
		Sheet:   sheet,
		Section: section,
		Err:     err,
	}
}

// ParseProtocolNumber parses a protocol number argument.
func ParseProtocolNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidProtocol, s)
	}
	return n, nil
}
