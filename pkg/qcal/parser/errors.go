package parser

import (
	"errors"
	"fmt"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

var (
	// ErrSectionNotFound indicates a section marker is absent from the report.
	ErrSectionNotFound = errors.New("section not found")
	// ErrRowCount indicates the report ended before a section's fixed row count was read.
	ErrRowCount = errors.New("too few rows in section")
	// ErrFieldCount indicates a data row does not line up with its header row.
	ErrFieldCount = errors.New("field count does not match header")
	// ErrTypeCoercion indicates a field could not be converted to its column type.
	ErrTypeCoercion = errors.New("type coercion failed")
	// ErrMissingStudyDate indicates the study parameters carry no Study Date.
	ErrMissingStudyDate = errors.New("study date missing from study parameters")
)

// CoercionError identifies the cell that failed type conversion.
type CoercionError struct {
	Section string
	Column  string
	Row     int // 0-based data row within the section
	Value   string
	Type    models.ColumnType
	Err     error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: row %d, column %q: cannot convert %q to %s: %v",
		e.Section, e.Row, e.Column, e.Value, e.Type, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// Is reports every CoercionError as ErrTypeCoercion.
func (e *CoercionError) Is(target error) bool {
	return target == ErrTypeCoercion
}
