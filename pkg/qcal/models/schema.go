// Package models defines the typed tables produced from a qCal report.
package models

import (
	"errors"
	"fmt"
)

// ColumnType is the semantic type of a table column.
type ColumnType string

const (
	// TypeInt holds int64 values.
	TypeInt ColumnType = "int"
	// TypeFloat holds float64 values.
	TypeFloat ColumnType = "float"
	// TypeString holds string values.
	TypeString ColumnType = "string"
)

// ErrDuplicateColumn indicates a schema names the same column twice.
var ErrDuplicateColumn = errors.New("duplicate column")

// Column is one (name, type) entry of a Schema.
type Column struct {
	// Name is the column header as written to the sheet.
	Name string `json:"name"`
	// Type is the semantic type of every non-missing value in the column.
	Type ColumnType `json:"type"`
}

// Schema is an ordered list of columns.
type Schema []Column

// Validate checks that column names are unique and types are known.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, c := range s {
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = struct{}{}

		switch c.Type {
		case TypeInt, TypeFloat, TypeString:
		default:
			return fmt.Errorf("column %q: unknown type %q", c.Name, c.Type)
		}
	}
	return nil
}

// Index returns the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}
