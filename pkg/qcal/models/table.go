package models

import (
	"fmt"
)

// Series is one column of a Table. A nil entry in Values marks a missing value.
type Series struct {
	Column
	// Values holds int64, float64, string or nil entries, one per row.
	Values []interface{} `json:"values"`
}

// Table is a column-oriented table destined for one workbook sheet.
// All series have the same length; row order follows the source report.
type Table struct {
	// Sheet is the workbook sheet name.
	Sheet string `json:"sheet"`
	// Series holds the columns in output order.
	Series []Series `json:"columns"`
}

// NewTable creates an empty table for the given schema.
func NewTable(sheet string, schema Schema) (*Table, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	t := &Table{Sheet: sheet, Series: make([]Series, len(schema))}
	for i, c := range schema {
		t.Series[i] = Series{Column: c}
	}
	return t, nil
}

// Schema returns the table's columns in order.
func (t *Table) Schema() Schema {
	s := make(Schema, len(t.Series))
	for i, col := range t.Series {
		s[i] = col.Column
	}
	return s
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.Series) == 0 {
		return 0
	}
	return len(t.Series[0].Values)
}

// AppendRow appends one row. values must have one entry per column, already
// converted to the column's type (or nil).
func (t *Table) AppendRow(values []interface{}) error {
	if len(values) != len(t.Series) {
		return fmt.Errorf("sheet %q: row has %d values, table has %d columns", t.Sheet, len(values), len(t.Series))
	}
	for i, v := range values {
		if err := checkValue(t.Series[i].Column, v); err != nil {
			return fmt.Errorf("sheet %q: %w", t.Sheet, err)
		}
	}
	for i, v := range values {
		t.Series[i].Values = append(t.Series[i].Values, v)
	}
	return nil
}

// AppendConstant adds a column holding v on every existing row.
func (t *Table) AppendConstant(c Column, v interface{}) error {
	schema := append(t.Schema(), c)
	if err := schema.Validate(); err != nil {
		return fmt.Errorf("sheet %q: %w", t.Sheet, err)
	}
	if err := checkValue(c, v); err != nil {
		return fmt.Errorf("sheet %q: %w", t.Sheet, err)
	}

	values := make([]interface{}, t.Len())
	for i := range values {
		values[i] = v
	}
	t.Series = append(t.Series, Series{Column: c, Values: values})
	return nil
}

// Lookup returns the named series.
func (t *Table) Lookup(name string) (Series, bool) {
	for _, s := range t.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []interface{} {
	row := make([]interface{}, len(t.Series))
	for c, s := range t.Series {
		row[c] = s.Values[i]
	}
	return row
}

// Header returns the column names in order.
func (t *Table) Header() []string {
	names := make([]string, len(t.Series))
	for i, s := range t.Series {
		names[i] = s.Name
	}
	return names
}

// Validate checks the equal-length invariant and every value's type.
func (t *Table) Validate() error {
	if err := t.Schema().Validate(); err != nil {
		return fmt.Errorf("sheet %q: %w", t.Sheet, err)
	}
	n := t.Len()
	for _, s := range t.Series {
		if len(s.Values) != n {
			return fmt.Errorf("sheet %q: column %q has %d rows, want %d", t.Sheet, s.Name, len(s.Values), n)
		}
		for _, v := range s.Values {
			if err := checkValue(s.Column, v); err != nil {
				return fmt.Errorf("sheet %q: %w", t.Sheet, err)
			}
		}
	}
	return nil
}

func checkValue(c Column, v interface{}) error {
	if v == nil {
		return nil
	}
	ok := false
	switch c.Type {
	case TypeInt:
		_, ok = v.(int64)
	case TypeFloat:
		_, ok = v.(float64)
	case TypeString:
		_, ok = v.(string)
	}
	if !ok {
		return fmt.Errorf("column %q: value %v (%T) is not %s", c.Name, v, v, c.Type)
	}
	return nil
}
