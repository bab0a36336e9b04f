package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

// VOISchema types a VOI statistics header: the first and third columns are
// integers, the second is a string, every other column is a float.
func VOISchema(header []string) models.Schema {
	schema := make(models.Schema, len(header))
	for i, name := range header {
		typ := models.TypeFloat
		switch i {
		case 0, 2:
			typ = models.TypeInt
		case 1:
			typ = models.TypeString
		}
		schema[i] = models.Column{Name: name, Type: typ}
	}
	return schema
}

// errNotFinite rejects NaN and infinities, which no sheet cell or JSON number can hold.
var errNotFinite = errors.New("value is not finite")

// Coerce converts one raw field to typ. An empty field is a missing value
// and returns nil without error.
func Coerce(raw string, typ models.ColumnType) (interface{}, error) {
	if raw == "" {
		return nil, nil
	}

	switch typ {
	case models.TypeInt:
		return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	case models.TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errNotFinite
		}
		return f, nil
	case models.TypeString:
		return raw, nil
	}
	return nil, fmt.Errorf("unknown column type %q", typ)
}

// normalizeRow converts the fields of data row `row` to the schema's types.
func normalizeRow(section string, schema models.Schema, row int, fields []string) ([]interface{}, error) {
	if len(fields) != len(schema) {
		return nil, fmt.Errorf("%w: %s row %d has %d fields, header has %d",
			ErrFieldCount, section, row, len(fields), len(schema))
	}

	values := make([]interface{}, len(fields))
	for i, raw := range fields {
		v, err := Coerce(raw, schema[i].Type)
		if err != nil {
			return nil, &CoercionError{
				Section: section,
				Column:  schema[i].Name,
				Row:     row,
				Value:   raw,
				Type:    schema[i].Type,
				Err:     err,
			}
		}
		values[i] = v
	}
	return values, nil
}

// appendJoinKeys adds the Protocol Number column and, when withDate is set,
// the Study Date column copied from the study parameters.
func appendJoinKeys(t *models.Table, protocol int, studyDate string, withDate bool) error {
	pn := models.Column{Name: models.ColumnProtocolNumber, Type: models.TypeInt}
	if err := t.AppendConstant(pn, int64(protocol)); err != nil {
		return err
	}
	if !withDate {
		return nil
	}
	return t.AppendConstant(studyDateColumn, studyDateValue(studyDate))
}

var studyDateColumn = models.Column{Name: models.ColumnStudyDate, Type: models.TypeString}

func studyDateValue(studyDate string) interface{} {
	if studyDate == "" {
		return nil
	}
	return studyDate
}
