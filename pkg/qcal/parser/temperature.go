package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

// MarkerAdditionalCalculations begins the section holding the temperature readings.
const MarkerAdditionalCalculations = "Additional Calculations"

const temperatureKeyword = "Temperature"

// ExtractTemperature reads every header field of the additional calculations
// section that mentions "Temperature" into a single-row float table, preceded
// by Protocol Number and followed by Study Date.
//
// The header is tokenized on commas but the value row is split on `","` so
// that commas inside other values do not shift the readings. Header field i
// (after the marker) pairs with value field i+1 (after the row label).
func ExtractTemperature(report *Report, protocol int, studyDate string) (*models.Table, error) {
	cursor, header, err := report.Locate(MarkerAdditionalCalculations)
	if err != nil {
		return nil, err
	}

	line, ok := cursor.Next()
	if !ok {
		return nil, fmt.Errorf("%w: %s has no value row", ErrRowCount, MarkerAdditionalCalculations)
	}
	fields := SplitQuoted(line)

	schema := models.Schema{{Name: models.ColumnProtocolNumber, Type: models.TypeInt}}
	row := []interface{}{int64(protocol)}
	for i, name := range header {
		if !strings.Contains(name, temperatureKeyword) {
			continue
		}
		idx := i + 1
		if idx >= len(fields) {
			return nil, fmt.Errorf("%w: %s has no value for %q",
				ErrFieldCount, MarkerAdditionalCalculations, name)
		}

		raw := unquote(fields[idx])
		v, err := Coerce(raw, models.TypeFloat)
		if err != nil {
			return nil, &CoercionError{
				Section: MarkerAdditionalCalculations,
				Column:  name,
				Value:   raw,
				Type:    models.TypeFloat,
				Err:     err,
			}
		}
		schema = append(schema, models.Column{Name: name, Type: models.TypeFloat})
		row = append(row, v)
	}
	schema = append(schema, studyDateColumn)
	row = append(row, studyDateValue(studyDate))

	table, err := models.NewTable(models.SheetTemperature, schema)
	if err != nil {
		return nil, err
	}
	if err := table.AppendRow(row); err != nil {
		return nil, err
	}
	return table, nil
}
