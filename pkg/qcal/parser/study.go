package parser

import (
	"fmt"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

// MarkerStudyParameters begins the study metadata section.
const MarkerStudyParameters = "Study Parameters"

// ExtractStudyParameters reads the study metadata section into a single-row
// table of string columns, one per parameter, followed by Protocol Number.
// The value row repeats the section label in its first field, which is dropped.
func ExtractStudyParameters(report *Report, protocol int) (*models.Table, error) {
	cursor, params, err := report.Locate(MarkerStudyParameters)
	if err != nil {
		return nil, err
	}

	line, ok := cursor.Next()
	if !ok {
		return nil, fmt.Errorf("%w: %s has no value row", ErrRowCount, MarkerStudyParameters)
	}
	values := Tokenize(line)[1:]
	if len(values) < len(params) {
		return nil, fmt.Errorf("%w: %s has %d values for %d parameters",
			ErrFieldCount, MarkerStudyParameters, len(values), len(params))
	}

	schema := make(models.Schema, len(params))
	for i, name := range params {
		schema[i] = models.Column{Name: name, Type: models.TypeString}
	}
	if schema.Index(models.ColumnStudyDate) < 0 {
		return nil, ErrMissingStudyDate
	}

	table, err := models.NewTable(models.SheetInfo, schema)
	if err != nil {
		return nil, err
	}
	row, err := normalizeRow(MarkerStudyParameters, schema, 0, values[:len(params)])
	if err != nil {
		return nil, err
	}
	if err := table.AppendRow(row); err != nil {
		return nil, err
	}
	if err := appendJoinKeys(table, protocol, "", false); err != nil {
		return nil, err
	}
	return table, nil
}

// StudyDate returns the Study Date of a study parameters table. An empty
// study date yields "".
func StudyDate(info *models.Table) (string, error) {
	series, ok := info.Lookup(models.ColumnStudyDate)
	if !ok || len(series.Values) == 0 {
		return "", ErrMissingStudyDate
	}
	s, _ := series.Values[0].(string)
	return s, nil
}
