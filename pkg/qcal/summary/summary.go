// Package summary computes descriptive statistics over the float columns of
// the VOI tables.
package summary

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

// Schema is the column layout of the summary table.
var Schema = models.Schema{
	{Name: "Sheet", Type: models.TypeString},
	{Name: "Column", Type: models.TypeString},
	{Name: "Count", Type: models.TypeInt},
	{Name: "Mean", Type: models.TypeFloat},
	{Name: "Median", Type: models.TypeFloat},
	{Name: "Std Dev", Type: models.TypeFloat},
	{Name: "Min", Type: models.TypeFloat},
	{Name: "Max", Type: models.TypeFloat},
}

// Summarize returns one row per float column of each table, skipping missing
// values. Columns with no values get missing statistics. Protocol Number is
// appended as on every other sheet.
func Summarize(protocol int, tables ...*models.Table) (*models.Table, error) {
	out, err := models.NewTable(models.SheetSummary, Schema)
	if err != nil {
		return nil, err
	}

	for _, t := range tables {
		for _, s := range t.Series {
			if s.Type != models.TypeFloat {
				continue
			}
			row, err := describe(t.Sheet, s)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", t.Sheet, s.Name, err)
			}
			if err := out.AppendRow(row); err != nil {
				return nil, err
			}
		}
	}

	pn := models.Column{Name: models.ColumnProtocolNumber, Type: models.TypeInt}
	if err := out.AppendConstant(pn, int64(protocol)); err != nil {
		return nil, err
	}
	return out, nil
}

func describe(sheet string, s models.Series) ([]interface{}, error) {
	data := make(stats.Float64Data, 0, len(s.Values))
	for _, v := range s.Values {
		if f, ok := v.(float64); ok {
			data = append(data, f)
		}
	}

	row := []interface{}{sheet, s.Name, int64(len(data)), nil, nil, nil, nil, nil}
	if len(data) == 0 {
		return row, nil
	}

	fns := []func(stats.Float64Data) (float64, error){
		stats.Mean,
		stats.Median,
		stats.StandardDeviation,
		stats.Min,
		stats.Max,
	}
	for i, fn := range fns {
		v, err := fn(data)
		if err != nil {
			return nil, err
		}
		row[3+i] = v
	}
	return row, nil
}
