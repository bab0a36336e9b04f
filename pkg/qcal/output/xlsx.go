// Package output writes converted tables as an xlsx workbook or JSON.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

// defaultSheet is the sheet excelize creates in a new file.
const defaultSheet = "Sheet1"

// XLSXOptions configures workbook output.
type XLSXOptions struct {
	// AutoFilter adds a filter over each sheet's used range.
	AutoFilter bool
}

// WriteXLSX writes every table of wb to its own sheet of a new workbook at
// path. The file is written next to path under a temporary name and renamed
// into place, so a failed write never leaves a partial workbook.
func WriteXLSX(wb *models.Workbook, path string, opts XLSXOptions) error {
	tables := wb.Tables()
	if len(tables) == 0 {
		return fmt.Errorf("workbook has no tables")
	}
	for _, t := range tables {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.Sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(t.Sheet); err != nil {
			return err
		}
		if err := writeSheet(f, t, headerStyle, opts); err != nil {
			return fmt.Errorf("sheet %q: %w", t.Sheet, err)
		}
	}
	f.SetActiveSheet(0)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".qcalconv-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func writeSheet(f *excelize.File, t *models.Table, headerStyle int, opts XLSXOptions) error {
	header := make([]interface{}, len(t.Series))
	for i, name := range t.Header() {
		header[i] = name
	}
	if err := f.SetSheetRow(t.Sheet, "A1", &header); err != nil {
		return err
	}

	for r := 0; r < t.Len(); r++ {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		row := t.Row(r)
		if err := f.SetSheetRow(t.Sheet, cell, &row); err != nil {
			return err
		}
	}

	headerRange, err := HeaderRange(t)
	if err != nil || headerRange == "" {
		return err
	}
	if err := f.SetCellStyle(t.Sheet, "A1", lastCell(headerRange), headerStyle); err != nil {
		return err
	}

	if opts.AutoFilter && t.Len() > 0 {
		used, err := UsedRange(t)
		if err != nil {
			return err
		}
		if err := f.AutoFilter(t.Sheet, used, nil); err != nil {
			return err
		}
	}
	return nil
}

// lastCell returns the end cell of an "A1:B2" range.
func lastCell(rangeRef string) string {
	for i := len(rangeRef) - 1; i >= 0; i-- {
		if rangeRef[i] == ':' {
			return rangeRef[i+1:]
		}
	}
	return rangeRef
}
