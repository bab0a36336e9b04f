package parser

import (
	"fmt"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

// VOISection describes a VOI statistics section. The row count is a property
// of the phantom, not of the report, and is never inferred from the data.
type VOISection struct {
	// Marker is the label beginning the section header line.
	Marker string
	// Sheet is the output sheet name.
	Sheet string
	// Rows is the number of VOI rows following the units row.
	Rows int
}

var (
	// ADCSection holds the ADC statistics of the 14 diffusion VOIs.
	ADCSection = VOISection{Marker: "ADC VOI Statistics", Sheet: models.SheetADC, Rows: 14}
	// T2Section holds the T2 contrast statistics of the 28 contrast VOIs.
	T2Section = VOISection{Marker: "T2 Contrast VOI Statistics", Sheet: models.SheetT2w, Rows: 28}
)

// ExtractADC reads the ADC VOI statistics section.
func ExtractADC(report *Report, protocol int, studyDate string) (*models.Table, error) {
	return ExtractVOI(report, ADCSection, protocol, studyDate)
}

// ExtractT2 reads the T2 contrast VOI statistics section.
func ExtractT2(report *Report, protocol int, studyDate string) (*models.Table, error) {
	return ExtractVOI(report, T2Section, protocol, studyDate)
}

// ExtractVOI reads a VOI statistics section: the header row, one units row
// that is skipped, then exactly section.Rows data rows whose leading label
// field is dropped. Protocol Number and Study Date are appended.
func ExtractVOI(report *Report, section VOISection, protocol int, studyDate string) (*models.Table, error) {
	cursor, header, err := report.Locate(section.Marker)
	if err != nil {
		return nil, err
	}

	// units
	if _, ok := cursor.Next(); !ok {
		return nil, fmt.Errorf("%w: %s has no units row", ErrRowCount, section.Marker)
	}

	schema := VOISchema(header)
	table, err := models.NewTable(section.Sheet, schema)
	if err != nil {
		return nil, err
	}

	for i := 0; i < section.Rows; i++ {
		line, ok := cursor.Next()
		if !ok {
			return nil, fmt.Errorf("%w: %s has %d of %d VOI rows",
				ErrRowCount, section.Marker, i, section.Rows)
		}
		row, err := normalizeRow(section.Marker, schema, i, Tokenize(line)[1:])
		if err != nil {
			return nil, err
		}
		if err := table.AppendRow(row); err != nil {
			return nil, err
		}
	}

	if err := appendJoinKeys(table, protocol, studyDate, true); err != nil {
		return nil, err
	}
	return table, nil
}
