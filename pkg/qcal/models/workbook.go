package models

// Sheet names of the converted workbook.
const (
	SheetInfo        = "info"
	SheetADC         = "ADC"
	SheetT2w         = "T2w"
	SheetTemperature = "temperature"
	SheetSummary     = "summary"
)

// Join-key column names appended to the extracted tables.
const (
	ColumnProtocolNumber = "Protocol Number"
	ColumnStudyDate      = "Study Date"
)

// Workbook holds every table produced by one conversion run.
type Workbook struct {
	// SourceName is the report file name (no path).
	SourceName string `json:"source_name"`
	// ProtocolNumber is the caller-supplied protocol identifier.
	ProtocolNumber int `json:"protocol_number"`
	// Info is the study metadata table.
	Info *Table `json:"info"`
	// ADC holds the ADC VOI statistics.
	ADC *Table `json:"adc"`
	// T2w holds the T2 contrast VOI statistics.
	T2w *Table `json:"t2w"`
	// Temperature holds the temperature readings.
	Temperature *Table `json:"temperature"`
	// Summary holds optional descriptive statistics (nil unless requested).
	Summary *Table `json:"summary,omitempty"`
}

// Tables returns the non-nil tables in sheet order.
func (w *Workbook) Tables() []*Table {
	var tables []*Table
	for _, t := range []*Table{w.Info, w.ADC, w.T2w, w.Temperature, w.Summary} {
		if t != nil {
			tables = append(tables, t)
		}
	}
	return tables
}
