package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

// UsedRange returns the range covering a table's header and data rows,
// e.g. "A1:H15". It returns "" for a table without columns.
func UsedRange(t *models.Table) (string, error) {
	if len(t.Series) == 0 {
		return "", nil
	}
	return cellRange(1, 1, len(t.Series), t.Len()+1)
}

// HeaderRange returns the range covering a table's header row.
func HeaderRange(t *models.Table) (string, error) {
	if len(t.Series) == 0 {
		return "", nil
	}
	return cellRange(1, 1, len(t.Series), 1)
}

func cellRange(col1, row1, col2, row2 int) (string, error) {
	startCell, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return "", err
	}
	endCell, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", startCell, endCell), nil
}
