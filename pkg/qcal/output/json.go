package output

import (
	"encoding/json"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

// ToJSON serializes a workbook. Missing values become null.
func ToJSON(wb *models.Workbook, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(wb, "", "  ")
	}
	return json.Marshal(wb)
}
