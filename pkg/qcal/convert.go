package qcal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
	"github.com/ukaji3/qcalconv-go/pkg/qcal/parser"
	"github.com/ukaji3/qcalconv-go/pkg/qcal/summary"
)

// ConvertFile reads the report at path and converts it.
func ConvertFile(path string, opts Options) (*models.Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	report, err := parser.NewReport(f)
	if err != nil {
		return nil, err
	}

	wb, err := Convert(report, opts)
	if err != nil {
		return nil, err
	}
	wb.SourceName = filepath.Base(path)
	return wb, nil
}

// Convert extracts the study parameters, ADC statistics, temperature readings
// and T2 contrast statistics, in that order. Each extractor scans the report
// from its start. The Study Date of the study parameters is copied into the
// other three tables. Any failure aborts the conversion.
func Convert(report *parser.Report, opts Options) (*models.Workbook, error) {
	log := opts.logger()
	protocol := opts.ProtocolNumber

	info, err := parser.ExtractStudyParameters(report, protocol)
	if err != nil {
		return nil, NewExtractionError(models.SheetInfo, parser.MarkerStudyParameters, err)
	}
	studyDate, err := parser.StudyDate(info)
	if err != nil {
		return nil, NewExtractionError(models.SheetInfo, parser.MarkerStudyParameters, err)
	}
	log.Debug("Extracted study parameters",
		slog.Int("columns", len(info.Series)),
		slog.String("study_date", studyDate))

	adc, err := parser.ExtractADC(report, protocol, studyDate)
	if err != nil {
		return nil, NewExtractionError(models.SheetADC, parser.ADCSection.Marker, err)
	}
	log.Debug("Extracted ADC statistics", slog.Int("rows", adc.Len()))

	temps, err := parser.ExtractTemperature(report, protocol, studyDate)
	if err != nil {
		return nil, NewExtractionError(models.SheetTemperature, parser.MarkerAdditionalCalculations, err)
	}
	log.Debug("Extracted temperature readings", slog.Int("columns", len(temps.Series)-2))

	t2, err := parser.ExtractT2(report, protocol, studyDate)
	if err != nil {
		return nil, NewExtractionError(models.SheetT2w, parser.T2Section.Marker, err)
	}
	log.Debug("Extracted T2 contrast statistics", slog.Int("rows", t2.Len()))

	wb := &models.Workbook{
		ProtocolNumber: protocol,
		Info:           info,
		ADC:            adc,
		T2w:            t2,
		Temperature:    temps,
	}

	if opts.Summary {
		wb.Summary, err = summary.Summarize(protocol, adc, t2)
		if err != nil {
			return nil, fmt.Errorf("summary failed: %w", err)
		}
	}

	return wb, nil
}
