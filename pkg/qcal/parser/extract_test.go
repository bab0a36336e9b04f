package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/qcalconv-go/pkg/qcal/models"
)

// reportBuilder assembles synthetic reports section by section.
type reportBuilder struct {
	lines []string
}

func (b *reportBuilder) add(lines ...string) *reportBuilder {
	b.lines = append(b.lines, lines...)
	return b
}

func (b *reportBuilder) study() *reportBuilder {
	return b.add(
		`"Study Parameters","Study Date","Scanner","Protocol"`,
		`"Study Parameters","2024-01-01","Hyperfine, Inc. Swoop","ABC123"`,
	)
}

func (b *reportBuilder) voi(marker string, rows int) *reportBuilder {
	b.add(
		fmt.Sprintf(`"%s","VOI","Material","Voxels","Mean","Std Dev"`, marker),
		`"Units","","","count","um2/s","um2/s"`,
	)
	for i := 1; i <= rows; i++ {
		b.add(fmt.Sprintf(`"VOI %d","%d","Vial %d","%d","%d.5","1.25"`, i, i, i, 100+i, 1000+i))
	}
	return b
}

func (b *reportBuilder) temperature() *reportBuilder {
	return b.add(
		`"Additional Calculations","Slice Thickness","Temperature (Start)","Temperature (End)"`,
		`"Additional Calculations","5.1, 5.2","20.5","21.0"`,
	)
}

func (b *reportBuilder) report() *Report {
	return ParseReport(strings.Join(b.lines, "\n") + "\n")
}

func fullReport() *Report {
	b := &reportBuilder{}
	return b.add(`"qCal Report"`).
		study().
		voi(ADCSection.Marker, ADCSection.Rows).
		temperature().
		voi(T2Section.Marker, T2Section.Rows).
		report()
}

func TestLocate(t *testing.T) {
	r := fullReport()

	cursor, header, err := r.Locate(MarkerStudyParameters)
	require.NoError(t, err)
	assert.Equal(t, []string{"Study Date", "Scanner", "Protocol"}, header)
	assert.Equal(t, 2, cursor.Line())

	line, ok := cursor.Next()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(line, `"Study Parameters","2024-01-01"`))

	_, _, err = r.Locate("Missing Section")
	assert.True(t, errors.Is(err, ErrSectionNotFound))
}

func TestLocateRequiresMarkerInFirstField(t *testing.T) {
	r := ParseReport(`"Notes","ADC VOI Statistics"` + "\n")
	_, _, err := r.Locate(ADCSection.Marker)
	assert.True(t, errors.Is(err, ErrSectionNotFound))
}

func TestExtractStudyParameters(t *testing.T) {
	table, err := ExtractStudyParameters(fullReport(), 7)
	require.NoError(t, err)

	assert.Equal(t, models.SheetInfo, table.Sheet)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, []string{"Study Date", "Scanner", "Protocol", models.ColumnProtocolNumber}, table.Header())
	assert.Equal(t, []interface{}{"2024-01-01", "Hyperfine Inc. Swoop", "ABC123", int64(7)}, table.Row(0))

	date, err := StudyDate(table)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", date)
}

func TestExtractStudyParametersUnquotedValues(t *testing.T) {
	r := ParseReport("Study Parameters,Study Date,Protocol\n\"X\",2024-01-01,ABC123\n")

	table, err := ExtractStudyParameters(r, 7)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	for name, want := range map[string]interface{}{
		"Study Date":                "2024-01-01",
		"Protocol":                  "ABC123",
		models.ColumnProtocolNumber: int64(7),
	} {
		series, ok := table.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, want, series.Values[0], name)
	}
}

func TestExtractStudyParametersErrors(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		wantErr error
	}{
		{"no section", "\"Other\",\"x\"\n", ErrSectionNotFound},
		{"no value row", "\"Study Parameters\",\"Study Date\"\n", ErrRowCount},
		{"short value row", "\"Study Parameters\",\"Study Date\",\"Protocol\"\n\"Study Parameters\",\"2024-01-01\"\n", ErrFieldCount},
		{"no study date", "\"Study Parameters\",\"Protocol\"\n\"Study Parameters\",\"ABC\"\n", ErrMissingStudyDate},
		{"duplicate parameter", "\"Study Parameters\",\"Study Date\",\"Study Date\"\n\"x\",\"a\",\"b\"\n", models.ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractStudyParameters(ParseReport(tt.report), 1)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExtractVOI(t *testing.T) {
	r := fullReport()

	tests := []struct {
		extract func(*Report, int, string) (*models.Table, error)
		sheet   string
		rows    int
	}{
		{ExtractADC, models.SheetADC, 14},
		{ExtractT2, models.SheetT2w, 28},
	}

	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			table, err := tt.extract(r, 3, "2024-01-01")
			require.NoError(t, err)
			require.NoError(t, table.Validate())

			assert.Equal(t, tt.sheet, table.Sheet)
			assert.Equal(t, tt.rows, table.Len())
			assert.Equal(t, models.Schema{
				{Name: "VOI", Type: models.TypeInt},
				{Name: "Material", Type: models.TypeString},
				{Name: "Voxels", Type: models.TypeInt},
				{Name: "Mean", Type: models.TypeFloat},
				{Name: "Std Dev", Type: models.TypeFloat},
				{Name: models.ColumnProtocolNumber, Type: models.TypeInt},
				{Name: models.ColumnStudyDate, Type: models.TypeString},
			}, table.Schema())

			assert.Equal(t, []interface{}{int64(1), "Vial 1", int64(101), 1001.5, 1.25, int64(3), "2024-01-01"}, table.Row(0))

			voi, _ := table.Lookup("VOI")
			for i, v := range voi.Values {
				assert.Equal(t, int64(i+1), v, "row order")
			}
			pn, _ := table.Lookup(models.ColumnProtocolNumber)
			for _, v := range pn.Values {
				assert.Equal(t, int64(3), v)
			}
		})
	}
}

func TestExtractVOIMissingValues(t *testing.T) {
	b := &reportBuilder{}
	b.add(`"ADC VOI Statistics","VOI","Material","Voxels","Mean"`, `"Units","","","",""`)
	for i := 1; i <= 14; i++ {
		if i == 2 {
			b.add(`"VOI 2","2","","",""`)
			continue
		}
		b.add(fmt.Sprintf(`"VOI %d","%d","m","10","1.5"`, i, i))
	}

	table, err := ExtractADC(b.report(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(2), nil, nil, nil, int64(1), nil}, table.Row(1))
}

func TestExtractVOIErrors(t *testing.T) {
	t.Run("section missing", func(t *testing.T) {
		b := &reportBuilder{}
		r := b.study().voi(ADCSection.Marker, 14).temperature().report()
		_, err := ExtractT2(r, 1, "")
		assert.True(t, errors.Is(err, ErrSectionNotFound), "got %v", err)
	})

	t.Run("too few rows", func(t *testing.T) {
		b := &reportBuilder{}
		_, err := ExtractT2(b.voi(T2Section.Marker, 27).report(), 1, "")
		assert.True(t, errors.Is(err, ErrRowCount), "got %v", err)
	})

	t.Run("no units row", func(t *testing.T) {
		r := ParseReport(`"ADC VOI Statistics","VOI"` + "\n")
		_, err := ExtractADC(r, 1, "")
		assert.True(t, errors.Is(err, ErrRowCount), "got %v", err)
	})

	t.Run("blank line inside section", func(t *testing.T) {
		b := &reportBuilder{}
		b.voi(ADCSection.Marker, 5).add("").voi("Filler", 14)
		_, err := ExtractADC(b.report(), 1, "")
		assert.True(t, errors.Is(err, ErrFieldCount), "got %v", err)
	})

	t.Run("bad integer", func(t *testing.T) {
		b := &reportBuilder{}
		b.add(`"ADC VOI Statistics","VOI","Material","Voxels","Mean"`, `"Units"`)
		b.add(`"VOI 1","one","m","10","1.5"`)
		_, err := ExtractADC(b.report(), 1, "")
		require.True(t, errors.Is(err, ErrTypeCoercion), "got %v", err)

		var ce *CoercionError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "VOI", ce.Column)
		assert.Equal(t, 0, ce.Row)
		assert.Equal(t, "one", ce.Value)
		assert.Equal(t, models.TypeInt, ce.Type)
	})

	t.Run("bad float", func(t *testing.T) {
		b := &reportBuilder{}
		b.add(`"ADC VOI Statistics","VOI","Material","Voxels","Mean"`, `"Units"`)
		b.add(`"VOI 1","1","m","10","1.5"`, `"VOI 2","2","m","10","n/a"`)
		_, err := ExtractADC(b.report(), 1, "")

		var ce *CoercionError
		require.True(t, errors.As(err, &ce), "got %v", err)
		assert.Equal(t, "Mean", ce.Column)
		assert.Equal(t, 1, ce.Row)
	})
}

func TestExtractTemperature(t *testing.T) {
	table, err := ExtractTemperature(fullReport(), 7, "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, models.SheetTemperature, table.Sheet)
	assert.Equal(t, []string{
		models.ColumnProtocolNumber, "Temperature (Start)", "Temperature (End)", models.ColumnStudyDate,
	}, table.Header())
	assert.Equal(t, []interface{}{int64(7), 20.5, 21.0, "2024-01-01"}, table.Row(0))
}

func TestExtractTemperatureMatchesEveryField(t *testing.T) {
	r := ParseReport(strings.Join([]string{
		`"Additional Calculations","Temperature A","Drift","Bore Temperature","Temperature B"`,
		`"Additional Calculations","1.5","3,000","2.5"," 3.5 "`,
	}, "\n"))

	table, err := ExtractTemperature(r, 1, "d")
	require.NoError(t, err)

	var temps []string
	for _, name := range table.Header() {
		if strings.Contains(name, "Temperature") {
			temps = append(temps, name)
		}
	}
	assert.Equal(t, []string{"Temperature A", "Bore Temperature", "Temperature B"}, temps)
	assert.Equal(t, []interface{}{int64(1), 1.5, 2.5, 3.5, "d"}, table.Row(0))
}

func TestExtractTemperatureNoMatches(t *testing.T) {
	r := ParseReport("\"Additional Calculations\",\"Drift\"\n\"Additional Calculations\",\"0.1\"\n")
	table, err := ExtractTemperature(r, 2, "")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(2), nil}, table.Row(0))
}

func TestExtractTemperatureErrors(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		wantErr error
	}{
		{"no section", "\"Other\"\n", ErrSectionNotFound},
		{"no value row", "\"Additional Calculations\",\"Temperature\"\n", ErrRowCount},
		{"short value row", "\"Additional Calculations\",\"x\",\"Temperature\"\n\"Additional Calculations\",\"1\"\n", ErrFieldCount},
		{"not a number", "\"Additional Calculations\",\"Temperature\"\n\"Additional Calculations\",\"warm\"\n", ErrTypeCoercion},
		{"not finite", "\"Additional Calculations\",\"Temperature\"\n\"Additional Calculations\",\"NaN\"\n", ErrTypeCoercion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTemperature(ParseReport(tt.report), 1, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		raw      string
		typ      models.ColumnType
		expected interface{}
		wantErr  bool
	}{
		{"", models.TypeInt, nil, false},
		{"", models.TypeFloat, nil, false},
		{"", models.TypeString, nil, false},
		{"42", models.TypeInt, int64(42), false},
		{" -3 ", models.TypeInt, int64(-3), false},
		{"4.0", models.TypeInt, nil, true},
		{"1.5", models.TypeFloat, 1.5, false},
		{"1e3", models.TypeFloat, 1000.0, false},
		{" ", models.TypeFloat, nil, true},
		{"NaN", models.TypeFloat, nil, true},
		{"Inf", models.TypeFloat, nil, true},
		{"-Infinity", models.TypeFloat, nil, true},
		{"1e400", models.TypeFloat, nil, true},
		{"PVP 10%", models.TypeString, "PVP 10%", false},
		{"1", models.ColumnType("date"), nil, true},
	}

	for _, tt := range tests {
		result, err := Coerce(tt.raw, tt.typ)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Coerce(%q, %s) expected error, got %v", tt.raw, tt.typ, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("Coerce(%q, %s) error: %v", tt.raw, tt.typ, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("Coerce(%q, %s) = %v (type: %T), expected %v (type: %T)",
				tt.raw, tt.typ, result, result, tt.expected, tt.expected)
		}
	}
}

func TestVOISchema(t *testing.T) {
	schema := VOISchema([]string{"a", "b", "c", "d", "e"})
	want := []models.ColumnType{models.TypeInt, models.TypeString, models.TypeInt, models.TypeFloat, models.TypeFloat}
	for i, c := range schema {
		assert.Equal(t, want[i], c.Type, c.Name)
	}
	assert.Len(t, VOISchema([]string{"only"}), 1)
}
