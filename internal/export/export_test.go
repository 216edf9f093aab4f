package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/revenue-map/internal/model"
)

func sampleResult() *model.Result {
	return &model.Result{
		Rows: []model.Row{
			{ISO3: "USA", Name: "United States", Region: "Americas", Segment: model.SegmentAmericas, RevenueMillions: 2500.5, Share: 0.5, Population: 3.3e8, Office: true},
			{ISO3: "ATA", Name: "Antarctica", Region: ""},
		},
		Anchors:    map[model.Segment]float64{model.SegmentAmericas: 2500.5},
		GrandTotal: 2500.5,
		MaxShare:   0.5,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "ISO3", records[0][0])
	assert.Equal(t, "USA", records[1][0])
	assert.Equal(t, "2500.5000", records[1][4])
	assert.Equal(t, "true", records[1][7])
	assert.Equal(t, "ATA", records[2][0])
	assert.Equal(t, "0.0000", records[2][4])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var got model.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Rows, 2)
	assert.Equal(t, 2500.5, got.GrandTotal)
	assert.Equal(t, "USA", got.Rows[0].ISO3)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allocation.xlsx")
	require.NoError(t, WriteXLSX(path, sampleResult()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Allocation", sheet.Name)
	require.GreaterOrEqual(t, len(sheet.Rows), 3)
	assert.Equal(t, "ISO3", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "USA", sheet.Rows[1].Cells[0].Value)
}

func TestWriteFile_UnsupportedFormat(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "x.txt"), "txt", sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestWriteFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteFile(path, "csv", sampleResult()))
}
