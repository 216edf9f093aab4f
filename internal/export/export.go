// Package export renders an allocation result as CSV, XLSX, or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/revenue-map/internal/model"
)

// columns defines the ordered output columns shared by CSV and XLSX.
var columns = []string{
	"ISO3",
	"Country",
	"Region",
	"Segment",
	"Revenue (USD millions)",
	"Share of Total",
	"Population",
	"Office",
	"Hub",
	"Near Zero",
}

func rowValues(r model.Row) []string {
	return []string{
		r.ISO3,
		r.Name,
		r.Region,
		string(r.Segment),
		strconv.FormatFloat(r.RevenueMillions, 'f', 4, 64),
		strconv.FormatFloat(r.Share, 'f', 6, 64),
		strconv.FormatFloat(r.Population, 'f', 0, 64),
		strconv.FormatBool(r.Office),
		strconv.FormatBool(r.Hub),
		strconv.FormatBool(r.NearZero),
	}
}

// WriteCSV writes the allocation table as CSV.
func WriteCSV(w io.Writer, result *model.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, row := range result.Rows {
		if err := cw.Write(rowValues(row)); err != nil {
			return eris.Wrapf(err, "export: write csv row %s", row.ISO3)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteJSON writes the full result, anchors included, as indented JSON.
func WriteJSON(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(result), "export: write json")
}

// WriteXLSX writes the allocation table as a single-sheet workbook.
func WriteXLSX(path string, result *model.Result) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Allocation")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().Value = col
	}

	for _, r := range result.Rows {
		row := sheet.AddRow()
		row.AddCell().Value = r.ISO3
		row.AddCell().Value = r.Name
		row.AddCell().Value = r.Region
		row.AddCell().Value = string(r.Segment)
		row.AddCell().SetFloat(r.RevenueMillions)
		row.AddCell().SetFloat(r.Share)
		row.AddCell().SetFloat(r.Population)
		row.AddCell().SetBool(r.Office)
		row.AddCell().SetBool(r.Hub)
		row.AddCell().SetBool(r.NearZero)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save xlsx %s", path)
	}
	return nil
}

// WriteFile dispatches on format ("csv", "json", "xlsx") and writes the
// result to path.
func WriteFile(path, format string, result *model.Result) error {
	switch format {
	case "xlsx":
		return WriteXLSX(path, result)
	case "csv", "json":
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "export: create %s", path)
		}
		defer f.Close() //nolint:errcheck
		if format == "csv" {
			return WriteCSV(f, result)
		}
		return WriteJSON(f, result)
	default:
		return eris.Errorf("export: unsupported format %q", format)
	}
}
