package format

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/xuri/excelize/v2"

	"github.com/tsawler/spangrid/cell"
	"github.com/tsawler/spangrid/model"
)

// SheetName is the worksheet name used for XLSX output.
const SheetName = "Table"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Write renders t to w in the given format.
func Write(w io.Writer, f Format, t *model.Table) error {
	switch f {
	case JSON:
		return writeJSON(w, t)
	case CSV:
		_, err := io.WriteString(w, t.ToCSV())
		return err
	case Markdown:
		_, err := io.WriteString(w, t.ToMarkdown())
		return err
	case XLSX:
		return writeXLSX(w, t)
	default:
		return fmt.Errorf("cannot write tables as %s", f)
	}
}

// WriteFile renders t to filename, choosing the format from its extension.
func WriteFile(filename string, t *model.Table) error {
	f := Detect(filename)
	if !f.Writable() {
		return fmt.Errorf("cannot write tables to %q: unsupported extension", filename)
	}

	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Write(out, f, t); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeJSON writes body rows as an indented array of records.
func writeJSON(w io.Writer, t *model.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Records())
}

// writeXLSX writes header rows in bold followed by body rows with cast values.
func writeXLSX(w io.Writer, t *model.Table) error {
	xls := excelize.NewFile()
	defer xls.Close()

	if err := xls.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	bold, err := xls.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	line := 1
	for _, row := range t.Headers {
		for i, v := range row {
			name, err := excelize.CoordinatesToCellName(i+1, line)
			if err != nil {
				return err
			}
			if err := xls.SetCellValue(SheetName, name, v); err != nil {
				return err
			}
			if err := xls.SetCellStyle(SheetName, name, name, bold); err != nil {
				return err
			}
		}
		line++
	}

	for _, row := range t.Rows {
		for i, v := range row {
			name, err := excelize.CoordinatesToCellName(i+1, line)
			if err != nil {
				return err
			}
			if err := xls.SetCellValue(SheetName, name, cell.Cast(v)); err != nil {
				return err
			}
		}
		line++
	}

	return xls.Write(w)
}
