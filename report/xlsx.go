package report

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/frmquant/regdiag"
)

// WriteXLSX serializes the tables as an Excel workbook, one sheet per table
// in order, with the table's columns as the first row.
func WriteXLSX(w io.Writer, tables []Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return err
		}

		if err := writeRow(f, table.Name, 1, header(table.Columns)); err != nil {
			return err
		}
		for r, row := range table.Rows {
			if err := writeRow(f, table.Name, r+2, row); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// Export assembles the report tables and writes them as a workbook in one
// step. Serve the result with ContentType.
func Export(w io.Writer, fit *regdiag.FitResult, diag *regdiag.DiagnosticResult, labels regdiag.SeverityLabels) error {
	return WriteXLSX(w, Assemble(fit, diag, labels))
}

func header(columns []string) []any {
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}

func writeRow(f *excelize.File, sheet string, rowNum int, row []any) error {
	for c, v := range row {
		cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
			return err
		}
	}
	return nil
}

// cellValue rewrites non-finite floats as text; OOXML number cells cannot
// hold Inf or NaN.
func cellValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return fmt.Sprint(f)
	}
	return v
}
