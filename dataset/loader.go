package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Format identifies the encoding of an uploaded byte stream.
type Format int

const (
	// FormatCSV is comma-separated text.
	FormatCSV Format = iota
	// FormatXLS is the legacy binary Excel workbook format.
	FormatXLS
	// FormatXLSX is the OOXML Excel workbook format.
	FormatXLSX
)

// String returns the conventional file extension of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLS:
		return "xls"
	case FormatXLSX:
		return "xlsx"
	}
	return "unknown"
}

// ErrUnknownFormat signals that a filename carries no recognized extension.
var ErrUnknownFormat = errors.New("unknown file format")

// DetectFormat maps a filename to its Format by extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xls":
		return FormatXLS, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filename)
}

// ParseError reports a malformed or unreadable upload. The upload must be
// corrected and resubmitted; the condition is never retried automatically.
type ParseError struct {
	Format Format
	err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s data: %v", e.Format, e.err)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

func newParseError(f Format, err error) *ParseError {
	return &ParseError{Format: f, err: err}
}

// Load parses an uploaded byte stream in the given format into a Dataset.
// The first row is taken as the header.
func Load(b []byte, f Format) (*Dataset, error) {
	switch f {
	case FormatCSV:
		return LoadCSV(b)
	case FormatXLS:
		return LoadXLS(b)
	case FormatXLSX:
		return LoadXLSX(b)
	}
	return nil, newParseError(f, ErrUnknownFormat)
}

// LoadCSV parses comma-separated text. Rows must be rectangular.
func LoadCSV(b []byte) (*Dataset, error) {
	records, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		return nil, newParseError(FormatCSV, err)
	}
	return fromRecords(FormatCSV, records)
}

// LoadXLS parses a legacy binary Excel workbook. Only the first sheet is read.
func LoadXLS(b []byte) (*Dataset, error) {
	wb, err := xls.OpenReader(bytes.NewReader(b), "utf-8")
	if err != nil {
		return nil, newParseError(FormatXLS, err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, newParseError(FormatXLS, ErrEmptyTable)
	}
	records := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		// LastCol is one past the last occupied column.
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		records = append(records, cells)
	}
	return fromRecords(FormatXLS, padRecords(records))
}

// xlsRow fetches one sheet row. WorkSheet.Row panics on rows that never got
// a ROW record, such as fully blank rows inside the used range.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// LoadXLSX parses an OOXML Excel workbook. Only the first sheet is read.
func LoadXLSX(b []byte) (*Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, newParseError(FormatXLSX, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, newParseError(FormatXLSX, ErrEmptyTable)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, newParseError(FormatXLSX, err)
	}
	return fromRecords(FormatXLSX, padRecords(records))
}

func fromRecords(f Format, records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, newParseError(f, ErrEmptyTable)
	}
	ds, err := New(records[0], records[1:])
	if err != nil {
		return nil, newParseError(f, err)
	}
	return ds, nil
}

// padRecords right-pads short rows with empty cells. Spreadsheet readers trim
// trailing blanks, which would otherwise look like ragged rows.
func padRecords(records [][]string) [][]string {
	var width int
	for _, row := range records {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range records {
		for len(row) < width {
			row = append(row, "")
		}
		records[i] = row
	}
	return records
}
