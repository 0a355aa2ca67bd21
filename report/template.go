package report

import "bytes"

// Upload templates with sample data sized so that a fit of the sample itself
// has spare degrees of freedom.

// SLRTemplate returns a workbook with the simple-regression upload template:
// one dependent and one independent variable over eight observations.
func SLRTemplate() ([]byte, error) {
	return templateWorkbook(
		[]string{"Dependent_Y", "Independent_X1"},
		[][]float64{
			{10.5, 12.2, 11.8, 13.1, 14.5, 12.9, 15.2, 16.0},
			{2.1, 2.5, 2.3, 2.8, 3.2, 2.7, 3.5, 3.8},
		},
	)
}

// MLRTemplate returns a workbook with the multiple-regression upload
// template: one dependent and three independent variables over ten
// observations.
func MLRTemplate() ([]byte, error) {
	return templateWorkbook(
		[]string{"Dependent_Y", "X1_Variable", "X2_Variable", "X3_Variable"},
		[][]float64{
			{100, 120, 110, 130, 145, 125, 150, 165, 140, 155},
			{10, 12, 11, 13, 14, 12, 15, 16, 14, 15},
			// deliberately not an exact linear function of X1, so the
			// template itself fits without a singular design
			{0.5, 0.7, 0.6, 0.8, 0.9, 0.8, 1.0, 1.1, 0.8, 1.0},
			{20, 25, 22, 28, 32, 26, 35, 38, 30, 34},
		},
	)
}

func templateWorkbook(headers []string, cols [][]float64) ([]byte, error) {
	rows := make([][]any, len(cols[0]))
	for r := range rows {
		row := make([]any, len(cols))
		for c := range cols {
			row[c] = cols[c][r]
		}
		rows[r] = row
	}

	table := Table{Name: "Sheet1", Columns: headers, Rows: rows}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, []Table{table}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
