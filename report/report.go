// Package report packages fit results and diagnostics into named tables and
// serializes them as an Excel workbook for download. It performs no
// statistical computation of its own.
package report

import (
	"github.com/frmquant/regdiag"
)

// Sheet names of the exported workbook, matching the product's report layout.
const (
	SheetCoefficients = "回归系数"
	SheetCollinearity = "VIF共线性分析"
	SheetSummary      = "模型统计量"
)

// ContentType is the MIME type of the exported workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is one named sheet of the report. Row cells keep their full
// floating-point values; any display rounding is left to the consumer.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Assemble packages a fit, its diagnostics and their severity labels into
// the report tables: the coefficient table, the collinearity table (only
// when VIFs were computed) and the model summary.
func Assemble(fit *regdiag.FitResult, diag *regdiag.DiagnosticResult, labels regdiag.SeverityLabels) []Table {
	coeffs := Table{
		Name:    SheetCoefficients,
		Columns: []string{"Variable", "Coefficient", "Std. Error", "t-Stat", "P-value"},
		Rows:    make([][]any, len(fit.RegressorNames)),
	}
	for i, name := range fit.RegressorNames {
		coeffs.Rows[i] = []any{name, fit.Coefficients[i], fit.StandardErrors[i], fit.TStats[i], fit.PValues[i]}
	}

	tables := []Table{coeffs}

	if len(labels.Regressors) > 0 {
		collinearity := Table{
			Name:    SheetCollinearity,
			Columns: []string{"Variable", "VIF", "Assessment"},
			Rows:    make([][]any, len(labels.Regressors)),
		}
		for i, reg := range labels.Regressors {
			collinearity.Rows[i] = []any{reg.Name, reg.VIF, string(reg.Severity)}
		}
		tables = append(tables, collinearity)
	}

	summary := Table{
		Name:    SheetSummary,
		Columns: []string{"Metric", "Value"},
		Rows: [][]any{
			{"R-Squared", fit.R2},
			{"Adj. R-Squared", fit.AdjustedR2},
			{"F-stat", fit.FStat},
			{"Durbin-Watson", diag.DurbinWatson},
			{"Observations", fit.Observations},
			{"Autocorrelation", string(labels.Autocorrelation)},
		},
	}
	if labels.Collinearity != "" {
		summary.Rows = append(summary.Rows, []any{"Collinearity", string(labels.Collinearity)})
	}
	return append(tables, summary)
}
