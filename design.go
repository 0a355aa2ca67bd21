package regdiag

import (
	"gonum.org/v1/gonum/mat"

	"github.com/frmquant/regdiag/dataset"
)

// InterceptLabel is the name the intercept term carries in fit results, in
// keeping with the convention of common statistics packages.
const InterceptLabel = "const"

// ValidateSelection checks a variable selection against a dataset without
// fitting anything. It returns an *InvalidSelectionError when a name is
// missing, non-numeric, empty or self-referential, and an
// *InsufficientSampleError when the observation count does not strictly
// exceed the parameter count (regressors plus intercept).
func ValidateSelection(ds *dataset.Dataset, yName string, xNames []string) error {
	_, _, err := selectVariables(ds, yName, xNames)
	return err
}

// selectVariables resolves a selection into the response values and the
// regressor columns, taken verbatim in the order given. It runs the full
// validation chain so that fitting an underdetermined or misconfigured
// system is never attempted.
func selectVariables(ds *dataset.Dataset, yName string, xNames []string) ([]float64, [][]float64, error) {
	if len(xNames) == 0 {
		return nil, nil, &InvalidSelectionError{Reason: "no independent variables selected"}
	}
	if !ds.Has(yName) {
		return nil, nil, &InvalidSelectionError{Column: yName, Reason: "not found"}
	}
	for _, name := range xNames {
		if name == yName {
			return nil, nil, &InvalidSelectionError{Column: name, Reason: "selected as both dependent and independent variable"}
		}
		if !ds.Has(name) {
			return nil, nil, &InvalidSelectionError{Column: name, Reason: "not found"}
		}
	}

	y, ok := ds.NumericColumn(yName)
	if !ok {
		return nil, nil, &InvalidSelectionError{Column: yName, Reason: "is not numeric"}
	}
	xs := make([][]float64, len(xNames))
	for i, name := range xNames {
		col, ok := ds.NumericColumn(name)
		if !ok {
			return nil, nil, &InvalidSelectionError{Column: name, Reason: "is not numeric"}
		}
		xs[i] = col
	}

	n, p := ds.Rows(), len(xNames)+1
	if n <= p {
		return nil, nil, &InsufficientSampleError{Observations: n, Parameters: p}
	}
	return y, xs, nil
}

// buildDesign assembles the response vector and the design matrix with a
// leading intercept column of ones.
func buildDesign(y []float64, xs [][]float64) (*mat.Dense, *mat.Dense) {
	n, p := len(y), len(xs)+1
	yDense := mat.NewDense(n, 1, y)
	xDense := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		xDense.Set(i, 0, 1)
	}
	for j, col := range xs {
		xDense.SetCol(j+1, col)
	}
	return yDense, xDense
}

// ConstantRegressors returns the names of selected independent variables
// whose observations are all identical. Such a column duplicates the
// intercept and makes the design matrix singular, so callers may want to
// report it before fitting.
func ConstantRegressors(ds *dataset.Dataset, xNames []string) []string {
	var constant []string

EACH_REGRESSOR:
	for _, name := range xNames {
		col, ok := ds.NumericColumn(name)
		if !ok || len(col) == 0 {
			continue
		}
		for _, v := range col[1:] {
			if v != col[0] {
				continue EACH_REGRESSOR
			}
		}
		constant = append(constant, name)
	}

	return constant
}
