package regdiag

import (
	"fmt"
	"strings"
)

// FitResult is the complete outcome of one successful least-squares fit. It
// is owned by a single analysis run: a new selection produces a new result,
// never a mutation of an old one. Index 0 of every per-coefficient vector is
// the intercept, named InterceptLabel in RegressorNames.
type FitResult struct {
	DependentLabel string
	RegressorNames []string // intercept first, then the regressors verbatim

	Coefficients   []float64
	StandardErrors []float64
	TStats         []float64
	PValues        []float64

	R2         float64
	AdjustedR2 float64
	FStat      float64
	FProb      float64 // Prob(F-statistic)

	Residuals []float64 // y − Xβ, in original row order
	Fitted    []float64

	Observations             int
	NumRegressors            int // k, intercept excluded
	ResidualDegreesOfFreedom int // N − (k+1)

	// regressor columns in selection order, retained so diagnostics can run
	// the auxiliary VIF regressions without the original dataset
	regressors [][]float64
}

// Predict computes the fitted value for one observation of the independent
// variables, given in selection order.
func (m *FitResult) Predict(vars []float64) (float64, error) {
	if len(vars) != m.NumRegressors {
		return 0, ErrInvalidArgument
	}
	v := m.Coefficients[0]
	for i, x := range vars {
		v += x * m.Coefficients[i+1]
	}
	return v, nil
}

func formatFloatForFormula(f float64) string {
	if f < 0 {
		return fmt.Sprintf(" - %.4f", -f)
	}
	return fmt.Sprintf(" + %.4f", f)
}

// Formula renders the estimated model as a human-readable equation.
func (m *FitResult) Formula() string {
	var b strings.Builder
	b.WriteString(m.DependentLabel + " =")
	b.WriteString(strings.TrimPrefix(formatFloatForFormula(m.Coefficients[0]), " +"))
	for i, name := range m.RegressorNames[1:] {
		b.WriteString(formatFloatForFormula(m.Coefficients[i+1]))
		b.WriteString("*" + name)
	}
	return b.String()
}
