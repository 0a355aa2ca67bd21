package regdiag

import (
	"math"

	"github.com/frmquant/regdiag/logger"
)

// VIF is the variance inflation factor of one independent variable: how much
// the variance of its coefficient is inflated by correlation with the other
// regressors. Value is +Inf when the variable is an exact linear combination
// of the others.
type VIF struct {
	Name  string
	Value float64
}

// DiagnosticResult carries the residual diagnostics of one fit. VIFs is nil
// when the model has fewer than two regressors, since collinearity needs at
// least two.
type DiagnosticResult struct {
	DurbinWatson float64
	VIFs         []VIF
}

// DurbinWatson computes the Durbin-Watson statistic of a residual sequence
// in the order given. Row order is semantically meaningful here: the
// statistic assumes the observations form an orderly (typically time-ordered)
// sequence, and reordering rows changes the result. An all-zero residual
// sequence, as produced by a perfect fit, has no serial correlation to
// measure and yields 2, the statistic's no-autocorrelation value.
func DurbinWatson(residuals []float64) float64 {
	var num, den float64
	for i, e := range residuals {
		den += e * e
		if i > 0 {
			d := e - residuals[i-1]
			num += d * d
		}
	}
	if den == 0 {
		return 2
	}
	return num / den
}

// Diagnose evaluates the residual diagnostics of a fit: the Durbin-Watson
// statistic always, and per-regressor variance inflation factors whenever
// more than one regressor is present.
func Diagnose(fit *FitResult) *DiagnosticResult {
	diag := &DiagnosticResult{DurbinWatson: DurbinWatson(fit.Residuals)}
	if fit.NumRegressors > 1 {
		diag.VIFs = varianceInflationFactors(fit.RegressorNames[1:], fit.regressors)
	}
	return diag
}

// varianceInflationFactors regresses each independent variable on all the
// others (with an intercept) and reports VIF_j = 1/(1−R²_j). A variable that
// is perfectly explained by the rest gets the +Inf sentinel instead of a
// division by zero.
func varianceInflationFactors(names []string, xs [][]float64) []VIF {
	vifs := make([]VIF, len(xs))
	others := make([][]float64, 0, len(xs)-1)
	for j := range xs {
		others = others[:0]
		for i := range xs {
			if i != j {
				others = append(others, xs[i])
			}
		}

		vifs[j] = VIF{Name: names[j], Value: math.Inf(1)}
		sol, err := solveOLS(xs[j], others, nil)
		if err != nil {
			// The auxiliary design is a subset of a design that already
			// fit, so this only triggers on numerical degeneracy; report
			// the sentinel rather than failing the whole diagnosis.
			logger.Warn.Printf("VIF regression for %s failed: %v", names[j], err)
			continue
		}
		if tolerance := 1 - sol.r2; tolerance > 0 {
			vifs[j].Value = 1 / tolerance
		}
	}
	return vifs
}
