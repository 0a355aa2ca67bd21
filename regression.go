// Package regdiag fits ordinary least-squares linear models over uploaded
// tabular datasets and derives the diagnostic statistics a reviewer checks
// before trusting one: coefficient significance, R², the F-test,
// Durbin-Watson autocorrelation and variance-inflation-factor collinearity,
// together with threshold-based severity verdicts.
//
// Each analysis run is a pure function of a dataset and a variable
// selection; no state is carried between runs.
package regdiag

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/frmquant/regdiag/dataset"
	"github.com/frmquant/regdiag/logger"
)

// ErrInvalidArgument signals that any of given arguments to call the function was invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// olsSolution carries the raw outputs of one least-squares solve. The
// covariance pieces stay in matrix form until the caller turns them into
// standard errors.
type olsSolution struct {
	coeffs    []float64 // length p, intercept first
	fitted    []float64
	residuals []float64
	xtxInv    *mat.Dense // (XᵗX)⁻¹, p×p
	ssRes     float64    // residual sum of squares
	ssTot     float64    // centered total sum of squares
	r2        float64
}

// solveOLS computes the least-squares coefficients of y on xs (with an
// intercept) via QR factorization: the coefficients come out of a back
// substitution against the upper triangular factor, with no need to invert
// the design matrix itself. Only (XᵗX)⁻¹ = R⁻¹R⁻ᵗ requires an inversion, of
// the small p×p triangular factor, and a singular or near-singular factor
// surfaces there as a *SingularDesignMatrixError before any coefficient is
// produced.
func solveOLS(y []float64, xs [][]float64, xNames []string) (*olsSolution, error) {
	n, p := len(y), len(xs)+1
	yDense, xDense := buildDesign(y, xs)

	qr, qrQ, qrR := new(mat.QR), new(mat.Dense), new(mat.Dense)
	qr.Factorize(xDense)
	qr.QTo(qrQ)
	qr.RTo(qrR)

	// A vanishing pivot of R means some regressor is a linear combination of
	// the others; the threshold is relative to the largest pivot, LAPACK
	// style. Catching it here keeps the back substitution from dividing by
	// (almost) zero.
	eps := math.Nextafter(1, 2) - 1
	var maxPivot float64
	for i := 0; i < p; i++ {
		if a := math.Abs(qrR.At(i, i)); a > maxPivot {
			maxPivot = a
		}
	}
	for i := 0; i < p; i++ {
		if math.Abs(qrR.At(i, i)) <= float64(n)*eps*maxPivot {
			return nil, wrapAsSingularDesignError(matConditionErrorInf, xNames)
		}
	}

	rInv := new(mat.Dense)
	if err := rInv.Inverse(qrR.Slice(0, p, 0, p)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, wrapAsSingularDesignError(err, xNames)
		}
		return nil, err
	}

	xtxInv := new(mat.Dense)
	xtxInv.Mul(rInv, rInv.T())

	qTY := new(mat.Dense)
	qTY.Mul(qrQ.T(), yDense)

	// R is upper triangular, so back substitution over Qᵗy recovers the
	// coefficients directly.
	coeffs := make([]float64, p)
	for i := p - 1; i >= 0; i-- {
		coeffs[i] = qTY.At(i, 0)
		for j := i + 1; j < p; j++ {
			coeffs[i] -= coeffs[j] * qrR.At(i, j)
		}
		coeffs[i] /= qrR.At(i, i)
	}

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	var ssRes float64
	for i := 0; i < n; i++ {
		var v float64
		for j := 0; j < p; j++ {
			v += xDense.At(i, j) * coeffs[j]
		}
		fitted[i] = v
		residuals[i] = y[i] - v
		ssRes += residuals[i] * residuals[i]
	}

	meanY := stat.Mean(y, nil)
	var ssTot float64
	for _, v := range y {
		ssTot += (v - meanY) * (v - meanY)
	}

	return &olsSolution{
		coeffs:    coeffs,
		fitted:    fitted,
		residuals: residuals,
		xtxInv:    xtxInv,
		ssRes:     ssRes,
		ssTot:     ssTot,
		r2:        1 - ssRes/ssTot,
	}, nil
}

// Fit estimates an ordinary least-squares model of the named dependent
// variable on the named independent variables, taken verbatim in the order
// given. The selection is validated first, so an underdetermined or
// misconfigured system is rejected before any matrix is built. A perfectly
// or nearly collinear regressor set aborts with a
// *SingularDesignMatrixError and no partial result.
func Fit(ds *dataset.Dataset, yName string, xNames []string) (*FitResult, error) {
	y, xs, err := selectVariables(ds, yName, xNames)
	if err != nil {
		return nil, err
	}

	n, k := len(y), len(xs)
	p := k + 1
	residualDF := n - p

	sol, err := solveOLS(y, xs, xNames)
	if err != nil {
		if errors.Is(err, ErrExactlySingularDesign) || errors.Is(err, ErrNearSingularDesign) {
			logger.Err.Printf("Fit aborted: %v", err)
		}
		return nil, err
	}

	// Residual variance over the residual degrees of freedom; the
	// coefficient covariance is its product with (XᵗX)⁻¹.
	sigma2 := sol.ssRes / float64(residualDF)

	standardErrors := make([]float64, p)
	tStats := make([]float64, p)
	pValues := make([]float64, p)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(residualDF)}
	for j := 0; j < p; j++ {
		standardErrors[j] = math.Sqrt(sigma2 * sol.xtxInv.At(j, j))
		tStats[j] = sol.coeffs[j] / standardErrors[j]
		pValues[j] = tDist.Survival(math.Abs(tStats[j])) * 2
	}

	adjustedR2 := 1 - (1-sol.r2)*float64(n-1)/float64(residualDF)
	fStat := ((sol.ssTot - sol.ssRes) / float64(k)) / (sol.ssRes / float64(residualDF))
	fProb := distuv.F{D1: float64(k), D2: float64(residualDF)}.Survival(fStat)

	names := make([]string, p)
	names[0] = InterceptLabel
	copy(names[1:], xNames)

	logger.Info.Printf("Completed: %d observations over %d regressors", n, k)

	return &FitResult{
		DependentLabel:           yName,
		RegressorNames:           names,
		Coefficients:             sol.coeffs,
		StandardErrors:           standardErrors,
		TStats:                   tStats,
		PValues:                  pValues,
		R2:                       sol.r2,
		AdjustedR2:               adjustedR2,
		FStat:                    fStat,
		FProb:                    fProb,
		Residuals:                sol.residuals,
		Fitted:                   sol.fitted,
		Observations:             n,
		NumRegressors:            k,
		ResidualDegreesOfFreedom: residualDF,
		regressors:               xs,
	}, nil
}

// BackwardEliminate repeatedly fits the model and drops the regressor whose
// coefficient p-value is the highest above the given threshold, until every
// remaining p-value passes or a single regressor is left. Names listed in
// keep are never dropped. It returns the fit of every round, last one best.
func BackwardEliminate(ds *dataset.Dataset, yName string, xNames []string, pThreshold float64, keep map[string]struct{}) ([]*FitResult, error) {
	remaining := make([]string, len(xNames))
	copy(remaining, xNames)

	var fits []*FitResult
	for {
		fit, err := Fit(ds, yName, remaining)
		if err != nil {
			return fits, err
		}
		fits = append(fits, fit)
		if fit.NumRegressors == 1 {
			break
		}

		dropIdx, border := -1, pThreshold
		for i, name := range fit.RegressorNames[1:] {
			if _, ok := keep[name]; ok {
				continue
			}
			if fit.PValues[i+1] > border {
				dropIdx, border = i, fit.PValues[i+1]
			}
		}
		if dropIdx < 0 {
			break
		}
		logger.Info.Printf("Eliminate %s having p-value = %f", remaining[dropIdx], border)
		remaining = append(remaining[:dropIdx], remaining[dropIdx+1:]...)
	}
	return fits, nil
}
