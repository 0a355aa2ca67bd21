package regdiag

import (
	"io"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frmquant/regdiag/dataset"
	"github.com/frmquant/regdiag/logger"
)

func TestMain(m *testing.M) {
	logger.SetLogsOutput(io.Discard)
	os.Exit(m.Run())
}

// numericDataset builds a dataset from named float columns, in order.
func numericDataset(t *testing.T, names []string, cols [][]float64) *dataset.Dataset {
	t.Helper()
	rows := make([][]string, len(cols[0]))
	for r := range rows {
		row := make([]string, len(cols))
		for c := range cols {
			row[c] = strconv.FormatFloat(cols[c][r], 'g', -1, 64)
		}
		rows[r] = row
	}
	ds, err := dataset.New(names, rows)
	require.NoError(t, err)
	return ds
}

var (
	sampleY  = []float64{10.5, 12.2, 11.8, 13.1, 14.5, 12.9, 15.2, 16.0}
	sampleX1 = []float64{2.1, 2.5, 2.3, 2.8, 3.2, 2.7, 3.5, 3.8}
)

func sampleSLRDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	return numericDataset(t, []string{"Dependent_Y", "Independent_X1"}, [][]float64{sampleY, sampleX1})
}

// closed-form simple regression, as the reference solver
func simpleOLS(x, y []float64) (intercept, slope float64) {
	n := float64(len(x))
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n
	var sxx, sxy float64
	for i := range x {
		sxx += (x[i] - meanX) * (x[i] - meanX)
		sxy += (x[i] - meanX) * (y[i] - meanY)
	}
	slope = sxy / sxx
	intercept = meanY - slope*meanX
	return intercept, slope
}

func TestFitSimpleRegression(t *testing.T) {
	ds := sampleSLRDataset(t)

	fit, err := Fit(ds, "Dependent_Y", []string{"Independent_X1"})
	require.NoError(t, err)

	wantIntercept, wantSlope := simpleOLS(sampleX1, sampleY)

	require.Equal(t, []string{"const", "Independent_X1"}, fit.RegressorNames)
	require.InDelta(t, wantIntercept, fit.Coefficients[0], 1e-9)
	require.InDelta(t, wantSlope, fit.Coefficients[1], 1e-9)
	require.Greater(t, fit.R2, 0.9)
	require.Equal(t, 8, fit.Observations)
	require.Equal(t, 1, fit.NumRegressors)
	require.Equal(t, 6, fit.ResidualDegreesOfFreedom)

	// residuals and fitted values reconstruct the observations
	require.Len(t, fit.Residuals, 8)
	for i := range sampleY {
		require.InDelta(t, sampleY[i], fit.Fitted[i]+fit.Residuals[i], 1e-12)
	}

	// the slope of a near-linear positive relationship is significant
	require.Greater(t, fit.TStats[1], 0.0)
	require.Less(t, fit.PValues[1], 0.05)
	for j := range fit.Coefficients {
		require.InDelta(t, fit.Coefficients[j]/fit.StandardErrors[j], fit.TStats[j], 1e-12)
	}

	// single regressor: no collinearity diagnostics
	diag := Diagnose(fit)
	require.Nil(t, diag.VIFs)
	require.GreaterOrEqual(t, diag.DurbinWatson, 0.0)
}

func TestFitRecoversExactModel(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6, 7}
	x2 := []float64{2, 1, 4, 3, 6, 5, 8}
	y := make([]float64, len(x1))
	for i := range y {
		y[i] = 1 + 2*x1[i] - 3*x2[i]
	}
	ds := numericDataset(t, []string{"y", "x1", "x2"}, [][]float64{y, x1, x2})

	fit, err := Fit(ds, "y", []string{"x1", "x2"})
	require.NoError(t, err)
	require.InDelta(t, 1, fit.Coefficients[0], 1e-9)
	require.InDelta(t, 2, fit.Coefficients[1], 1e-9)
	require.InDelta(t, -3, fit.Coefficients[2], 1e-9)
	require.InDelta(t, 1, fit.R2, 1e-9)
}

func TestFitIsIdempotent(t *testing.T) {
	ds := sampleSLRDataset(t)

	first, err := Fit(ds, "Dependent_Y", []string{"Independent_X1"})
	require.NoError(t, err)
	second, err := Fit(ds, "Dependent_Y", []string{"Independent_X1"})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFitSampleSizeBoundary(t *testing.T) {
	// k=1, p=2: two observations must be rejected, three are the minimum.
	small := numericDataset(t, []string{"y", "x"}, [][]float64{{10.5, 12.2}, {2.1, 2.5}})
	_, err := Fit(small, "y", []string{"x"})
	var insufficient *InsufficientSampleError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, 2, insufficient.Observations)
	require.Equal(t, 2, insufficient.Parameters)

	minimum := numericDataset(t, []string{"y", "x"}, [][]float64{{10.5, 12.2, 11.8}, {2.1, 2.5, 2.3}})
	fit, err := Fit(minimum, "y", []string{"x"})
	require.NoError(t, err)
	require.Equal(t, 1, fit.ResidualDegreesOfFreedom)
}

func TestValidateSelection(t *testing.T) {
	ds := numericDataset(t, []string{"y", "x1", "x2"},
		[][]float64{{1, 2, 3, 4}, {4, 3, 2, 1}, {1, 3, 2, 4}})
	text, err := dataset.New([]string{"y", "label"}, [][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}})
	require.NoError(t, err)

	tests := []struct {
		name       string
		ds         *dataset.Dataset
		yName      string
		xNames     []string
		wantColumn string
	}{
		{"missing dependent", ds, "nope", []string{"x1"}, "nope"},
		{"missing regressor", ds, "y", []string{"x1", "gone"}, "gone"},
		{"empty regressor set", ds, "y", nil, ""},
		{"dependent as regressor", ds, "y", []string{"y"}, "y"},
		{"non-numeric regressor", text, "y", []string{"label"}, "label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelection(tt.ds, tt.yName, tt.xNames)
			var invalid *InvalidSelectionError
			require.ErrorAs(t, err, &invalid)
			require.Equal(t, tt.wantColumn, invalid.Column)
		})
	}

	require.NoError(t, ValidateSelection(ds, "y", []string{"x1", "x2"}))
}

func TestValidateSelectionRunsBeforeFit(t *testing.T) {
	ds := sampleSLRDataset(t)
	_, err := Fit(ds, "Missing_Y", []string{"Independent_X1"})
	var invalid *InvalidSelectionError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "Missing_Y", invalid.Column)
}

func TestFitSingularDesign(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6}
	x2 := make([]float64, len(x1)) // exact multiple of x1
	y := []float64{3, 5, 8, 9, 12, 14}
	for i := range x1 {
		x2[i] = 2 * x1[i]
	}
	ds := numericDataset(t, []string{"y", "x1", "x2"}, [][]float64{y, x1, x2})

	fit, err := Fit(ds, "y", []string{"x1", "x2"})
	require.Nil(t, fit)
	var singular *SingularDesignMatrixError
	require.ErrorAs(t, err, &singular)
	require.Equal(t, []string{"x1", "x2"}, singular.Regressors)
}

func TestFitConcurrent(t *testing.T) {
	good := numericDataset(t, []string{"y", "x"},
		[][]float64{{3, 5, 8, 9, 12, 14}, {1, 2, 3, 4, 5, 6}})

	x1 := []float64{1, 2, 3, 4, 5, 6}
	x2 := make([]float64, len(x1)) // exact multiple of x1
	for i := range x1 {
		x2[i] = 2 * x1[i]
	}
	bad := numericDataset(t, []string{"y", "x1", "x2"},
		[][]float64{{3, 5, 8, 9, 12, 14}, x1, x2})

	want, err := Fit(good, "y", []string{"x"})
	require.NoError(t, err)

	const n = 16
	fits := make([]*FitResult, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				fits[i], errs[i] = Fit(good, "y", []string{"x"})
			} else {
				fits[i], errs[i] = Fit(bad, "y", []string{"x1", "x2"})
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if i%2 == 0 {
			require.NoError(t, errs[i])
			require.Equal(t, want.Coefficients, fits[i].Coefficients)
			continue
		}
		var singular *SingularDesignMatrixError
		require.ErrorAs(t, errs[i], &singular)
	}
}

func TestConstantRegressors(t *testing.T) {
	ds := numericDataset(t, []string{"y", "x1", "x2"},
		[][]float64{{1, 2, 3, 4}, {7, 7, 7, 7}, {1, 3, 2, 4}})
	require.Equal(t, []string{"x1"}, ConstantRegressors(ds, []string{"x1", "x2"}))
	require.Empty(t, ConstantRegressors(ds, []string{"x2"}))
}

func TestBackwardEliminate(t *testing.T) {
	y := []float64{100, 120, 110, 130, 145, 125, 150, 165, 140, 155}
	x1 := []float64{10, 12, 11, 13, 14, 12, 15, 16, 14, 15}
	x2 := []float64{0.5, 0.7, 0.6, 0.8, 0.9, 0.8, 1.0, 1.1, 0.8, 1.0}
	ds := numericDataset(t, []string{"y", "x1", "x2"}, [][]float64{y, x1, x2})

	// a zero threshold forces elimination all the way down
	fits, err := BackwardEliminate(ds, "y", []string{"x1", "x2"}, 0, nil)
	require.NoError(t, err)
	require.Len(t, fits, 2)
	require.Equal(t, 2, fits[0].NumRegressors)
	require.Equal(t, 1, fits[1].NumRegressors)

	// keeping every regressor stops elimination immediately
	keep := map[string]struct{}{"x1": {}, "x2": {}}
	fits, err = BackwardEliminate(ds, "y", []string{"x1", "x2"}, 0, keep)
	require.NoError(t, err)
	require.Len(t, fits, 1)
	require.Equal(t, 2, fits[0].NumRegressors)
}

func TestPredictAndFormula(t *testing.T) {
	ds := sampleSLRDataset(t)
	fit, err := Fit(ds, "Dependent_Y", []string{"Independent_X1"})
	require.NoError(t, err)

	got, err := fit.Predict([]float64{sampleX1[0]})
	require.NoError(t, err)
	require.InDelta(t, fit.Fitted[0], got, 1e-12)

	_, err = fit.Predict([]float64{1, 2})
	require.ErrorIs(t, err, ErrInvalidArgument)

	require.Contains(t, fit.Formula(), "Dependent_Y =")
	require.Contains(t, fit.Formula(), "*Independent_X1")
}
