package regdiag

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyAutocorrelation(t *testing.T) {
	tests := []struct {
		dw   float64
		want Autocorrelation
	}{
		{0.3, AutocorrelationPositive},
		{1.49, AutocorrelationPositive},
		{1.5, AutocorrelationNone}, // inclusive lower bound
		{2.0, AutocorrelationNone},
		{2.5, AutocorrelationNone}, // inclusive upper bound
		{2.51, AutocorrelationNegative},
		{3.8, AutocorrelationNegative},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ClassifyAutocorrelation(tt.dw), "dw=%v", tt.dw)
	}
}

func TestClassifyCollinearity(t *testing.T) {
	tests := []struct {
		vif  float64
		want Collinearity
	}{
		{1.0, CollinearityNone},
		{5.0, CollinearityNone}, // 5 itself is still unremarkable
		{5.01, CollinearityModerate},
		{10.0, CollinearityModerate}, // 10 itself is still moderate
		{10.01, CollinearitySevere},
		{math.Inf(1), CollinearitySevere},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ClassifyCollinearity(tt.vif), "vif=%v", tt.vif)
	}
}

func TestClassifyOverallVerdictUsesMaxVIF(t *testing.T) {
	diag := &DiagnosticResult{
		DurbinWatson: 2.1,
		VIFs: []VIF{
			{Name: "x1", Value: 1.2},
			{Name: "x2", Value: 7.5},
			{Name: "x3", Value: 2.0},
		},
	}

	labels := Classify(diag)
	require.Equal(t, AutocorrelationNone, labels.Autocorrelation)
	require.Equal(t, CollinearityModerate, labels.Collinearity)
	require.Len(t, labels.Regressors, 3)
	require.Equal(t, CollinearityNone, labels.Regressors[0].Severity)
	require.Equal(t, CollinearityModerate, labels.Regressors[1].Severity)
	require.Equal(t, CollinearityNone, labels.Regressors[2].Severity)
}

func TestClassifyWithoutVIFs(t *testing.T) {
	labels := Classify(&DiagnosticResult{DurbinWatson: 1.2})
	require.Equal(t, AutocorrelationPositive, labels.Autocorrelation)
	require.Equal(t, Collinearity(""), labels.Collinearity)
	require.Empty(t, labels.Regressors)
}
