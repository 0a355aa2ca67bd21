package regdiag

// Autocorrelation is the qualitative verdict on the Durbin-Watson statistic.
type Autocorrelation string

const (
	// AutocorrelationPositive is reported when DW < 1.5.
	AutocorrelationPositive Autocorrelation = "likely positive autocorrelation"
	// AutocorrelationNegative is reported when DW > 2.5.
	AutocorrelationNegative Autocorrelation = "likely negative autocorrelation"
	// AutocorrelationNone is reported when 1.5 ≤ DW ≤ 2.5.
	AutocorrelationNone Autocorrelation = "no significant autocorrelation"
)

// Collinearity is the qualitative verdict on a variance inflation factor.
type Collinearity string

const (
	// CollinearitySevere is reported when VIF > 10.
	CollinearitySevere Collinearity = "severe multicollinearity"
	// CollinearityModerate is reported when 5 < VIF ≤ 10.
	CollinearityModerate Collinearity = "moderate multicollinearity"
	// CollinearityNone is reported when VIF ≤ 5.
	CollinearityNone Collinearity = "no notable collinearity"
)

// ClassifyAutocorrelation maps a Durbin-Watson value to its severity band.
func ClassifyAutocorrelation(dw float64) Autocorrelation {
	switch {
	case dw < 1.5:
		return AutocorrelationPositive
	case dw > 2.5:
		return AutocorrelationNegative
	default:
		return AutocorrelationNone
	}
}

// ClassifyCollinearity maps a variance inflation factor to its severity band.
func ClassifyCollinearity(vif float64) Collinearity {
	switch {
	case vif > 10:
		return CollinearitySevere
	case vif > 5:
		return CollinearityModerate
	default:
		return CollinearityNone
	}
}

// RegressorCollinearity pairs one independent variable with its collinearity
// verdict.
type RegressorCollinearity struct {
	Name     string
	VIF      float64
	Severity Collinearity
}

// SeverityLabels is the stateless classification of a DiagnosticResult. It
// is recomputed from the diagnostic values every time and never persisted
// on its own.
type SeverityLabels struct {
	Autocorrelation Autocorrelation
	// Collinearity is the overall verdict, taken over the maximum VIF.
	// Empty when the diagnosis carried no VIFs (single-regressor model).
	Collinearity Collinearity
	Regressors   []RegressorCollinearity
}

// Classify derives severity labels from diagnostic values.
func Classify(diag *DiagnosticResult) SeverityLabels {
	labels := SeverityLabels{Autocorrelation: ClassifyAutocorrelation(diag.DurbinWatson)}
	if len(diag.VIFs) == 0 {
		return labels
	}

	labels.Regressors = make([]RegressorCollinearity, len(diag.VIFs))
	maxVIF := diag.VIFs[0].Value
	for i, v := range diag.VIFs {
		labels.Regressors[i] = RegressorCollinearity{
			Name:     v.Name,
			VIF:      v.Value,
			Severity: ClassifyCollinearity(v.Value),
		}
		if v.Value > maxVIF {
			maxVIF = v.Value
		}
	}
	labels.Collinearity = ClassifyCollinearity(maxVIF)
	return labels
}
