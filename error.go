package regdiag

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNearSingularDesign matches a SingularDesignMatrixError caused by a
	// near-singular (ill-conditioned) design matrix.
	ErrNearSingularDesign = &SingularDesignMatrixError{isExactlySingular: false}
	// ErrExactlySingularDesign matches a SingularDesignMatrixError caused by
	// an exactly singular design matrix (perfectly collinear regressors).
	ErrExactlySingularDesign = &SingularDesignMatrixError{isExactlySingular: true}

	matConditionErrorInf = mat.Condition(math.Inf(1)) // matrix exactly singular
)

// InvalidSelectionError reports a variable selection that cannot be analyzed:
// a missing column, a non-numeric column, an empty regressor set, or the
// dependent variable selected as its own regressor.
type InvalidSelectionError struct {
	// Column is the offending column name, empty when the problem is the
	// selection as a whole.
	Column string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	if e.Column == "" {
		return "invalid variable selection: " + e.Reason
	}
	return fmt.Sprintf("invalid variable selection: column %q %s", e.Column, e.Reason)
}

// InsufficientSampleError reports a selection whose parameter count is not
// strictly below the observation count. Fitting such a configuration is never
// attempted.
type InsufficientSampleError struct {
	Observations int // N
	Parameters   int // k+1, intercept included
}

func (e *InsufficientSampleError) Error() string {
	return fmt.Sprintf("insufficient sample: need more than %d observations, have %d", e.Parameters, e.Observations)
}

// SingularDesignMatrixError reports a design matrix whose regressors are
// perfectly (or nearly) collinear, so the least-squares system has no stable
// solution. No partial fit result is produced.
type SingularDesignMatrixError struct {
	err               error
	isExactlySingular bool
	// Regressors names the selected independent variables, so the caller can
	// point the user at the configuration rather than at the math.
	Regressors []string
}

func (e *SingularDesignMatrixError) Error() string {
	kind := "near-singular"
	if e.isExactlySingular {
		kind = "singular"
	}
	if len(e.Regressors) == 0 {
		return fmt.Sprintf("%s design matrix", kind)
	}
	return fmt.Sprintf("%s design matrix over regressors [%s]", kind, strings.Join(e.Regressors, ", "))
}

func (e *SingularDesignMatrixError) Is(err error) bool {
	if sErr, ok := err.(*SingularDesignMatrixError); ok {
		return e.isExactlySingular == sErr.isExactlySingular
	}
	return false
}

func (e *SingularDesignMatrixError) Unwrap() error {
	return e.err
}

// ExactlySingular reports whether the design was exactly singular rather than
// merely ill-conditioned.
func (e *SingularDesignMatrixError) ExactlySingular() bool {
	return e.isExactlySingular
}

func wrapAsSingularDesignError(err error, regressors []string) *SingularDesignMatrixError {
	return &SingularDesignMatrixError{
		err:               err,
		isExactlySingular: errors.Is(err, matConditionErrorInf),
		Regressors:        regressors,
	}
}
