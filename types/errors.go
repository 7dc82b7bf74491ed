package types

import (
	"fmt"
)

// InvalidSampleSetError is returned when a sample sequence cannot be fitted at
// all: empty input or mismatched size/cost lengths. Recoverable by the caller
// (re-collect samples).
type InvalidSampleSetError struct {
	XLen int
	YLen int
}

var _ error = InvalidSampleSetError{}

func (e InvalidSampleSetError) Error() string {
	if e.XLen == 0 && e.YLen == 0 {
		return "invalid sample set: empty"
	}
	return fmt.Sprintf("invalid sample set: %d sizes vs %d costs", e.XLen, e.YLen)
}

// NonMonotoneFitError is returned when the fitted slope is not positive. This
// signals a measurement problem (cost shrinking as input grows), not a numeric
// issue the fitter could repair; the operation must be re-measured.
type NonMonotoneFitError struct {
	LinParam float64
}

var _ error = NonMonotoneFitError{}

func (e NonMonotoneFitError) Error() string {
	return fmt.Sprintf("non-monotone cost fit: slope %g <= 0, examine your data or choose a constant model", e.LinParam)
}

// UndefinedFitQualityError is returned when the r-squared diagnostic has no
// defined value: the measured costs have zero variance but the model does not
// reproduce them exactly.
type UndefinedFitQualityError struct{}

var _ error = UndefinedFitQualityError{}

func (e UndefinedFitQualityError) Error() string {
	return "undefined fit quality: zero cost variance with non-zero residuals"
}

// NegativeParamError is returned by the quantizer for a fitted parameter that
// is negative or non-finite. The fitter never emits one, so this is a fatal
// configuration error rather than something to clamp silently.
type NegativeParamError struct {
	Name  string
	Value float64
}

var _ error = NegativeParamError{}

func (e NegativeParamError) Error() string {
	return fmt.Sprintf("parameter %s = %g cannot be quantized", e.Name, e.Value)
}

// UncalibratedOperationError is returned when the cost table has no entry for
// an operation. The metering layer must treat this as a host configuration
// error: an operation with no known cost must not run, and it is never free.
type UncalibratedOperationError struct {
	Op CostType
}

var _ error = UncalibratedOperationError{}

func (e UncalibratedOperationError) Error() string {
	return fmt.Sprintf("operation %q has no calibrated cost model", string(e.Op))
}
