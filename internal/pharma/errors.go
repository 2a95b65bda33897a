package pharma

import (
	"errors"
	"fmt"
)

// Domain errors for dose-response computation.
var (
	// ErrInvalidParameter indicates a model or dose-grid parameter outside its valid range.
	ErrInvalidParameter = errors.New("pharma: invalid parameter")

	// ErrEmptyCurve indicates an analysis was requested on a curve with no samples.
	ErrEmptyCurve = errors.New("pharma: curve has no samples")

	// ErrFlatCurve indicates the response range is too small to locate EC50 or slope.
	ErrFlatCurve = errors.New("pharma: response range too small to analyze")
)

// ParameterError wraps ErrInvalidParameter with the offending parameter.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("pharma: invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
