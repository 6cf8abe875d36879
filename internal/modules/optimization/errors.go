package optimization

import (
	"errors"
	"fmt"
)

// InsufficientDataError reports a price history too short to produce a
// single return observation.
type InsufficientDataError struct {
	Observations int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient price data: need at least 2 observations, got %d", e.Observations)
}

// DegenerateAssetError reports a non-positive price, for which a log
// return is undefined.
type DegenerateAssetError struct {
	Asset string
	Row   int
	Price float64
}

func (e *DegenerateAssetError) Error() string {
	return fmt.Sprintf("degenerate price for asset %s at row %d: %v (log return undefined)", e.Asset, e.Row, e.Price)
}

// InvalidParameterError reports a structurally invalid caller input.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// OutOfRangeError reports a caller input outside its configured bounds.
type OutOfRangeError struct {
	Param string
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Param, e.Min, e.Max, e.Value)
}

// IsDataError reports whether err is a dataset-quality problem, as opposed
// to a caller-input problem. The HTTP layer uses this split to pick between
// "dataset problem" and form-validation messages.
func IsDataError(err error) bool {
	var insufficient *InsufficientDataError
	var degenerate *DegenerateAssetError
	return errors.As(err, &insufficient) || errors.As(err, &degenerate)
}

// IsInputError reports whether err was caused by invalid caller input.
func IsInputError(err error) bool {
	var invalid *InvalidParameterError
	var outOfRange *OutOfRangeError
	return errors.As(err, &invalid) || errors.As(err, &outOfRange)
}
