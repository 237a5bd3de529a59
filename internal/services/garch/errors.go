package garch

import "fmt"

// InsufficientDataError reports a series too short for stable estimation.
type InsufficientDataError struct {
	Got  int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need at least %d returns, got %d", e.Need, e.Got)
}

// InvalidParameterError reports an out-of-range model or request parameter.
type InvalidParameterError struct {
	Param   string
	Message string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Message)
}

// ConvergenceError reports that the optimizer exhausted its budget without
// meeting the convergence tolerance.
type ConvergenceError struct {
	Iterations int
	Status     string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("optimizer failed to converge after %d iterations (%s)", e.Iterations, e.Status)
}

// NumericalError reports a computation that cannot proceed, such as a
// logarithm of a non-positive level or a zero volatility spread.
type NumericalError struct {
	Op      string
	Message string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("numerical error in %s: %s", e.Op, e.Message)
}
