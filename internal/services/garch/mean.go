package garch

import "fmt"

// MeanModel selects how the conditional mean of the returns is formed.
type MeanModel int

const (
	MeanZero MeanModel = iota
	MeanConstant
	MeanAR
)

// ParseMeanModel maps the wire names used by the API to a MeanModel.
func ParseMeanModel(s string) (MeanModel, error) {
	switch s {
	case "Zero":
		return MeanZero, nil
	case "Constant":
		return MeanConstant, nil
	case "ARX":
		return MeanAR, nil
	default:
		return 0, &InvalidParameterError{Param: "mean_model", Message: fmt.Sprintf("unknown mean model %q", s)}
	}
}

func (m MeanModel) String() string {
	switch m {
	case MeanZero:
		return "Zero"
	case MeanConstant:
		return "Constant"
	case MeanAR:
		return "ARX"
	}
	return "unknown"
}

// numParams is the number of estimated mean parameters.
func (m MeanModel) numParams() int {
	switch m {
	case MeanConstant:
		return 1 // mu
	case MeanAR:
		return 2 // mu, phi
	}
	return 0
}

// residuals subtracts the conditional mean from each return. For the AR
// model the pre-sample lag r_{-1} is taken as the sample mean of the
// returns, so every return keeps a residual and the volatility recursion
// stays aligned with the series.
func (m MeanModel) residuals(returns []float64, mu, phi float64) []float64 {
	eps := make([]float64, len(returns))
	switch m {
	case MeanZero:
		copy(eps, returns)
	case MeanConstant:
		for t, r := range returns {
			eps[t] = r - mu
		}
	case MeanAR:
		lag := mean(returns)
		for t, r := range returns {
			eps[t] = r - mu - phi*lag
			lag = r
		}
	}
	return eps
}
