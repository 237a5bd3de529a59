package garch

import (
	"fmt"
	"math"
)

const (
	// TradingDaysPerYear is the annualization convention for daily data.
	TradingDaysPerYear = 252

	// MaxHorizon bounds multi-step forecasts.
	MaxHorizon = 30
)

// ForecastResult is a multi-step variance/volatility forecast with an
// approximate 95% confidence band. The band uses the normal approximation
// stdErr_h = vol_h / sqrt(n); it is deliberately approximate.
type ForecastResult struct {
	Variance   []float64
	Volatility []float64
	Annualized []float64
	Lower      []float64
	Upper      []float64
}

// Forecast propagates the fitted variance recursion forward. Lags that
// refer to unobserved squared residuals are replaced by their model-implied
// expectation, which under the model is the forecast variance at that step;
// lags still inside the observed sample use the actual residuals and
// conditional variances.
func Forecast(m *Model, horizon int) (*ForecastResult, error) {
	if horizon < 1 || horizon > MaxHorizon {
		return nil, &InvalidParameterError{Param: "horizon", Message: fmt.Sprintf("must be in [1,%d], got %d", MaxHorizon, horizon)}
	}

	n := m.N()
	sigma2 := make([]float64, n)
	eps2 := make([]float64, n)
	for t := 0; t < n; t++ {
		sigma2[t] = m.CondVol[t] * m.CondVol[t]
		eps2[t] = m.Residuals[t] * m.Residuals[t]
	}

	vf := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		t := n + h - 1
		v := m.Omega
		for i := 1; i <= len(m.Alpha); i++ {
			idx := t - i
			if idx >= n {
				v += m.Alpha[i-1] * vf[idx-n]
			} else {
				v += m.Alpha[i-1] * eps2[idx]
			}
		}
		for j := 1; j <= len(m.Beta); j++ {
			idx := t - j
			if idx >= n {
				v += m.Beta[j-1] * vf[idx-n]
			} else {
				v += m.Beta[j-1] * sigma2[idx]
			}
		}
		vf[h-1] = v
	}

	res := &ForecastResult{
		Variance:   vf,
		Volatility: make([]float64, horizon),
		Annualized: make([]float64, horizon),
		Lower:      make([]float64, horizon),
		Upper:      make([]float64, horizon),
	}
	sqrtN := math.Sqrt(float64(n))
	for h, v := range vf {
		vol := math.Sqrt(v)
		stdErr := vol / sqrtN
		res.Volatility[h] = vol
		res.Annualized[h] = vol * math.Sqrt(TradingDaysPerYear)
		res.Lower[h] = vol - 1.96*stdErr
		res.Upper[h] = vol + 1.96*stdErr
	}
	return res, nil
}
