package models

// Response bodies for the GARCH analysis endpoints. Domain failures travel
// inside the body (success=false plus error); only transport-level failures
// use non-2xx statuses.

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type ModelSpec struct {
	P         int    `json:"p"`
	Q         int    `json:"q"`
	Dist      string `json:"dist"`
	MeanModel string `json:"mean_model"`
}

// FitParams are the estimated parameters plus derived diagnostics.
// HalfLife is nil when the fitted recursion is non-stationary (the decay
// never reaches half, and JSON cannot carry +Inf).
type FitParams struct {
	Mu          float64   `json:"mu"`
	Omega       float64   `json:"omega"`
	Alpha       []float64 `json:"alpha"`
	Beta        []float64 `json:"beta"`
	Phi         *float64  `json:"phi,omitempty"`
	Nu          *float64  `json:"nu,omitempty"`
	Skew        *float64  `json:"skew,omitempty"`
	Persistence float64   `json:"persistence"`
	HalfLife    *float64  `json:"half_life"`
}

type VolatilityRegimes struct {
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
	Current float64 `json:"current"`
	Mean    float64 `json:"mean"`
}

type FitResponse struct {
	Success               bool               `json:"success"`
	SeriesID              string             `json:"series_id"`
	ModelSpec             ModelSpec          `json:"model_spec"`
	Params                *FitParams         `json:"params,omitempty"`
	Interpretation        string             `json:"interpretation,omitempty"`
	ConditionalVolatility []float64          `json:"conditional_volatility"`
	VolatilityRegimes     *VolatilityRegimes `json:"volatility_regimes,omitempty"`
	AIC                   *float64           `json:"aic,omitempty"`
	BIC                   *float64           `json:"bic,omitempty"`
	LogLikelihood         *float64           `json:"log_likelihood,omitempty"`
	Error                 string             `json:"error,omitempty"`
}

type AnomalyResponse struct {
	Success               bool    `json:"success"`
	IsAnomaly             bool    `json:"is_anomaly"`
	Severity              string  `json:"severity"`
	ZScore                float64 `json:"z_score"`
	ConditionalVolatility float64 `json:"conditional_volatility"`
	ValueAtRisk95         float64 `json:"value_at_risk_95"`
	Explanation           string  `json:"explanation"`
	CurrentValue          float64 `json:"current_value"`
	ConfidenceLevel       float64 `json:"confidence_level"`
}

type ConfidenceIntervals struct {
	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
}

type ForecastResponse struct {
	Success              bool                 `json:"success"`
	VolatilityForecast   []float64            `json:"volatility_forecast"`
	AnnualizedVolatility []float64            `json:"annualized_volatility"`
	VarianceForecast     []float64            `json:"variance_forecast"`
	ConfidenceIntervals  *ConfidenceIntervals `json:"confidence_intervals,omitempty"`
	Interpretation       string               `json:"interpretation,omitempty"`
	Error                string               `json:"error,omitempty"`
}

// Comparison of the constant-volatility z-score against the GARCH score
// over the same series.

type ZScoreMethod struct {
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	ZScore     float64 `json:"z_score"`
	IsAnomaly  bool    `json:"is_anomaly"`
	Assumption string  `json:"assumption"`
}

type GarchMethod struct {
	ConditionalVolatility float64 `json:"conditional_volatility"`
	ZScore                float64 `json:"z_score"`
	IsAnomaly             bool    `json:"is_anomaly"`
	Assumption            string  `json:"assumption"`
}

type CompareMethods struct {
	ZScore ZScoreMethod `json:"zscore"`
	Garch  GarchMethod  `json:"garch"`
}

type CompareNotes struct {
	ZScoreThreshold float64 `json:"zscore_threshold"`
	GarchThreshold  float64 `json:"garch_threshold"`
	Difference      string  `json:"difference"`
}

type CompareResponse struct {
	SeriesID     string          `json:"series_id"`
	CurrentValue float64         `json:"current_value"`
	Methods      *CompareMethods `json:"methods,omitempty"`
	Comparison   *CompareNotes   `json:"comparison,omitempty"`
	Error        string          `json:"error,omitempty"`
}
