package usecase

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"testing"

	"VolSense/internal/domain/models"
	"VolSense/internal/services/garch"
	"VolSense/pkg/logger"
	"VolSense/pkg/metrics"
	"VolSense/pkg/queue"
)

// Prometheus collectors register globally, so every test shares one recorder.
var testMetrics = metrics.New()

func newTestAnalyzer(t *testing.T) *VolatilityAnalyzer {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	pool := queue.NewPool(lgr, &queue.Config{Workers: 2})
	t.Cleanup(pool.Close)
	return NewVolatilityAnalyzer(lgr, pool, testMetrics, garch.EstimateOptions{})
}

func testLevels(n int) []float64 {
	rng := rand.New(rand.NewSource(7))
	levels := make([]float64, n)
	levels[0] = 100
	for i := 1; i < n; i++ {
		sigma := 0.1
		if (i/25)%2 == 1 {
			sigma = 0.4
		}
		r := -10*math.Log(levels[i-1]/100) + rng.NormFloat64()*sigma
		levels[i] = levels[i-1] * math.Exp(r/100)
	}
	return levels
}

func TestFitSuccess(t *testing.T) {
	a := newTestAnalyzer(t)
	req := &models.FitRequest{
		SeriesID:  "brent_price",
		Values:    testLevels(151),
		P:         1,
		Q:         1,
		Dist:      "t",
		MeanModel: "Constant",
	}

	resp := a.Fit(context.Background(), req)
	if !resp.Success {
		t.Fatalf("fit failed: %s", resp.Error)
	}
	if resp.SeriesID != "brent_price" {
		t.Fatalf("series id: got %q", resp.SeriesID)
	}
	if resp.ModelSpec.P != 1 || resp.ModelSpec.Q != 1 || resp.ModelSpec.Dist != "t" {
		t.Fatalf("model spec not echoed: %+v", resp.ModelSpec)
	}
	if resp.Params == nil {
		t.Fatalf("expected params")
	}
	if resp.Params.Omega <= 0 {
		t.Fatalf("omega: %v", resp.Params.Omega)
	}
	if resp.Params.Nu == nil || *resp.Params.Nu <= 2 {
		t.Fatalf("nu should be set for a student-t fit")
	}
	if resp.Params.Phi != nil || resp.Params.Skew != nil {
		t.Fatalf("phi/skew should be omitted for constant-mean student-t")
	}
	if resp.Params.Persistence >= 1 && resp.Params.HalfLife != nil {
		t.Fatalf("half-life must be nil for non-stationary fits")
	}
	if len(resp.ConditionalVolatility) != 150 {
		t.Fatalf("conditional volatility length: %d", len(resp.ConditionalVolatility))
	}
	if resp.VolatilityRegimes == nil || resp.AIC == nil || resp.BIC == nil || resp.LogLikelihood == nil {
		t.Fatalf("missing diagnostics in response")
	}
	if resp.Interpretation == "" {
		t.Fatalf("expected a narrative interpretation")
	}
}

func TestFitARMeanExposesPhi(t *testing.T) {
	a := newTestAnalyzer(t)
	req := &models.FitRequest{
		SeriesID:  "wti_price",
		Values:    testLevels(151),
		P:         1,
		Q:         1,
		Dist:      "normal",
		MeanModel: "ARX",
	}
	resp := a.Fit(context.Background(), req)
	if !resp.Success {
		t.Fatalf("fit failed: %s", resp.Error)
	}
	if resp.Params.Phi == nil {
		t.Fatalf("phi should be present for an AR mean")
	}
	if resp.Params.Nu != nil {
		t.Fatalf("nu should be omitted for a normal fit")
	}
}

func TestFitInsufficientData(t *testing.T) {
	a := newTestAnalyzer(t)
	req := &models.FitRequest{
		SeriesID:  "short",
		Values:    testLevels(50),
		P:         1,
		Q:         1,
		Dist:      "t",
		MeanModel: "Constant",
	}
	resp := a.Fit(context.Background(), req)
	if resp.Success {
		t.Fatalf("expected failure on a short series")
	}
	if resp.Error == "" {
		t.Fatalf("expected an error message in the body")
	}
	if resp.Params != nil {
		t.Fatalf("failure responses must not carry params")
	}
	if resp.ConditionalVolatility == nil {
		t.Fatalf("conditional volatility should marshal as [], not null")
	}
}

func TestFitBadDistribution(t *testing.T) {
	a := newTestAnalyzer(t)
	req := &models.FitRequest{
		SeriesID:  "bad",
		Values:    testLevels(151),
		P:         1,
		Q:         1,
		Dist:      "gaussian",
		MeanModel: "Constant",
	}
	resp := a.Fit(context.Background(), req)
	if resp.Success || resp.Error == "" {
		t.Fatalf("expected a validation failure, got %+v", resp)
	}
}

func TestFitCanceledContext(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := a.Fit(ctx, &models.FitRequest{
		SeriesID:  "canceled",
		Values:    testLevels(151),
		P:         1,
		Q:         1,
		Dist:      "t",
		MeanModel: "Constant",
	})
	if resp.Success {
		t.Fatalf("fit under a canceled context must fail")
	}
	// Cancellation folds into the engine taxonomy, never a raw context error.
	if !strings.Contains(resp.Error, "converge") || !strings.Contains(resp.Error, "request canceled") {
		t.Fatalf("expected a convergence failure carrying the cancellation, got %q", resp.Error)
	}
}

func TestDetectAnomalyUnchangedValue(t *testing.T) {
	a := newTestAnalyzer(t)
	history := testLevels(151)
	last := history[len(history)-1]
	req := &models.AnomalyRequest{
		CurrentValue:     ptr(last),
		HistoricalValues: history,
		ConfidenceLevel:  ptr(0.95),
	}
	resp := a.DetectAnomaly(context.Background(), req)
	if !resp.Success {
		t.Fatalf("detection failed: %s", resp.Explanation)
	}
	if resp.IsAnomaly || resp.Severity != garch.SeverityNormal {
		t.Fatalf("unchanged value flagged: %+v", resp)
	}
	if resp.ZScore != 0 {
		t.Fatalf("z-score: %v", resp.ZScore)
	}
	if resp.ValueAtRisk95 <= 0 || resp.ConditionalVolatility <= 0 {
		t.Fatalf("missing risk figures: %+v", resp)
	}
	if resp.ConfidenceLevel != 0.95 || resp.CurrentValue != last {
		t.Fatalf("request echo wrong: %+v", resp)
	}
	if resp.Explanation == "" {
		t.Fatalf("expected an explanation")
	}
}

func TestDetectAnomalyZeroCurrentValue(t *testing.T) {
	a := newTestAnalyzer(t)
	history := testLevels(151)
	req := &models.AnomalyRequest{
		CurrentValue:     ptr(0),
		HistoricalValues: history,
		ConfidenceLevel:  ptr(0.95),
	}
	resp := a.DetectAnomaly(context.Background(), req)
	if !resp.Success {
		t.Fatalf("a zero observation is legal input: %s", resp.Explanation)
	}
	// A drop to zero is a -100% move, far outside any conditional volatility.
	if !resp.IsAnomaly || resp.Severity != garch.SeverityCritical {
		t.Fatalf("drop to zero not flagged critical: %+v", resp)
	}
	if resp.ZScore >= 0 {
		t.Fatalf("z-score should be negative, got %v", resp.ZScore)
	}
	if resp.CurrentValue != 0 {
		t.Fatalf("current value echo wrong: %v", resp.CurrentValue)
	}
}

func TestDetectAnomalyShortHistory(t *testing.T) {
	a := newTestAnalyzer(t)
	req := &models.AnomalyRequest{
		CurrentValue:     ptr(100),
		HistoricalValues: testLevels(20),
		ConfidenceLevel:  ptr(0.95),
	}
	resp := a.DetectAnomaly(context.Background(), req)
	if resp.Success {
		t.Fatalf("expected failure on short history")
	}
	if !strings.HasPrefix(resp.Explanation, "detection failed:") {
		t.Fatalf("explanation should carry the failure: %q", resp.Explanation)
	}
	if resp.Severity != garch.SeverityNormal {
		t.Fatalf("failed detection should stay at normal severity")
	}
}

func TestForecastLengths(t *testing.T) {
	a := newTestAnalyzer(t)
	req := &models.ForecastRequest{Values: testLevels(151), Horizon: 7}
	resp := a.Forecast(context.Background(), req)
	if !resp.Success {
		t.Fatalf("forecast failed: %s", resp.Error)
	}
	if len(resp.VolatilityForecast) != 7 || len(resp.AnnualizedVolatility) != 7 || len(resp.VarianceForecast) != 7 {
		t.Fatalf("forecast lengths wrong: %+v", resp)
	}
	if resp.ConfidenceIntervals == nil || len(resp.ConfidenceIntervals.Lower) != 7 || len(resp.ConfidenceIntervals.Upper) != 7 {
		t.Fatalf("confidence intervals wrong: %+v", resp.ConfidenceIntervals)
	}
	for i := range resp.VolatilityForecast {
		want := resp.VolatilityForecast[i] * math.Sqrt(252)
		if math.Abs(resp.AnnualizedVolatility[i]-want) > 1e-9 {
			t.Fatalf("annualization wrong at step %d", i+1)
		}
	}
	if resp.Interpretation == "" {
		t.Fatalf("expected a narrative interpretation")
	}
}

func TestForecastShortSeries(t *testing.T) {
	a := newTestAnalyzer(t)
	resp := a.Forecast(context.Background(), &models.ForecastRequest{Values: testLevels(30), Horizon: 5})
	if resp.Success || resp.Error == "" {
		t.Fatalf("expected failure, got %+v", resp)
	}
	if resp.VolatilityForecast == nil || resp.VarianceForecast == nil {
		t.Fatalf("failure responses should marshal empty slices, not null")
	}
}

func TestCompareMethods(t *testing.T) {
	a := newTestAnalyzer(t)
	values := testLevels(152)
	resp := a.Compare(context.Background(), "gold_price", values)
	if resp.Error != "" {
		t.Fatalf("compare failed: %s", resp.Error)
	}
	if resp.SeriesID != "gold_price" || resp.CurrentValue != values[len(values)-1] {
		t.Fatalf("request echo wrong: %+v", resp)
	}
	if resp.Methods == nil || resp.Comparison == nil {
		t.Fatalf("missing method blocks")
	}
	if resp.Methods.ZScore.Std <= 0 {
		t.Fatalf("z-score method std: %v", resp.Methods.ZScore.Std)
	}
	if resp.Methods.Garch.ConditionalVolatility <= 0 {
		t.Fatalf("garch method volatility: %v", resp.Methods.Garch.ConditionalVolatility)
	}
	if resp.Comparison.ZScoreThreshold != 2 || resp.Comparison.GarchThreshold != 2 {
		t.Fatalf("thresholds: %+v", resp.Comparison)
	}
}

func TestCompareTooFewValues(t *testing.T) {
	a := newTestAnalyzer(t)
	resp := a.Compare(context.Background(), "x", []float64{1})
	if resp.Error == "" {
		t.Fatalf("expected an error for a single value")
	}
}
