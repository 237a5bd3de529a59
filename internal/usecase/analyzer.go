package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"VolSense/internal/domain/models"
	"VolSense/internal/services/garch"
	"VolSense/pkg/logger"
	"VolSense/pkg/metrics"
	"VolSense/pkg/queue"
)

// VolatilityAnalyzer orchestrates preprocess -> estimate -> {diagnose |
// forecast | score}. Estimations run on the worker pool; every engine
// failure is converted into the capability's structured response, so no
// error crosses into the transport layer. The analyzer holds no state
// between calls.
type VolatilityAnalyzer struct {
	logger  *logger.Logger
	pool    *queue.Pool
	metrics *metrics.Recorder
	opts    garch.EstimateOptions
}

func NewVolatilityAnalyzer(lgr *logger.Logger, pool *queue.Pool, rec *metrics.Recorder, opts garch.EstimateOptions) *VolatilityAnalyzer {
	return &VolatilityAnalyzer{logger: lgr, pool: pool, metrics: rec, opts: opts}
}

// estimate runs one fit on the worker pool under the configured wall-clock
// budget. A blown budget is reported as a convergence failure, matching the
// engine's own budget semantics.
func (a *VolatilityAnalyzer) estimate(ctx context.Context, returns []float64, spec garch.Spec) (*garch.Model, error) {
	if a.opts.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Budget)
		defer cancel()
	}

	var model *garch.Model
	start := time.Now()
	err := a.pool.Submit(ctx, func(ctx context.Context) error {
		m, err := garch.Estimate(ctx, returns, spec, a.opts)
		model = m
		return err
	})
	a.metrics.RecordDuration("estimate", time.Since(start).Seconds())

	err = mapContextErr(err)
	if err != nil {
		a.metrics.RecordError(errKind(err))
		return nil, err
	}
	a.metrics.RecordFit(spec.Dist.String(), spec.Mean.String())
	return model, nil
}

// Fit estimates a GARCH(p,q) model on the level series and returns the
// parameters, diagnostics and full conditional volatility path.
func (a *VolatilityAnalyzer) Fit(ctx context.Context, req *models.FitRequest) *models.FitResponse {
	resp := &models.FitResponse{
		SeriesID: req.SeriesID,
		ModelSpec: models.ModelSpec{
			P: req.P, Q: req.Q, Dist: req.Dist, MeanModel: req.MeanModel,
		},
		ConditionalVolatility: []float64{},
	}

	spec, err := buildSpec(req.P, req.Q, req.Dist, req.MeanModel)
	if err != nil {
		a.metrics.RecordError(errKind(err))
		return fitFailure(resp, err)
	}
	returns, err := garch.Returns(req.Values)
	if err != nil {
		a.metrics.RecordError(errKind(err))
		return fitFailure(resp, err)
	}

	model, err := a.estimate(ctx, returns, spec)
	if err != nil {
		a.logger.Error("fit failed", logger.String("series_id", req.SeriesID), logger.Error(err))
		return fitFailure(resp, err)
	}

	diag := garch.Diagnose(model)
	a.metrics.RecordPersistence(req.SeriesID, diag.Persistence)
	a.logger.Info("model fitted",
		logger.String("series_id", req.SeriesID),
		logger.Int("returns", model.N()),
		logger.Float64("persistence", diag.Persistence),
	)

	params := &models.FitParams{
		Mu:          model.Mu,
		Omega:       model.Omega,
		Alpha:       model.Alpha,
		Beta:        model.Beta,
		Persistence: diag.Persistence,
		HalfLife:    finitePtr(diag.HalfLife),
	}
	if model.Spec.Mean == garch.MeanAR {
		params.Phi = ptr(model.Phi)
	}
	if model.Spec.Dist != garch.DistNormal {
		params.Nu = ptr(model.Nu)
	}
	if model.Spec.Dist == garch.DistSkewT {
		params.Skew = ptr(model.Skew)
	}

	resp.Success = true
	resp.Params = params
	resp.ConditionalVolatility = model.CondVol
	resp.VolatilityRegimes = &models.VolatilityRegimes{
		Low:     diag.Bounds.Low,
		High:    diag.Bounds.High,
		Current: diag.Bounds.Current,
		Mean:    diag.Bounds.Mean,
	}
	resp.AIC = ptr(model.AIC)
	resp.BIC = ptr(model.BIC)
	resp.LogLikelihood = ptr(model.LogLikelihood)
	resp.Interpretation = fitInterpretation(model, diag)
	return resp
}

func fitFailure(resp *models.FitResponse, err error) *models.FitResponse {
	resp.Success = false
	resp.Error = err.Error()
	return resp
}

// DetectAnomaly scores one new observation against the conditional
// volatility of a GARCH(1,1) student-t fit on the history.
func (a *VolatilityAnalyzer) DetectAnomaly(ctx context.Context, req *models.AnomalyRequest) *models.AnomalyResponse {
	current := *req.CurrentValue
	confidence := *req.ConfidenceLevel
	resp := &models.AnomalyResponse{
		Severity:        garch.SeverityNormal,
		CurrentValue:    current,
		ConfidenceLevel: confidence,
	}

	score, err := a.score(ctx, current, req.HistoricalValues, confidence)
	if err != nil {
		a.metrics.RecordError(errKind(err))
		a.logger.Error("anomaly detection failed", logger.Error(err))
		resp.Success = false
		resp.Explanation = "detection failed: " + err.Error()
		return resp
	}

	resp.Success = true
	resp.IsAnomaly = score.IsAnomaly
	resp.Severity = score.Severity
	resp.ZScore = score.ZScore
	resp.ConditionalVolatility = score.CondVol
	resp.ValueAtRisk95 = score.ValueAtRisk
	resp.Explanation = anomalyExplanation(current, score)
	return resp
}

// score runs the anomaly fit on the worker pool like every estimation.
func (a *VolatilityAnalyzer) score(ctx context.Context, current float64, history []float64, confidence float64) (*garch.AnomalyScore, error) {
	if a.opts.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Budget)
		defer cancel()
	}

	var score *garch.AnomalyScore
	start := time.Now()
	err := a.pool.Submit(ctx, func(ctx context.Context) error {
		s, err := garch.ScoreAnomaly(ctx, current, history, confidence, a.opts)
		score = s
		return err
	})
	a.metrics.RecordDuration("anomaly", time.Since(start).Seconds())

	err = mapContextErr(err)
	if err != nil {
		return nil, err
	}
	a.metrics.RecordFit(garch.DistStudentT.String(), garch.MeanConstant.String())
	return score, nil
}

// Forecast fits a GARCH(1,1) student-t model and propagates the variance
// recursion forward.
func (a *VolatilityAnalyzer) Forecast(ctx context.Context, req *models.ForecastRequest) *models.ForecastResponse {
	resp := &models.ForecastResponse{
		VolatilityForecast:   []float64{},
		AnnualizedVolatility: []float64{},
		VarianceForecast:     []float64{},
	}

	returns, err := garch.Returns(req.Values)
	if err != nil {
		a.metrics.RecordError(errKind(err))
		resp.Error = err.Error()
		return resp
	}

	spec := garch.Spec{P: 1, Q: 1, Dist: garch.DistStudentT, Mean: garch.MeanConstant}
	model, err := a.estimate(ctx, returns, spec)
	if err != nil {
		a.logger.Error("forecast fit failed", logger.Error(err))
		resp.Error = err.Error()
		return resp
	}

	fc, err := garch.Forecast(model, req.Horizon)
	if err != nil {
		a.metrics.RecordError(errKind(err))
		resp.Error = err.Error()
		return resp
	}

	resp.Success = true
	resp.VolatilityForecast = fc.Volatility
	resp.AnnualizedVolatility = fc.Annualized
	resp.VarianceForecast = fc.Variance
	resp.ConfidenceIntervals = &models.ConfidenceIntervals{Lower: fc.Lower, Upper: fc.Upper}
	resp.Interpretation = forecastInterpretation(req.Horizon, fc)
	return resp
}

// Compare computes the constant-volatility z-score and the GARCH score
// over the same series so the two methods can be read side by side. The
// last value is the current observation, the rest is history.
func (a *VolatilityAnalyzer) Compare(ctx context.Context, seriesID string, values []float64) *models.CompareResponse {
	resp := &models.CompareResponse{SeriesID: seriesID}
	if len(values) < 2 {
		resp.Error = "need at least two values (history plus current)"
		return resp
	}

	current := values[len(values)-1]
	historical := values[:len(values)-1]
	resp.CurrentValue = current

	zScore, m, std, err := garch.ConstantVolScore(current, historical)
	if err != nil {
		a.metrics.RecordError(errKind(err))
		resp.Error = err.Error()
		return resp
	}

	score, err := a.score(ctx, current, historical, 0.95)
	if err != nil {
		a.metrics.RecordError(errKind(err))
		a.logger.Error("compare failed", logger.String("series_id", seriesID), logger.Error(err))
		resp.Error = err.Error()
		return resp
	}

	resp.Methods = &models.CompareMethods{
		ZScore: models.ZScoreMethod{
			Mean:       m,
			Std:        std,
			ZScore:     zScore,
			IsAnomaly:  math.Abs(zScore) > 2,
			Assumption: "constant volatility",
		},
		Garch: models.GarchMethod{
			ConditionalVolatility: score.CondVol,
			ZScore:                score.ZScore,
			IsAnomaly:             score.IsAnomaly,
			Assumption:            "time-varying volatility",
		},
	}
	resp.Comparison = &models.CompareNotes{
		ZScoreThreshold: 2,
		GarchThreshold:  2,
		Difference:      "GARCH raises its own volatility threshold in turbulent periods, cutting false positives",
	}
	return resp
}

func buildSpec(p, q int, dist, meanModel string) (garch.Spec, error) {
	d, err := garch.ParseDistribution(dist)
	if err != nil {
		return garch.Spec{}, err
	}
	m, err := garch.ParseMeanModel(meanModel)
	if err != nil {
		return garch.Spec{}, err
	}
	spec := garch.Spec{P: p, Q: q, Dist: d, Mean: m}
	return spec, spec.Validate()
}

// mapContextErr folds context expiry into the engine taxonomy, so every
// failure that reaches a response body carries a typed engine error.
func mapContextErr(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &garch.ConvergenceError{Status: "time budget exceeded"}
	case errors.Is(err, context.Canceled):
		return &garch.ConvergenceError{Status: "request canceled"}
	}
	return err
}

// errKind maps the engine taxonomy onto low-cardinality metric labels.
func errKind(err error) string {
	var insufficient *garch.InsufficientDataError
	var invalid *garch.InvalidParameterError
	var convergence *garch.ConvergenceError
	var numerical *garch.NumericalError
	switch {
	case errors.As(err, &insufficient):
		return "insufficient_data"
	case errors.As(err, &invalid):
		return "invalid_parameter"
	case errors.As(err, &convergence):
		return "convergence"
	case errors.As(err, &numerical):
		return "numerical"
	default:
		return "other"
	}
}

func ptr(v float64) *float64 { return &v }

func finitePtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
