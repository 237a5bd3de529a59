package garch

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Severity levels for anomaly classification.
const (
	SeverityNormal   = "normal"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// varDegreesOfFreedom pins the VaR t-quantile at 4 degrees of freedom,
// independent of the fitted nu, so the reported VaR stays comparable
// across series and model specs.
const varDegreesOfFreedom = 4

// AnomalyScore classifies one new observation against the conditional
// volatility of a model fitted on the history.
type AnomalyScore struct {
	ZScore        float64
	Severity      string
	CondVol       float64
	ValueAtRisk   float64
	IsAnomaly     bool
	CurrentReturn float64
	Model         *Model
}

// ScoreAnomaly fits a GARCH(1,1) student-t model on the historical levels
// and scores the standardized surprise of currentValue. The current return
// is the simple percentage change from the last historical level.
func ScoreAnomaly(ctx context.Context, currentValue float64, history []float64, confidence float64, opts EstimateOptions) (*AnomalyScore, error) {
	if confidence < 0.9 || confidence > 0.99 {
		return nil, &InvalidParameterError{Param: "confidence_level", Message: fmt.Sprintf("must be in [0.9,0.99], got %g", confidence)}
	}

	returns, err := Returns(history)
	if err != nil {
		return nil, err
	}
	spec := Spec{P: 1, Q: 1, Dist: DistStudentT, Mean: MeanConstant}
	m, err := Estimate(ctx, returns, spec, opts)
	if err != nil {
		return nil, err
	}

	condVol := m.CondVol[m.N()-1]
	if condVol <= 0 {
		return nil, &NumericalError{Op: "z-score", Message: "zero conditional volatility"}
	}

	last := history[len(history)-1]
	currentReturn := (currentValue - last) / last * 100
	z := currentReturn / condVol

	q := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: varDegreesOfFreedom}.Quantile(1 - confidence)
	valueAtRisk := math.Abs(q) * condVol

	absZ := math.Abs(z)
	severity := SeverityNormal
	switch {
	case absZ >= 3:
		severity = SeverityCritical
	case absZ >= 2:
		severity = SeverityWarning
	}

	return &AnomalyScore{
		ZScore:        z,
		Severity:      severity,
		CondVol:       condVol,
		ValueAtRisk:   valueAtRisk,
		IsAnomaly:     absZ > 2,
		CurrentReturn: currentReturn,
		Model:         m,
	}, nil
}

// ConstantVolScore is the classic z-score against a constant mean and
// standard deviation of the levels, used by the side-by-side comparison.
func ConstantVolScore(currentValue float64, history []float64) (zScore, m, std float64, err error) {
	m = mean(history)
	std = popStd(history)
	if std == 0 {
		return 0, m, std, &NumericalError{Op: "z-score", Message: "zero standard deviation in history"}
	}
	return (currentValue - m) / std, m, std, nil
}
