package garch

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func TestScoreAnomalyUnchangedValue(t *testing.T) {
	history := clusteredLevels(151)
	last := history[len(history)-1]

	score, err := ScoreAnomaly(context.Background(), last, history, 0.95, EstimateOptions{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score.ZScore != 0 {
		t.Fatalf("unchanged value should score 0, got %v", score.ZScore)
	}
	if score.Severity != SeverityNormal || score.IsAnomaly {
		t.Fatalf("unchanged value should be normal, got %q anomaly=%v", score.Severity, score.IsAnomaly)
	}
	if score.CondVol <= 0 {
		t.Fatalf("conditional volatility must be positive, got %v", score.CondVol)
	}
	if score.Model == nil || score.Model.N() != len(history)-1 {
		t.Fatalf("score should carry the fitted model")
	}
}

func TestScoreAnomalySeverityBands(t *testing.T) {
	history := clusteredLevels(151)
	last := history[len(history)-1]

	// Learn the conditional volatility first, then build observations that
	// land at known z-scores. Refitting the same history reproduces it.
	base, err := ScoreAnomaly(context.Background(), last, history, 0.95, EstimateOptions{})
	if err != nil {
		t.Fatalf("baseline score: %v", err)
	}

	cases := []struct {
		z            float64
		wantSeverity string
		wantAnomaly  bool
	}{
		{1.0, SeverityNormal, false},
		{1.99, SeverityNormal, false},
		{-2.5, SeverityWarning, true},
		{2.5, SeverityWarning, true},
		{3.01, SeverityCritical, true},
		{3.5, SeverityCritical, true},
	}
	for _, tc := range cases {
		current := last * (1 + tc.z*base.CondVol/100)
		score, err := ScoreAnomaly(context.Background(), current, history, 0.95, EstimateOptions{})
		if err != nil {
			t.Fatalf("z=%v: %v", tc.z, err)
		}
		if math.Abs(score.ZScore-tc.z) > 1e-6 {
			t.Fatalf("z=%v: scored %v", tc.z, score.ZScore)
		}
		if score.Severity != tc.wantSeverity {
			t.Fatalf("z=%v: got severity %q want %q", tc.z, score.Severity, tc.wantSeverity)
		}
		if score.IsAnomaly != tc.wantAnomaly {
			t.Fatalf("z=%v: got anomaly=%v want %v", tc.z, score.IsAnomaly, tc.wantAnomaly)
		}
	}
}

func TestScoreAnomalyValueAtRisk(t *testing.T) {
	history := clusteredLevels(151)
	last := history[len(history)-1]

	confidence := 0.95
	score, err := ScoreAnomaly(context.Background(), last, history, confidence, EstimateOptions{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	q := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: 4}.Quantile(1 - confidence)
	want := math.Abs(q) * score.CondVol
	if math.Abs(score.ValueAtRisk-want) > 1e-9 {
		t.Fatalf("value at risk: got %v want %v", score.ValueAtRisk, want)
	}
	if score.ValueAtRisk <= 0 {
		t.Fatalf("value at risk must be positive")
	}
}

func TestScoreAnomalyConfidenceBounds(t *testing.T) {
	history := clusteredLevels(151)
	for _, c := range []float64{0.5, 0.899, 0.991} {
		_, err := ScoreAnomaly(context.Background(), history[len(history)-1], history, c, EstimateOptions{})
		var ipe *InvalidParameterError
		if !errors.As(err, &ipe) {
			t.Fatalf("confidence %v: expected InvalidParameterError, got %v", c, err)
		}
	}
}

func TestScoreAnomalyShortHistory(t *testing.T) {
	history := clusteredLevels(50)
	_, err := ScoreAnomaly(context.Background(), history[len(history)-1], history, 0.95, EstimateOptions{})
	var ide *InsufficientDataError
	if !errors.As(err, &ide) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func TestConstantVolScore(t *testing.T) {
	history := []float64{1, 2, 3, 4, 5}
	z, m, std, err := ConstantVolScore(6, history)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if m != 3 {
		t.Fatalf("mean: got %v want 3", m)
	}
	wantStd := math.Sqrt(2) // population std of 1..5
	if math.Abs(std-wantStd) > 1e-12 {
		t.Fatalf("std: got %v want %v", std, wantStd)
	}
	if math.Abs(z-(6-3)/wantStd) > 1e-12 {
		t.Fatalf("z: got %v", z)
	}
}

func TestConstantVolScoreFlatHistory(t *testing.T) {
	_, _, _, err := ConstantVolScore(1, []float64{2, 2, 2, 2})
	var ne *NumericalError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NumericalError, got %v", err)
	}
}
