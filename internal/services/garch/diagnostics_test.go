package garch

import (
	"math"
	"testing"
)

func TestDiagnoseHalfLife(t *testing.T) {
	m := &Model{
		Spec:    Spec{P: 1, Q: 1, Dist: DistNormal, Mean: MeanZero},
		Omega:   0.01,
		Alpha:   []float64{0.1},
		Beta:    []float64{0.8},
		CondVol: []float64{1.0, 1.1, 0.9, 1.05},
	}
	d := Diagnose(m)

	if math.Abs(d.Persistence-0.9) > 1e-12 {
		t.Fatalf("persistence: got %v want 0.9", d.Persistence)
	}
	want := math.Log(0.5) / math.Log(0.9)
	if math.Abs(d.HalfLife-want) > 1e-12 {
		t.Fatalf("half-life: got %v want %v", d.HalfLife, want)
	}
}

func TestDiagnoseNonStationaryHalfLife(t *testing.T) {
	m := &Model{
		Spec:    Spec{P: 1, Q: 1, Dist: DistNormal, Mean: MeanZero},
		Omega:   0.01,
		Alpha:   []float64{0.3},
		Beta:    []float64{0.75},
		CondVol: []float64{1.0, 1.0},
	}
	d := Diagnose(m)
	if !math.IsInf(d.HalfLife, 1) {
		t.Fatalf("expected infinite half-life for persistence %v, got %v", d.Persistence, d.HalfLife)
	}
}

func TestDiagnoseRegime(t *testing.T) {
	base := []float64{1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 2.0}

	cases := []struct {
		name    string
		condVol []float64
		want    string
	}{
		{"high", base, "high"},
		{"low", []float64{2.0, 2.0, 2.0, 2.0, 2.0, 2.0, 2.0, 2.0, 1.0}, "low"},
		{"normal", []float64{1.0, 1.2, 0.8, 1.1, 0.9, 1.0}, "normal"},
	}
	for _, tc := range cases {
		m := &Model{
			Spec:    Spec{P: 1, Q: 1, Dist: DistNormal, Mean: MeanZero},
			Alpha:   []float64{0.05},
			Beta:    []float64{0.9},
			CondVol: tc.condVol,
		}
		d := Diagnose(m)
		if d.Regime != tc.want {
			t.Fatalf("%s: got regime %q want %q (bounds %+v)", tc.name, d.Regime, tc.want, d.Bounds)
		}
		if d.Bounds.Low > d.Bounds.Mean || d.Bounds.Mean > d.Bounds.High {
			t.Fatalf("%s: bounds out of order: %+v", tc.name, d.Bounds)
		}
		if d.Bounds.Current != tc.condVol[len(tc.condVol)-1] {
			t.Fatalf("%s: current should be last conditional volatility", tc.name)
		}
	}
}
