package garch

import (
	"errors"
	"math"
	"testing"
)

func TestParseDistribution(t *testing.T) {
	cases := map[string]Distribution{
		"normal": DistNormal,
		"t":      DistStudentT,
		"skewt":  DistSkewT,
	}
	for s, want := range cases {
		got, err := ParseDistribution(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got != want {
			t.Fatalf("%q: got %v want %v", s, got, want)
		}
		if got.String() != s {
			t.Fatalf("%q: round trip gave %q", s, got.String())
		}
	}

	_, err := ParseDistribution("gaussian")
	var ipe *InvalidParameterError
	if !errors.As(err, &ipe) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestNormalLogDensity(t *testing.T) {
	d := DistNormal.density(nil)
	if got := d.logDensity(0); math.Abs(got-(-logSqrt2Pi)) > 1e-15 {
		t.Fatalf("at 0: got %v want %v", got, -logSqrt2Pi)
	}
	// Symmetric.
	if d.logDensity(1.3) != d.logDensity(-1.3) {
		t.Fatalf("normal density should be symmetric")
	}
}

func TestStudentTApproachesNormal(t *testing.T) {
	tt := DistStudentT.density([]float64{1e6})
	n := DistNormal.density(nil)
	for _, z := range []float64{-2, -0.5, 0, 0.5, 2} {
		if math.Abs(tt.logDensity(z)-n.logDensity(z)) > 1e-4 {
			t.Fatalf("z=%v: t(1e6)=%v normal=%v", z, tt.logDensity(z), n.logDensity(z))
		}
	}
}

func TestStudentTFatterTails(t *testing.T) {
	tt := DistStudentT.density([]float64{4})
	n := DistNormal.density(nil)
	if tt.logDensity(4) <= n.logDensity(4) {
		t.Fatalf("t(4) should dominate the normal in the tail")
	}
}

func TestSkewTReducesToStudentT(t *testing.T) {
	st := DistSkewT.density([]float64{6, 0})
	tt := DistStudentT.density([]float64{6})
	for _, z := range []float64{-2.5, -1, 0, 1, 2.5} {
		if math.Abs(st.logDensity(z)-tt.logDensity(z)) > 1e-10 {
			t.Fatalf("z=%v: skewt(lambda=0)=%v t=%v", z, st.logDensity(z), tt.logDensity(z))
		}
	}
}

func TestSkewTAsymmetry(t *testing.T) {
	st := DistSkewT.density([]float64{6, 0.5})
	if st.logDensity(1.5) == st.logDensity(-1.5) {
		t.Fatalf("positive skew should break symmetry")
	}
}

func TestNumShapeParams(t *testing.T) {
	if DistNormal.numShapeParams() != 0 || DistStudentT.numShapeParams() != 1 || DistSkewT.numShapeParams() != 2 {
		t.Fatalf("shape parameter counts wrong")
	}
}
