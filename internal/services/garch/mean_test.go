package garch

import (
	"errors"
	"math"
	"testing"
)

func TestParseMeanModel(t *testing.T) {
	cases := map[string]MeanModel{
		"Zero":     MeanZero,
		"Constant": MeanConstant,
		"ARX":      MeanAR,
	}
	for s, want := range cases {
		got, err := ParseMeanModel(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if got != want || got.String() != s {
			t.Fatalf("%q: got %v (%q)", s, got, got.String())
		}
	}

	_, err := ParseMeanModel("AR")
	var ipe *InvalidParameterError
	if !errors.As(err, &ipe) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestResiduals(t *testing.T) {
	returns := []float64{1, 2, 3, 4}

	zero := MeanZero.residuals(returns, 0.5, 0.3)
	for i, r := range returns {
		if zero[i] != r {
			t.Fatalf("zero mean should leave returns untouched")
		}
	}

	con := MeanConstant.residuals(returns, 0.5, 0)
	for i, r := range returns {
		if con[i] != r-0.5 {
			t.Fatalf("constant mean residual %d: got %v", i, con[i])
		}
	}

	ar := MeanAR.residuals(returns, 0.5, 0.2)
	// The pre-sample lag is the sample mean, 2.5.
	if math.Abs(ar[0]-(1-0.5-0.2*2.5)) > 1e-15 {
		t.Fatalf("ar residual 0: got %v", ar[0])
	}
	for i := 1; i < len(returns); i++ {
		want := returns[i] - 0.5 - 0.2*returns[i-1]
		if math.Abs(ar[i]-want) > 1e-15 {
			t.Fatalf("ar residual %d: got %v want %v", i, ar[i], want)
		}
	}
}

func TestSpecNumParams(t *testing.T) {
	cases := []struct {
		spec Spec
		want int
	}{
		{Spec{P: 1, Q: 1, Dist: DistNormal, Mean: MeanZero}, 3},
		{Spec{P: 1, Q: 1, Dist: DistStudentT, Mean: MeanConstant}, 5},
		{Spec{P: 2, Q: 1, Dist: DistSkewT, Mean: MeanAR}, 8},
	}
	for _, tc := range cases {
		if got := tc.spec.numParams(); got != tc.want {
			t.Fatalf("%+v: got %d want %d", tc.spec, got, tc.want)
		}
	}
}
