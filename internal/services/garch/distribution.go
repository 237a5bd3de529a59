package garch

import (
	"fmt"
	"math"
)

// Distribution selects the residual distribution for the likelihood.
type Distribution int

const (
	DistNormal Distribution = iota
	DistStudentT
	DistSkewT
)

// ParseDistribution maps the wire names used by the API to a Distribution.
func ParseDistribution(s string) (Distribution, error) {
	switch s {
	case "normal":
		return DistNormal, nil
	case "t":
		return DistStudentT, nil
	case "skewt":
		return DistSkewT, nil
	default:
		return 0, &InvalidParameterError{Param: "dist", Message: fmt.Sprintf("unknown distribution %q", s)}
	}
}

func (d Distribution) String() string {
	switch d {
	case DistNormal:
		return "normal"
	case DistStudentT:
		return "t"
	case DistSkewT:
		return "skewt"
	}
	return "unknown"
}

// numShapeParams is the number of estimated shape parameters.
func (d Distribution) numShapeParams() int {
	switch d {
	case DistStudentT:
		return 1 // nu
	case DistSkewT:
		return 2 // nu, lambda
	}
	return 0
}

// density evaluates the log density of a standardized (unit variance)
// residual. Each variant is a closed type; the estimator only sees this
// interface.
type density interface {
	logDensity(z float64) float64
}

// density builds the variant for the given shape parameters.
// For student-t, shape[0] = nu; for skew-t, shape[1] = lambda.
func (d Distribution) density(shape []float64) density {
	switch d {
	case DistStudentT:
		return studentTDensity{nu: shape[0]}
	case DistSkewT:
		return skewTDensity{nu: shape[0], lambda: shape[1]}
	}
	return normalDensity{}
}

type normalDensity struct{}

const logSqrt2Pi = 0.9189385332046727

func (normalDensity) logDensity(z float64) float64 {
	return -logSqrt2Pi - 0.5*z*z
}

// studentTDensity is the location-scale t standardized to unit variance,
// valid for nu > 2.
type studentTDensity struct{ nu float64 }

func (d studentTDensity) logDensity(z float64) float64 {
	nu := d.nu
	lg1, _ := math.Lgamma((nu + 1) / 2)
	lg2, _ := math.Lgamma(nu / 2)
	logC := lg1 - lg2 - 0.5*math.Log(math.Pi*(nu-2))
	return logC - (nu+1)/2*math.Log(1+z*z/(nu-2))
}

// skewTDensity is Hansen's (1994) skewed t with shape nu > 2 and
// skew lambda in (-1, 1), standardized to zero mean and unit variance.
type skewTDensity struct {
	nu     float64
	lambda float64
}

func (d skewTDensity) logDensity(z float64) float64 {
	nu, lam := d.nu, d.lambda
	lg1, _ := math.Lgamma((nu + 1) / 2)
	lg2, _ := math.Lgamma(nu / 2)
	c := math.Exp(lg1-lg2) / math.Sqrt(math.Pi*(nu-2))
	a := 4 * lam * c * (nu - 2) / (nu - 1)
	b2 := 1 + 3*lam*lam - a*a
	if b2 <= 0 {
		return math.Inf(-1)
	}
	b := math.Sqrt(b2)

	denom := 1 + lam
	if z < -a/b {
		denom = 1 - lam
	}
	k := (b*z + a) / denom
	return math.Log(b) + math.Log(c) - (nu+1)/2*math.Log(1+k*k/(nu-2))
}
