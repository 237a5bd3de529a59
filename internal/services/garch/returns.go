package garch

import "math"

// MinReturns is the smallest return sample accepted for estimation. Below
// this the likelihood surface is too flat for the optimizer to resolve the
// GARCH coefficients reliably, so every consumer of returns (fitting,
// anomaly scoring) enforces the same floor.
const MinReturns = 100

// Returns converts a level series into percentage log returns,
// r_t = 100 * (ln l_t - ln l_{t-1}), preserving order.
// Levels must be strictly positive.
func Returns(levels []float64) ([]float64, error) {
	if len(levels) < 2 {
		return nil, &InsufficientDataError{Got: 0, Need: MinReturns}
	}
	out := make([]float64, 0, len(levels)-1)
	for i := 1; i < len(levels); i++ {
		prev, cur := levels[i-1], levels[i]
		if prev <= 0 || cur <= 0 {
			return nil, &NumericalError{Op: "log-return", Message: "levels must be strictly positive"}
		}
		out = append(out, 100*(math.Log(cur)-math.Log(prev)))
	}
	if len(out) < MinReturns {
		return nil, &InsufficientDataError{Got: len(out), Need: MinReturns}
	}
	return out, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance is the unbiased sample variance used to seed the recursion.
func variance(xs []float64) float64 {
	if len(xs) <= 1 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs)-1)
}

// popStd is the population standard deviation, used for regime bounds and
// the constant-volatility z-score.
func popStd(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
