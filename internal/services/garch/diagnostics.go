package garch

import "math"

// RegimeBounds places the latest conditional volatility against the
// one-standard-deviation band around its historical mean.
type RegimeBounds struct {
	Low     float64
	High    float64
	Current float64
	Mean    float64
}

// Diagnostics are pure derivations from a fitted model; no further fitting.
type Diagnostics struct {
	Persistence float64
	HalfLife    float64 // +Inf when the recursion is non-stationary
	Regime      string  // "low", "normal" or "high"
	Bounds      RegimeBounds
}

// Diagnose derives persistence, shock half-life and the volatility regime
// from a fitted model.
func Diagnose(m *Model) Diagnostics {
	persistence := m.Persistence()

	halfLife := math.Inf(1)
	if persistence < 1 && persistence > 0 {
		halfLife = math.Log(0.5) / math.Log(persistence)
	}

	volMean := mean(m.CondVol)
	volStd := popStd(m.CondVol)
	bounds := RegimeBounds{
		Low:     volMean - volStd,
		High:    volMean + volStd,
		Current: m.CondVol[len(m.CondVol)-1],
		Mean:    volMean,
	}

	regime := "normal"
	switch {
	case bounds.Current < bounds.Low:
		regime = "low"
	case bounds.Current > bounds.High:
		regime = "high"
	}

	return Diagnostics{
		Persistence: persistence,
		HalfLife:    halfLife,
		Regime:      regime,
		Bounds:      bounds,
	}
}
