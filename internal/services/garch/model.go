package garch

import "fmt"

const (
	minOrder = 1
	maxOrder = 5
)

// Spec is the immutable model configuration supplied per call.
type Spec struct {
	P    int // GARCH order (lags of conditional variance)
	Q    int // ARCH order (lags of squared residuals)
	Dist Distribution
	Mean MeanModel
}

// Validate checks the order bounds.
func (s Spec) Validate() error {
	if s.P < minOrder || s.P > maxOrder {
		return &InvalidParameterError{Param: "p", Message: fmt.Sprintf("must be in [%d,%d], got %d", minOrder, maxOrder, s.P)}
	}
	if s.Q < minOrder || s.Q > maxOrder {
		return &InvalidParameterError{Param: "q", Message: fmt.Sprintf("must be in [%d,%d], got %d", minOrder, maxOrder, s.Q)}
	}
	return nil
}

// numParams is the total count of estimated parameters, used by AIC/BIC.
func (s Spec) numParams() int {
	return s.Mean.numParams() + 1 + s.Q + s.P + s.Dist.numShapeParams()
}

// Model is a fitted GARCH model. It is produced once per estimation call,
// owned by that caller, and never cached or shared.
type Model struct {
	Spec Spec

	Mu    float64
	Phi   float64 // AR(1) coefficient, zero unless Mean == MeanAR
	Omega float64
	Alpha []float64 // ARCH coefficients, length Q
	Beta  []float64 // GARCH coefficients, length P

	Nu   float64 // degrees of freedom, zero for normal residuals
	Skew float64 // skew parameter, zero unless skew-t

	// CondVol holds one conditional standard deviation per return, in time
	// order. Residuals holds the matching mean-model residuals.
	CondVol   []float64
	Residuals []float64

	LogLikelihood float64
	AIC           float64
	BIC           float64
}

// N is the number of returns the model was fitted on.
func (m *Model) N() int { return len(m.CondVol) }

// Persistence is the sum of all ARCH and GARCH coefficients.
func (m *Model) Persistence() float64 {
	p := 0.0
	for _, a := range m.Alpha {
		p += a
	}
	for _, b := range m.Beta {
		p += b
	}
	return p
}
