package garch

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/optimize"
)

// EstimateOptions bounds the optimizer so worst-case latency is bounded.
type EstimateOptions struct {
	MaxIterations int           // major-iteration budget
	Tolerance     float64       // likelihood-improvement convergence tolerance
	Budget        time.Duration // wall-clock budget, 0 means no limit
}

func (o EstimateOptions) withDefaults() EstimateOptions {
	if o.MaxIterations <= 0 {
		o.MaxIterations = 2000
	}
	if o.Tolerance <= 0 {
		o.Tolerance = 1e-8
	}
	return o
}

// params is the untransformed parameter set evaluated by the likelihood.
type params struct {
	mu    float64
	phi   float64
	omega float64
	alpha []float64
	beta  []float64
	shape []float64 // nu (and lambda for skew-t)
}

// estimation carries the fixed inputs of one likelihood maximization.
type estimation struct {
	spec    Spec
	returns []float64
	seed    float64 // unconditional sample variance, recursion seed
}

// Estimate fits the GARCH(p,q) parameters by maximum likelihood. The
// positivity and support constraints are enforced through a smooth
// reparameterization (log for omega/alpha/beta, shifted log for nu > 2,
// tanh for the skew), so the optimizer works on an unconstrained vector.
// The optimizer is Nelder-Mead with a fixed starting point, which keeps
// repeated fits of the same series reproducible.
func Estimate(ctx context.Context, returns []float64, spec Spec, opts EstimateOptions) (*Model, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(returns) < MinReturns {
		return nil, &InsufficientDataError{Got: len(returns), Need: MinReturns}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	seed := variance(returns)
	if seed <= 0 {
		return nil, &NumericalError{Op: "estimate", Message: "zero variance in return series"}
	}
	e := &estimation{spec: spec, returns: returns, seed: seed}

	problem := optimize.Problem{Func: e.negLogLik}
	settings := &optimize.Settings{
		MajorIterations: opts.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   opts.Tolerance,
			Iterations: 100,
		},
	}
	if opts.Budget > 0 {
		settings.Runtime = opts.Budget
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); settings.Runtime <= 0 || remaining < settings.Runtime {
			settings.Runtime = remaining
		}
	}

	result, err := optimize.Minimize(problem, e.start(), settings, &optimize.NelderMead{})
	if err != nil {
		return nil, &ConvergenceError{Status: err.Error()}
	}
	switch result.Status {
	case optimize.IterationLimit, optimize.RuntimeLimit, optimize.FunctionEvaluationLimit:
		return nil, &ConvergenceError{Iterations: result.Stats.MajorIterations, Status: result.Status.String()}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := e.untransform(result.X)
	for _, x := range result.X {
		if math.IsNaN(x) {
			return nil, &ConvergenceError{Iterations: result.Stats.MajorIterations, Status: "optimizer produced NaN parameters"}
		}
	}

	eps := spec.Mean.residuals(returns, p.mu, p.phi)
	sigma2 := condVariance(eps, seed, p.omega, p.alpha, p.beta)
	condVol := make([]float64, len(sigma2))
	for t, v := range sigma2 {
		condVol[t] = math.Sqrt(v)
	}

	ll := -result.F
	k := float64(spec.numParams())
	n := float64(len(returns))

	m := &Model{
		Spec:          spec,
		Mu:            p.mu,
		Phi:           p.phi,
		Omega:         p.omega,
		Alpha:         p.alpha,
		Beta:          p.beta,
		CondVol:       condVol,
		Residuals:     eps,
		LogLikelihood: ll,
		AIC:           -2*ll + 2*k,
		BIC:           -2*ll + k*math.Log(n),
	}
	switch spec.Dist {
	case DistStudentT:
		m.Nu = p.shape[0]
	case DistSkewT:
		m.Nu = p.shape[0]
		m.Skew = p.shape[1]
	}
	return m, nil
}

// start builds the transformed starting vector: omega at the sample
// variance scaled by 1-0.1*(p+q), each ARCH/GARCH coefficient at
// 0.1/(p+q), mu at the sample mean, nu at 8, skew at 0.
func (e *estimation) start() []float64 {
	pq := e.spec.P + e.spec.Q
	x := make([]float64, 0, e.spec.numParams())
	switch e.spec.Mean {
	case MeanConstant:
		x = append(x, mean(e.returns))
	case MeanAR:
		x = append(x, mean(e.returns), 0)
	}
	x = append(x, math.Log(e.seed*(1-0.1*float64(pq))))
	coef := math.Log(0.1 / float64(pq))
	for i := 0; i < e.spec.Q+e.spec.P; i++ {
		x = append(x, coef)
	}
	switch e.spec.Dist {
	case DistStudentT:
		x = append(x, math.Log(8-2))
	case DistSkewT:
		x = append(x, math.Log(8-2), 0)
	}
	return x
}

func (e *estimation) untransform(theta []float64) params {
	var p params
	i := 0
	switch e.spec.Mean {
	case MeanConstant:
		p.mu = theta[i]
		i++
	case MeanAR:
		p.mu = theta[i]
		p.phi = theta[i+1]
		i += 2
	}
	p.omega = math.Exp(theta[i])
	i++
	p.alpha = make([]float64, e.spec.Q)
	for j := range p.alpha {
		p.alpha[j] = math.Exp(theta[i])
		i++
	}
	p.beta = make([]float64, e.spec.P)
	for j := range p.beta {
		p.beta[j] = math.Exp(theta[i])
		i++
	}
	switch e.spec.Dist {
	case DistStudentT:
		p.shape = []float64{2 + math.Exp(theta[i])}
	case DistSkewT:
		p.shape = []float64{2 + math.Exp(theta[i]), math.Tanh(theta[i+1])}
	}
	return p
}

func (e *estimation) negLogLik(theta []float64) float64 {
	p := e.untransform(theta)
	if math.IsInf(p.omega, 1) {
		return math.Inf(1)
	}
	eps := e.spec.Mean.residuals(e.returns, p.mu, p.phi)
	sigma2 := condVariance(eps, e.seed, p.omega, p.alpha, p.beta)
	dens := e.spec.Dist.density(p.shape)

	ll := 0.0
	for t, v := range sigma2 {
		if v <= 0 || math.IsInf(v, 1) {
			return math.Inf(1)
		}
		sigma := math.Sqrt(v)
		ll += dens.logDensity(eps[t]/sigma) - math.Log(sigma)
	}
	if math.IsNaN(ll) || math.IsInf(ll, 0) {
		return math.Inf(1)
	}
	return -ll
}

// condVariance runs the variance recursion
// sigma2_t = omega + sum alpha_i*eps2_{t-i} + sum beta_j*sigma2_{t-j},
// with sigma2_0 seeded at the unconditional variance and every lag before
// the start of the series treated as that seed.
func condVariance(eps []float64, seed, omega float64, alpha, beta []float64) []float64 {
	n := len(eps)
	s2 := make([]float64, n)
	if n == 0 {
		return s2
	}
	s2[0] = seed
	for t := 1; t < n; t++ {
		v := omega
		for i := 1; i <= len(alpha); i++ {
			x := seed
			if idx := t - i; idx >= 0 {
				x = eps[idx] * eps[idx]
			}
			v += alpha[i-1] * x
		}
		for j := 1; j <= len(beta); j++ {
			x := seed
			if idx := t - j; idx >= 0 {
				x = s2[idx]
			}
			v += beta[j-1] * x
		}
		s2[t] = v
	}
	return s2
}
