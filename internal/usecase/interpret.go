package usecase

import (
	"fmt"
	"math"
	"strings"

	"VolSense/internal/services/garch"
)

// fitInterpretation renders the fitted model as an analyst-style summary.
func fitInterpretation(m *garch.Model, diag garch.Diagnostics) string {
	alphaSum := 0.0
	for _, a := range m.Alpha {
		alphaSum += a
	}
	betaSum := 0.0
	for _, b := range m.Beta {
		betaSum += b
	}

	var persistenceText string
	switch {
	case diag.Persistence > 0.9:
		persistenceText = "Volatility is highly persistent; large moves keep volatility elevated for a long time."
	case diag.Persistence > 0.7:
		persistenceText = "Volatility shows moderate persistence; shocks take roughly one to two weeks to fade."
	default:
		persistenceText = "Volatility mean-reverts quickly; the market is comparatively stable."
	}

	var halfLifeText string
	switch {
	case math.IsInf(diag.HalfLife, 1):
		halfLifeText = "Volatility does not converge; treat the series with caution."
	case diag.HalfLife > 30:
		halfLifeText = fmt.Sprintf("Volatility half-life of about %.0f days; shocks are long-lived.", diag.HalfLife)
	case diag.HalfLife > 14:
		halfLifeText = fmt.Sprintf("Volatility half-life of about %.0f days; shocks fade over two to four weeks.", diag.HalfLife)
	default:
		halfLifeText = fmt.Sprintf("Volatility half-life of about %.0f days; shocks fade quickly.", diag.HalfLife)
	}

	level := "normal"
	switch diag.Regime {
	case "high":
		level = "elevated"
	case "low":
		level = "subdued"
	}

	halfLife := fmt.Sprintf("%.1f days", diag.HalfLife)
	if math.IsInf(diag.HalfLife, 1) {
		halfLife = "infinite"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "GARCH(%d,%d) model analysis:\n\n", m.Spec.P, m.Spec.Q)
	b.WriteString("[Parameters]\n")
	fmt.Fprintf(&b, "- short-run shock response (alpha): %.4f\n", alphaSum)
	fmt.Fprintf(&b, "- volatility memory (beta): %.4f\n", betaSum)
	fmt.Fprintf(&b, "- persistence (alpha+beta): %.4f\n", diag.Persistence)
	fmt.Fprintf(&b, "- half-life: %s\n\n", halfLife)
	b.WriteString("[Current volatility state]\n")
	fmt.Fprintf(&b, "- current volatility: %.4f%%\n", diag.Bounds.Current)
	fmt.Fprintf(&b, "- historical mean: %.4f%%\n\n", diag.Bounds.Mean)
	b.WriteString("[Reading]\n")
	b.WriteString(persistenceText)
	b.WriteString("\n")
	b.WriteString(halfLifeText)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "[Market implication]\ncurrent volatility level: %s", level)
	return b.String()
}

// forecastInterpretation summarizes a multi-step volatility forecast.
func forecastInterpretation(horizon int, fc *garch.ForecastResult) string {
	meanVol := 0.0
	meanAnn := 0.0
	for h := range fc.Volatility {
		meanVol += fc.Volatility[h]
		meanAnn += fc.Annualized[h]
	}
	n := float64(len(fc.Volatility))
	meanVol /= n
	meanAnn /= n

	trend := "stable"
	last, first := fc.Volatility[len(fc.Volatility)-1], fc.Volatility[0]
	switch {
	case last > first:
		trend = "rising"
	case last < first:
		trend = "falling"
	}

	var b strings.Builder
	b.WriteString("Volatility forecast:\n")
	fmt.Fprintf(&b, "- horizon: %d days\n", horizon)
	fmt.Fprintf(&b, "- expected volatility: %.4f%%/day\n", meanVol)
	fmt.Fprintf(&b, "- annualized volatility: %.2f%%\n", meanAnn)
	fmt.Fprintf(&b, "- trend: %s", trend)
	return b.String()
}

// anomalyExplanation narrates the severity classification.
func anomalyExplanation(currentValue float64, score *garch.AnomalyScore) string {
	switch score.Severity {
	case garch.SeverityCritical:
		return fmt.Sprintf("abnormal rate move (Z=%.2f); current volatility %.4f%% may signal liquidity stress", score.ZScore, score.CondVol)
	case garch.SeverityWarning:
		return fmt.Sprintf("rate volatility elevated (Z=%.2f); current volatility %.4f%% is above the historical average", score.ZScore, score.CondVol)
	default:
		return fmt.Sprintf("current rate %.4f%% moving normally (Z=%.2f), within the conditional volatility range", currentValue, score.ZScore)
	}
}
