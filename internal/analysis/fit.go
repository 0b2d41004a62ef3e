package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultAlpha is the significance level below which an empirical
// distribution is considered inconsistent with the model.
const DefaultAlpha = 0.001

// FitResult reports a chi-square goodness-of-fit test.
type FitResult struct {
	Statistic        float64 `json:"statistic"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	PValue           float64 `json:"p_value"`
	Impossible       int     `json:"impossible"` // observations the model gives zero probability
	Passed           bool    `json:"passed"`
}

// ChiSquareFit tests observed permutation counts against expected.
func ChiSquareFit(counts map[string]int, expected Distribution, alpha float64) FitResult {
	total := 0
	impossible := 0
	for key, c := range counts {
		total += c
		if expected[key] == 0 {
			impossible += c
		}
	}

	res := FitResult{Impossible: impossible}
	if impossible > 0 || total == 0 {
		return res
	}

	support := 0
	for key, p := range expected {
		if p <= 0 {
			continue
		}
		support++
		e := p * float64(total)
		d := float64(counts[key]) - e
		res.Statistic += d * d / e
	}

	res.DegreesOfFreedom = support - 1
	if res.DegreesOfFreedom < 1 {
		// single outcome: the only possible result was observed every time
		res.PValue = 1
	} else {
		chiDist := distuv.ChiSquared{K: float64(res.DegreesOfFreedom)}
		res.PValue = 1 - chiDist.CDF(res.Statistic)
	}
	res.Passed = res.PValue >= alpha
	return res
}

// VariationDistance returns the total variation distance between the
// empirical distribution of counts and expected.
func VariationDistance(counts map[string]int, expected Distribution) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	var tv float64
	for key, p := range expected {
		tv += math.Abs(float64(counts[key])/float64(total) - p)
	}
	for key, c := range counts {
		if _, ok := expected[key]; !ok {
			tv += float64(c) / float64(total)
		}
	}
	return tv / 2
}
