package analysis

import (
	"github.com/montanaflynn/stats"
)

// DisplacementSummary describes how far cards travel from their original
// positions, averaged per trial.
type DisplacementSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P95    float64 `json:"p95"`
	Max    float64 `json:"max"`
}

// MeanDisplacement returns the mean of |perm[i] - i| over all positions.
func MeanDisplacement(perm []int) float64 {
	if len(perm) == 0 {
		return 0
	}
	var sum int
	for i, v := range perm {
		d := v - i
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float64(sum) / float64(len(perm))
}

// UniformDisplacement is the expected mean displacement of a uniformly
// random permutation of n cards, (n^2 - 1) / 3n.
func UniformDisplacement(n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(n*n-1) / float64(3*n)
}

// SummarizeDisplacement aggregates per-trial mean displacements.
func SummarizeDisplacement(samples []float64) (DisplacementSummary, error) {
	if len(samples) == 0 {
		return DisplacementSummary{}, nil
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		return DisplacementSummary{}, err
	}
	stdDev, err := stats.StandardDeviation(samples)
	if err != nil {
		return DisplacementSummary{}, err
	}
	p95, err := stats.Percentile(samples, 95)
	if err != nil {
		return DisplacementSummary{}, err
	}
	max, err := stats.Max(samples)
	if err != nil {
		return DisplacementSummary{}, err
	}

	return DisplacementSummary{Mean: mean, StdDev: stdDev, P95: p95, Max: max}, nil
}
