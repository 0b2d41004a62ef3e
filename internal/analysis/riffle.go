package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// RisingSequences counts the maximal runs of consecutive original indices
// that appear in increasing order in perm. perm[i] is the original index of
// the element at position i. A single riffle yields at most two.
func RisingSequences(perm []int) int {
	n := len(perm)
	if n == 0 {
		return 0
	}
	pos := make([]int, n)
	for i, v := range perm {
		pos[v] = i
	}
	r := 1
	for v := 0; v+1 < n; v++ {
		if pos[v+1] < pos[v] {
			r++
		}
	}
	return r
}

// RiffleProbability returns the chance that k independent GSR riffles of an
// n-card deck produce a given permutation with r rising sequences:
// C(2^k + n - r, n) / 2^(nk). With k = 1 this is (n+1)/2^n for the identity
// and 2^-n for every two-sequence permutation.
func RiffleProbability(n, r, k int) float64 {
	return math.Exp(logRiffleProbability(n, r, k))
}

// logRiffleProbability is the natural log of RiffleProbability, -Inf when
// the permutation cannot occur.
func logRiffleProbability(n, r, k int) float64 {
	if n == 0 {
		return 0
	}
	if k == 0 {
		if r == 1 {
			return 0
		}
		return math.Inf(-1)
	}
	a := math.Ldexp(1, k)
	if r < 1 || float64(r) > a || r > n {
		return math.Inf(-1)
	}
	return combin.LogGeneralizedBinomial(a+float64(n-r), float64(n)) - float64(n*k)*math.Ln2
}

// logEulerian returns the log of the number of permutations of n elements
// with exactly r rising sequences, indexed by r-1. The counts pass the
// float64 range beyond 170 cards, so the recurrence runs in log space.
func logEulerian(n int) []float64 {
	row := []float64{0}
	for m := 2; m <= n; m++ {
		next := make([]float64, m)
		for d := 0; d < m; d++ {
			v := math.Inf(-1)
			if d < len(row) {
				v = logAddExp(v, math.Log(float64(d+1))+row[d])
			}
			if d > 0 {
				v = logAddExp(v, math.Log(float64(m-d))+row[d-1])
			}
			next[d] = v
		}
		row = next
	}
	return row
}

func logAddExp(x, y float64) float64 {
	if math.IsInf(x, -1) {
		return y
	}
	if math.IsInf(y, -1) {
		return x
	}
	if x < y {
		x, y = y, x
	}
	return x + math.Log1p(math.Exp(y-x))
}

// logAbsDiff returns log|e^x - e^y|.
func logAbsDiff(x, y float64) float64 {
	if x < y {
		x, y = y, x
	}
	if math.IsInf(y, -1) {
		return x
	}
	return x + math.Log1p(-math.Exp(y-x))
}

// RiffleVariationDistance is the total variation distance between k GSR
// riffles of an n-card deck and the uniform distribution. For n = 52 it
// first drops below one half at k = 7.
func RiffleVariationDistance(n, k int) float64 {
	if n <= 1 {
		return 0
	}
	lf, _ := math.Lgamma(float64(n + 1))
	logUniform := -lf

	var tv float64
	for i, logCount := range logEulerian(n) {
		tv += math.Exp(logCount + logAbsDiff(logRiffleProbability(n, i+1, k), logUniform))
	}
	return tv / 2
}
