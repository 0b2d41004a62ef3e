package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"
)

func TestRisingSequences(t *testing.T) {
	tests := []struct {
		perm []int
		want int
	}{
		{[]int{}, 0},
		{[]int{0}, 1},
		{[]int{0, 1, 2, 3}, 1},
		{[]int{2, 0, 3, 1}, 2},
		{[]int{3, 2, 1, 0}, 4},
		{[]int{0, 4, 1, 5, 2, 6, 3, 7}, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RisingSequences(tt.perm), "%v", tt.perm)
	}
}

func TestRiffleProbabilitySingleShuffle(t *testing.T) {
	assert.InDelta(t, 4.0/8, RiffleProbability(3, 1, 1), 1e-12)
	assert.InDelta(t, 1.0/8, RiffleProbability(3, 2, 1), 1e-12)
	assert.Zero(t, RiffleProbability(3, 3, 1))
	assert.Equal(t, 1.0, RiffleProbability(5, 1, 0))
	assert.Zero(t, RiffleProbability(5, 2, 0))
}

func TestRiffleProbabilitiesSumToOne(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for k := 0; k <= 4; k++ {
			var sum float64
			for _, perm := range combin.Permutations(n, n) {
				sum += RiffleProbability(n, RisingSequences(perm), k)
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "n=%d k=%d", n, k)
		}
	}
}

func TestEulerianNumbers(t *testing.T) {
	tests := map[int][]float64{
		1: {1},
		3: {1, 4, 1},
		5: {1, 26, 66, 26, 1},
	}
	for n, want := range tests {
		got := logEulerian(n)
		require.Len(t, got, len(want))
		for i := range want {
			assert.InDelta(t, want[i], math.Exp(got[i]), 1e-9, "n=%d r=%d", n, i+1)
		}
	}
}

func TestRiffleVariationDistanceBeyondFloatFactorial(t *testing.T) {
	prev := 1.0
	for k := 1; k <= 14; k++ {
		tv := RiffleVariationDistance(200, k)
		require.False(t, math.IsNaN(tv), "k=%d", k)
		assert.GreaterOrEqual(t, tv, 0.0)
		assert.LessOrEqual(t, tv, prev+1e-9, "k=%d", k)
		prev = tv
	}
	assert.InDelta(t, 1.0, RiffleVariationDistance(200, 7), 1e-3)
	assert.Less(t, RiffleVariationDistance(200, 14), 0.5)
}

func TestRiffleVariationDistanceFiftyTwo(t *testing.T) {
	want := map[int]float64{
		4:  1.000,
		5:  0.924,
		6:  0.614,
		7:  0.334,
		8:  0.167,
		9:  0.085,
		10: 0.043,
	}
	for k, tv := range want {
		assert.InDelta(t, tv, RiffleVariationDistance(52, k), 0.001, "k=%d", k)
	}
}

func TestRiffleVariationDistanceEdges(t *testing.T) {
	assert.Zero(t, RiffleVariationDistance(1, 3))
	// no shuffle at all: the identity versus uniform over 3! outcomes
	assert.InDelta(t, 5.0/6, RiffleVariationDistance(3, 0), 1e-12)
}
