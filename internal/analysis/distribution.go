package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"goshuffle/domain/core"
	"goshuffle/domain/shuffle"

	"gonum.org/v1/gonum/stat/combin"
)

// MaxEnumerableDeck is the largest deck whose full permutation
// distribution is tabulated. 8! = 40320 outcomes.
const MaxEnumerableDeck = 8

// Distribution maps a permutation key to its probability.
type Distribution map[string]float64

// PermutationKey renders perm as a comma separated list of original indices.
func PermutationKey(perm []int) string {
	var b strings.Builder
	for i, v := range perm {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// ParsePermutationKey is the inverse of PermutationKey.
func ParsePermutationKey(key string) ([]int, error) {
	if key == "" {
		return []int{}, nil
	}
	parts := strings.Split(key, ",")
	perm := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid permutation key %q: %w", key, err)
		}
		perm[i] = v
	}
	return perm, nil
}

// Identity returns the identity permutation of size n.
func Identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// Expected returns the exact distribution of outcomes after shuffling an
// n-card deck repeats times with s.
func Expected(s shuffle.Strategy, n, repeats int) (Distribution, error) {
	if n < 1 || n > MaxEnumerableDeck {
		return nil, core.NewInvalidArgumentError("deck size", fmt.Sprintf("must be in [1, %d] to enumerate, got %d", MaxEnumerableDeck, n))
	}
	if repeats < 0 {
		return nil, core.ErrNegativeRepeats
	}

	switch s.(type) {
	case shuffle.Random:
		if repeats == 0 {
			return Distribution{PermutationKey(Identity(n)): 1}, nil
		}
		lf, _ := math.Lgamma(float64(n + 1))
		p := math.Exp(-lf)
		dist := make(Distribution)
		for _, perm := range combin.Permutations(n, n) {
			dist[PermutationKey(perm)] = p
		}
		return dist, nil

	case shuffle.GilbertShannonReeds:
		dist := make(Distribution)
		for _, perm := range combin.Permutations(n, n) {
			if p := RiffleProbability(n, RisingSequences(perm), repeats); p > 0 {
				dist[PermutationKey(perm)] = p
			}
		}
		return dist, nil
	}

	if s.Randomized() {
		return nil, core.NewUnsupportedOperationError(s.Name(), "report an exact distribution")
	}
	// deterministic strategies have a single outcome
	perm, err := shuffle.ShuffleN(nil, Identity(n), repeats, s)
	if err != nil {
		return nil, err
	}
	return Distribution{PermutationKey(perm): 1}, nil
}
