package shuffle

import (
	"math/rand"
	"slices"

	"goshuffle/ports"

	"github.com/stretchr/testify/mock"
)

// mockSource records draws; strategies under test must only ask for the
// bounds the expectations list.
type mockSource struct {
	mock.Mock
}

func (m *mockSource) Intn(n int) int {
	args := m.Called(n)
	return args.Int(0)
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func deck(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func isPermutation(t interface{ Helper() }, orig, got []int) bool {
	t.Helper()
	if len(orig) != len(got) {
		return false
	}
	a := slices.Clone(orig)
	b := slices.Clone(got)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func allStrategies() []Strategy {
	return []Strategy{
		Random{},
		Faro{Direction: In},
		Faro{Direction: Out},
		GilbertShannonReeds{},
	}
}

// copyOnly and inPlaceOnly exercise derivation without relying on the
// built-in strategies.
type copyOnly struct{}

func (copyOnly) Name() string     { return "reverse-copy" }
func (copyOnly) Randomized() bool { return false }
func (copyOnly) ShuffleInto(_ ports.Source, dst, seq Sequence) {
	n := seq.Len()
	for i := 0; i < n; i++ {
		dst.Set(i, seq, n-1-i)
	}
}

type inPlaceOnly struct{}

func (inPlaceOnly) Name() string     { return "rotate" }
func (inPlaceOnly) Randomized() bool { return false }
func (inPlaceOnly) ShuffleInPlace(_ ports.Source, seq Sequence) {
	for i := 0; i < seq.Len()-1; i++ {
		seq.Swap(i, i+1)
	}
}

type noPrimitives struct{}

func (noPrimitives) Name() string     { return "none" }
func (noPrimitives) Randomized() bool { return false }
