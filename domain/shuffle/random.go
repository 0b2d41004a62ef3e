package shuffle

import (
	"goshuffle/ports"
)

// Random is the Fisher-Yates shuffle: every ordering is equally likely
// provided the source is uniform. It is the initial default strategy.
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) Randomized() bool { return true }

// ShuffleInPlace walks i from the last position down to 1, swapping i with
// a uniformly drawn j in [0, i].
func (Random) ShuffleInPlace(src ports.Source, seq Sequence) {
	for i := seq.Len() - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		seq.Swap(i, j)
	}
}
