package shuffle

import (
	"goshuffle/ports"
)

// GilbertShannonReeds models a single physical riffle shuffle. The deck is
// cut binomially into a top pile A and a bottom pile B, and cards are
// dropped from the piles with probability proportional to pile size.
//
// The merge reads from two stable piles while writing the output, so the
// strategy only has a copy primitive; in-place shapes are derived.
type GilbertShannonReeds struct{}

func (GilbertShannonReeds) Name() string { return "gsr" }

func (GilbertShannonReeds) Randomized() bool { return true }

func (GilbertShannonReeds) ShuffleInto(src ports.Source, dst, seq Sequence) {
	n := seq.Len()
	c := cut(src, n)

	a, b := 0, c
	for pos := 0; pos < n; pos++ {
		ra, rb := c-a, n-b
		// once a pile is empty the other is dropped in order without draws
		if ra > 0 && (rb == 0 || src.Intn(ra+rb) < ra) {
			dst.Set(pos, seq, a)
			a++
		} else {
			dst.Set(pos, seq, b)
			b++
		}
	}
}

// cut draws the size of the top pile from Binomial(n, 1/2) by flipping n
// fair coins.
func cut(src ports.Source, n int) int {
	c := 0
	for i := 0; i < n; i++ {
		c += src.Intn(2)
	}
	return c
}
