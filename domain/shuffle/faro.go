package shuffle

import (
	"fmt"
	"strings"

	"goshuffle/domain/core"
	"goshuffle/ports"
)

// Direction selects the Faro variant.
type Direction int

const (
	// Out keeps the first card on top: the top half leads the weave.
	Out Direction = iota
	// In moves the first card of the bottom half to the top.
	In
)

func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// ParseDirection accepts "in" or "out", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in":
		return In, nil
	case "out":
		return Out, nil
	}
	return Out, fmt.Errorf("%w %q", core.ErrUnknownDirection, s)
}

// Faro is the perfect weave shuffle. The deck is cut into a top half A of
// ceil(n/2) cards and a bottom half B, which are then interleaved one card
// at a time. An out-shuffle leads with A and an in-shuffle leads with B.
// When n is odd the last card of A (the middle card) is left over and
// lands at the bottom, so under an out-shuffle A supplies both ends.
type Faro struct {
	Direction Direction
}

// Weave is another name for the Faro shuffle.
func Weave(d Direction) Faro {
	return Faro{Direction: d}
}

func (f Faro) Name() string { return "faro:" + f.Direction.String() }

func (Faro) Randomized() bool { return false }

// ShuffleInto writes the weave of seq into dst. A single sweep cannot
// produce this permutation in place, so there is no in-place primitive.
func (f Faro) ShuffleInto(_ ports.Source, dst, seq Sequence) {
	n := seq.Len()
	half := (n + 1) / 2

	lead, follow := 0, half
	if f.Direction == In {
		lead, follow = half, 0
	}

	for k := 0; k < n/2; k++ {
		dst.Set(2*k, seq, lead+k)
		dst.Set(2*k+1, seq, follow+k)
	}
	if n%2 == 1 {
		dst.Set(n-1, seq, half-1)
	}
}
