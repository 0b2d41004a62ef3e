package shuffle

import (
	"goshuffle/ports"
)

// Strategy identifies a shuffling algorithm and its parameters.
// Strategies are immutable values and keep no state between calls.
type Strategy interface {
	// Name returns the canonical name accepted by ParseStrategy.
	Name() string
	// Randomized reports whether the strategy draws from a random source.
	Randomized() bool
}

// InPlaceShuffler is implemented by strategies that natively mutate a
// sequence in place.
type InPlaceShuffler interface {
	Strategy
	ShuffleInPlace(src ports.Source, seq Sequence)
}

// CopyShuffler is implemented by strategies that natively produce a new
// arrangement. ShuffleInto writes every position of dst from seq; dst and
// seq are distinct and have equal length.
type CopyShuffler interface {
	Strategy
	ShuffleInto(src ports.Source, dst, seq Sequence)
}

// Capability describes which primitives a strategy supplies natively.
type Capability struct {
	InPlace bool
	Copy    bool
}

// Capabilities reports the native primitives of s.
func Capabilities(s Strategy) Capability {
	_, inPlace := s.(InPlaceShuffler)
	_, cp := s.(CopyShuffler)
	return Capability{InPlace: inPlace, Copy: cp}
}

// Supported reports whether every operation shape can be derived.
func (c Capability) Supported() bool {
	return c.InPlace || c.Copy
}
