package shuffle

import (
	"fmt"

	"goshuffle/domain/core"
	"goshuffle/ports"
)

// Shuffle returns a shuffled copy of seq using strategy s, leaving seq
// untouched. A nil s selects DefaultStrategy. Randomized strategies draw
// from src, which must be non-nil for them; deterministic strategies
// ignore it.
func Shuffle[T any](src ports.Source, seq []T, s Strategy) ([]T, error) {
	out, err := apply(src, Slice[T](seq), s)
	if err != nil {
		return nil, err
	}
	return []T(out.(Slice[T])), nil
}

// ShuffleInPlace shuffles seq in place using strategy s.
func ShuffleInPlace[T any](src ports.Source, seq []T, s Strategy) error {
	return applyInPlace(src, Slice[T](seq), s)
}

// ShuffleTo writes a shuffled arrangement of seq into dst, which must have
// the same length. It is the copy shape without the allocation. dst may be
// seq itself but must not otherwise overlap it.
func ShuffleTo[T any](src ports.Source, dst, seq []T, s Strategy) error {
	if len(dst) != len(seq) {
		return fmt.Errorf("%w: dst has %d elements, seq has %d", core.ErrLengthMismatch, len(dst), len(seq))
	}
	if len(seq) > 0 && &dst[0] == &seq[0] {
		return ShuffleInPlace(src, dst, s)
	}
	return applyTo(src, Slice[T](dst), Slice[T](seq), s)
}

// ShuffleN returns a copy of seq shuffled n times in succession.
// n == 0 returns an unshuffled copy.
func ShuffleN[T any](src ports.Source, seq []T, n int, s Strategy) ([]T, error) {
	out, err := applyN(src, Slice[T](seq), n, s)
	if err != nil {
		return nil, err
	}
	return []T(out.(Slice[T])), nil
}

// ShuffleNInPlace shuffles seq in place n times in succession.
func ShuffleNInPlace[T any](src ports.Source, seq []T, n int, s Strategy) error {
	return applyNInPlace(src, Slice[T](seq), n, s)
}

// prepare resolves the strategy for one top-level call and checks that
// it can run with the given source.
func prepare(src ports.Source, s Strategy) (Strategy, error) {
	if s == nil {
		s = DefaultStrategy()
	}
	if !Capabilities(s).Supported() {
		return nil, core.NewUnsupportedOperationError(s.Name(), "shuffle")
	}
	if s.Randomized() && src == nil {
		return nil, fmt.Errorf("%w (strategy %s)", core.ErrMissingSource, s.Name())
	}
	return s, nil
}

func checkRepeats(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: got %d", core.ErrNegativeRepeats, n)
	}
	return nil
}

func apply(src ports.Source, seq Sequence, s Strategy) (Sequence, error) {
	s, err := prepare(src, s)
	if err != nil {
		return nil, err
	}
	out := seq.Clone()
	if seq.Len() < 2 {
		return out, nil
	}
	if c, ok := s.(CopyShuffler); ok {
		c.ShuffleInto(src, out, seq)
		return out, nil
	}
	s.(InPlaceShuffler).ShuffleInPlace(src, out)
	return out, nil
}

func applyTo(src ports.Source, dst, seq Sequence, s Strategy) error {
	s, err := prepare(src, s)
	if err != nil {
		return err
	}
	if seq.Len() < 2 {
		copyInto(dst, seq)
		return nil
	}
	if c, ok := s.(CopyShuffler); ok {
		c.ShuffleInto(src, dst, seq)
		return nil
	}
	copyInto(dst, seq)
	s.(InPlaceShuffler).ShuffleInPlace(src, dst)
	return nil
}

func applyInPlace(src ports.Source, seq Sequence, s Strategy) error {
	s, err := prepare(src, s)
	if err != nil {
		return err
	}
	if seq.Len() < 2 {
		return nil
	}
	if ip, ok := s.(InPlaceShuffler); ok {
		ip.ShuffleInPlace(src, seq)
		return nil
	}
	scratch := seq.Clone()
	s.(CopyShuffler).ShuffleInto(src, scratch, seq)
	copyInto(seq, scratch)
	return nil
}

// applyN prefers the in-place primitive since it needs a single buffer.
// Copy-only strategies ping-pong between the result and one scratch buffer.
func applyN(src ports.Source, seq Sequence, n int, s Strategy) (Sequence, error) {
	if err := checkRepeats(n); err != nil {
		return nil, err
	}
	s, err := prepare(src, s)
	if err != nil {
		return nil, err
	}
	out := seq.Clone()
	if n == 0 || seq.Len() < 2 {
		return out, nil
	}
	if ip, ok := s.(InPlaceShuffler); ok {
		for i := 0; i < n; i++ {
			ip.ShuffleInPlace(src, out)
		}
		return out, nil
	}

	c := s.(CopyShuffler)
	c.ShuffleInto(src, out, seq)
	if n == 1 {
		return out, nil
	}
	scratch := seq.Clone()
	for i := 1; i < n; i++ {
		c.ShuffleInto(src, scratch, out)
		out, scratch = scratch, out
	}
	return out, nil
}

func applyNInPlace(src ports.Source, seq Sequence, n int, s Strategy) error {
	if err := checkRepeats(n); err != nil {
		return err
	}
	s, err := prepare(src, s)
	if err != nil {
		return err
	}
	if n == 0 || seq.Len() < 2 {
		return nil
	}
	if ip, ok := s.(InPlaceShuffler); ok {
		for i := 0; i < n; i++ {
			ip.ShuffleInPlace(src, seq)
		}
		return nil
	}

	c := s.(CopyShuffler)
	cur, next := seq, seq.Clone()
	for i := 0; i < n; i++ {
		c.ShuffleInto(src, next, cur)
		cur, next = next, cur
	}
	// after an odd number of passes the result sits in the scratch buffer
	if n%2 == 1 {
		copyInto(seq, cur)
	}
	return nil
}
