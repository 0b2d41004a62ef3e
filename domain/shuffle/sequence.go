package shuffle

// Sequence is a fixed-length, index-addressable view of a collection.
// Strategies only move elements between positions; they never inspect values.
type Sequence interface {
	Len() int
	Swap(i, j int)
	// Set copies element j of from into position i. from must hold the
	// same element type as the receiver.
	Set(i int, from Sequence, j int)
	// Clone returns an independent copy of the same length.
	Clone() Sequence
}

// Slice adapts a []T to Sequence.
type Slice[T any] []T

func (s Slice[T]) Len() int { return len(s) }

func (s Slice[T]) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s Slice[T]) Set(i int, from Sequence, j int) {
	s[i] = from.(Slice[T])[j]
}

func (s Slice[T]) Clone() Sequence {
	out := make(Slice[T], len(s))
	copy(out, s)
	return out
}

// copyInto overwrites dst positionally with the contents of src.
func copyInto(dst, src Sequence) {
	for i := 0; i < src.Len(); i++ {
		dst.Set(i, src, i)
	}
}
