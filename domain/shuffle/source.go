package shuffle

import (
	"math/rand"
	"sync"
	"time"

	"goshuffle/ports"
)

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}

var defaultSource = &lockedSource{
	rnd: rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404
}

// DefaultSource returns the process-wide source used by the *Default
// helpers. It is safe for concurrent use, but sequences drawn from it are
// not reproducible.
func DefaultSource() ports.Source {
	return defaultSource
}

// ShuffleDefault is Shuffle with the process-wide source.
func ShuffleDefault[T any](seq []T, s Strategy) ([]T, error) {
	return Shuffle(DefaultSource(), seq, s)
}

// ShuffleInPlaceDefault is ShuffleInPlace with the process-wide source.
func ShuffleInPlaceDefault[T any](seq []T, s Strategy) error {
	return ShuffleInPlace(DefaultSource(), seq, s)
}

// ShuffleNDefault is ShuffleN with the process-wide source.
func ShuffleNDefault[T any](seq []T, n int, s Strategy) ([]T, error) {
	return ShuffleN(DefaultSource(), seq, n, s)
}

// ShuffleNInPlaceDefault is ShuffleNInPlace with the process-wide source.
func ShuffleNInPlaceDefault[T any](seq []T, n int, s Strategy) error {
	return ShuffleNInPlace(DefaultSource(), seq, n, s)
}
