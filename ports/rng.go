package ports

import (
	"context"
	"math/rand"
)

// Source is a stateful generator of uniformly distributed integers.
// *rand.Rand satisfies it. Implementations are not required to be
// goroutine-safe; callers own a Source for the duration of one call.
type Source interface {
	// Intn returns a uniform integer in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream for a specific run/stage/key.
	// Simulation workers use it so that a run is reproducible from its base seed.
	Stream(ctx context.Context, runID, stageName, key string, baseSeed int64) (*rand.Rand, error)

	// Shared returns a goroutine-safe source for callers that did not ask for a seed
	Shared() Source
}
