package rng

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"goshuffle/ports"
)

// Adapter implements ports.RNGPort on top of math/rand.
type Adapter struct {
	shared *Locked
}

// NewAdapter creates an RNG adapter. A zero seed seeds the shared source
// from the clock.
func NewAdapter(seed int64) *Adapter {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Adapter{shared: NewLocked(rand.New(rand.NewSource(seed)))} // #nosec G404
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name != "" {
		seed = int64(hashString(name)) + seed
	}
	return rand.New(rand.NewSource(seed)), nil // #nosec G404
}

// Stream creates a deterministic RNG stream for a specific run/stage/key.
// The same inputs always produce the same stream.
func (a *Adapter) Stream(ctx context.Context, runID, stageName, key string, baseSeed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seed := baseSeed
	if runID != "" {
		seed = int64(hashString(runID)) + seed
	}
	if stageName != "" {
		seed = int64(hashString(stageName)) + seed
	}
	if key != "" {
		seed = DeriveSeed(seed, uint64(hashString(key)))
	}
	return rand.New(rand.NewSource(seed)), nil // #nosec G404
}

// Shared returns the adapter's goroutine-safe source
func (a *Adapter) Shared() ports.Source {
	return a.shared
}

// Locked serializes access to a source so it can be shared between
// goroutines. Draw order across goroutines is unspecified.
type Locked struct {
	mu  sync.Mutex
	src ports.Source
}

func NewLocked(src ports.Source) *Locked {
	return &Locked{src: src}
}

func (l *Locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

// DeriveSeed mixes a parent seed and a stream identifier with the SplitMix64
// finalizer so that neighbouring streams are decorrelated.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// hashString is djb2
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}
