package shuffle

import (
	"sync"
)

// defaults holds the strategy used when a caller passes a nil strategy.
var defaults = struct {
	mu       sync.RWMutex
	strategy Strategy
}{strategy: Random{}}

// DefaultStrategy returns the current process-wide default strategy.
func DefaultStrategy() Strategy {
	defaults.mu.RLock()
	defer defaults.mu.RUnlock()
	return defaults.strategy
}

// SetDefaultStrategy replaces the process-wide default strategy. The change
// is visible to every later call that omits a strategy. A nil s restores
// Random.
func SetDefaultStrategy(s Strategy) {
	if s == nil {
		s = Random{}
	}
	defaults.mu.Lock()
	defaults.strategy = s
	defaults.mu.Unlock()
}
