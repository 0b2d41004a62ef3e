package app

import (
	"context"
	"time"

	"goshuffle/domain/shuffle"
	"goshuffle/internal"
	"goshuffle/internal/errors"
	"goshuffle/ports"
)

// ShuffleService applies shuffle strategies to caller-supplied sequences
type ShuffleService struct {
	rngPort ports.RNGPort
	logger  *internal.Logger
}

// ShuffleRequest defines the inputs for one shuffle call
type ShuffleRequest struct {
	Items    []string
	Strategy string // empty selects the current default
	Repeats  *int   // nil means a single application
	Seed     *int64 // nil draws from the shared source
	InPlace  bool   // mutate Items instead of returning a copy
}

// ShuffleResult contains the shuffled sequence and how it was produced
type ShuffleResult struct {
	Items     []string `json:"items"`
	Strategy  string   `json:"strategy"`
	Repeats   int      `json:"repeats"`
	Seed      *int64   `json:"seed,omitempty"`
	RuntimeMs int64    `json:"runtime_ms"`
}

// StrategyInfo describes a built-in strategy for listings
type StrategyInfo struct {
	Name       string `json:"name"`
	Randomized bool   `json:"randomized"`
	InPlace    bool   `json:"in_place"`
	Copy       bool   `json:"copy"`
	Default    bool   `json:"default"`
}

// NewShuffleService creates a shuffle service
func NewShuffleService(rngPort ports.RNGPort, logger *internal.Logger) *ShuffleService {
	return &ShuffleService{
		rngPort: rngPort,
		logger:  logger.With("ShuffleService"),
	}
}

// Shuffle resolves the strategy and source for req and applies it
func (s *ShuffleService) Shuffle(ctx context.Context, req ShuffleRequest) (*ShuffleResult, error) {
	startTime := time.Now()

	strategy, err := s.resolve(req.Strategy)
	if err != nil {
		return nil, err
	}

	repeats := 1
	if req.Repeats != nil {
		repeats = *req.Repeats
	}

	var src ports.Source
	if req.Seed != nil {
		src, err = s.rngPort.SeededStream(ctx, "shuffle", *req.Seed)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create seeded stream")
		}
	} else {
		src = s.rngPort.Shared()
	}

	items := req.Items
	if req.InPlace {
		err = shuffle.ShuffleNInPlace(src, items, repeats, strategy)
	} else {
		items, err = shuffle.ShuffleN(src, items, repeats, strategy)
	}
	if err != nil {
		s.logger.Warn("%s x%d over %d items failed: %v", strategy.Name(), repeats, len(req.Items), err)
		return nil, errors.Wrapf(err, "shuffle with %s failed", strategy.Name())
	}

	s.logger.Debug("%s x%d over %d items", strategy.Name(), repeats, len(items))
	return &ShuffleResult{
		Items:     items,
		Strategy:  strategy.Name(),
		Repeats:   repeats,
		Seed:      req.Seed,
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// SetDefault parses name and installs it as the process-wide default
func (s *ShuffleService) SetDefault(name string) (shuffle.Strategy, error) {
	strategy, err := shuffle.ParseStrategy(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set default strategy")
	}
	previous := shuffle.DefaultStrategy()
	shuffle.SetDefaultStrategy(strategy)
	s.logger.Info("default strategy changed from %s to %s", previous.Name(), strategy.Name())
	return strategy, nil
}

// Default returns the current process-wide default strategy
func (s *ShuffleService) Default() shuffle.Strategy {
	return shuffle.DefaultStrategy()
}

// Strategies lists the built-in strategies and marks the current default
func (s *ShuffleService) Strategies() []StrategyInfo {
	current := shuffle.DefaultStrategy().Name()
	names := shuffle.Names()
	infos := make([]StrategyInfo, 0, len(names))
	for _, name := range names {
		strategy, err := shuffle.ParseStrategy(name)
		if err != nil {
			continue
		}
		capability := shuffle.Capabilities(strategy)
		infos = append(infos, StrategyInfo{
			Name:       strategy.Name(),
			Randomized: strategy.Randomized(),
			InPlace:    capability.InPlace,
			Copy:       capability.Copy,
			Default:    strategy.Name() == current,
		})
	}
	return infos
}

// resolve reads the registry once so a concurrent SetDefault cannot
// change the strategy halfway through a call
func (s *ShuffleService) resolve(name string) (shuffle.Strategy, error) {
	if name == "" {
		return shuffle.DefaultStrategy(), nil
	}
	strategy, err := shuffle.ParseStrategy(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve strategy")
	}
	return strategy, nil
}
