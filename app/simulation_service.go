package app

import (
	"context"
	"time"

	"goshuffle/domain/shuffle"
	"goshuffle/internal"
	"goshuffle/internal/analysis"
	"goshuffle/internal/config"
	"goshuffle/internal/errors"
	"goshuffle/ports"
)

// SimulationService runs batches of shuffle trials with configured defaults
type SimulationService struct {
	simulator *analysis.Simulator
	defaults  config.SimulationConfig
	baseSeed  int64
	logger    *internal.Logger
}

// SimulationRequest defines the inputs for a simulation. Zero values fall
// back to the configured defaults.
type SimulationRequest struct {
	Strategy string // empty selects the current default
	DeckSize int
	Repeats  *int // nil means a single shuffle per trial
	Trials   int
	Workers  int
	Seed     *int64
	Alpha    float64
}

// NewSimulationService creates a simulation service. A zero baseSeed makes
// unseeded requests draw their seed from the clock.
func NewSimulationService(rngPort ports.RNGPort, defaults config.SimulationConfig, baseSeed int64, logger *internal.Logger) *SimulationService {
	return &SimulationService{
		simulator: analysis.NewSimulator(rngPort),
		defaults:  defaults,
		baseSeed:  baseSeed,
		logger:    logger.With("SimulationService"),
	}
}

// Simulate runs the request under the configured timeout
func (s *SimulationService) Simulate(ctx context.Context, req SimulationRequest) (*analysis.SimulationResult, error) {
	cfg, err := s.buildConfig(req)
	if err != nil {
		return nil, err
	}

	if s.defaults.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.defaults.Timeout)
		defer cancel()
	}

	s.logger.Info("simulating %s: deck=%d repeats=%d trials=%d workers=%d seed=%d",
		cfg.Strategy.Name(), cfg.DeckSize, cfg.Repeats, cfg.Trials, cfg.Workers, cfg.Seed)

	res, err := s.simulator.Run(ctx, cfg)
	if err != nil {
		s.logger.Error("simulation of %s failed: %v", cfg.Strategy.Name(), err)
		return nil, errors.Wrap(err, "simulation failed")
	}

	s.logger.Info("simulation %s finished in %s", res.RunID, res.Duration)
	return res, nil
}

func (s *SimulationService) buildConfig(req SimulationRequest) (analysis.SimulationConfig, error) {
	strategy := shuffle.DefaultStrategy()
	if req.Strategy != "" {
		var err error
		strategy, err = shuffle.ParseStrategy(req.Strategy)
		if err != nil {
			return analysis.SimulationConfig{}, errors.Wrap(err, "failed to resolve strategy")
		}
	}

	cfg := analysis.SimulationConfig{
		Strategy: strategy,
		DeckSize: firstPositive(req.DeckSize, s.defaults.DeckSize),
		Repeats:  1,
		Trials:   firstPositive(req.Trials, s.defaults.Trials),
		Workers:  firstPositive(req.Workers, s.defaults.Workers),
		Alpha:    req.Alpha,
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = s.defaults.Alpha
	}
	if req.Repeats != nil {
		cfg.Repeats = *req.Repeats
	}

	switch {
	case req.Seed != nil:
		cfg.Seed = *req.Seed
	case s.baseSeed != 0:
		cfg.Seed = s.baseSeed
	default:
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return analysis.SimulationConfig{}, errors.Wrap(err, "invalid simulation request")
	}
	return cfg, nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
