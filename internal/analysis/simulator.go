package analysis

import (
	"context"
	"fmt"
	"time"

	"goshuffle/domain/core"
	"goshuffle/domain/shuffle"
	"goshuffle/ports"

	"golang.org/x/sync/errgroup"
)

// SimulationConfig describes a batch of independent shuffle trials.
type SimulationConfig struct {
	Strategy shuffle.Strategy
	DeckSize int
	Repeats  int // shuffles applied per trial
	Trials   int
	Workers  int
	Seed     int64
	Alpha    float64
}

// Validate checks the configuration before a run
func (c SimulationConfig) Validate() error {
	if c.Strategy == nil {
		return core.NewInvalidArgumentError("strategy", "is required")
	}
	if c.DeckSize < 1 {
		return core.NewInvalidArgumentError("deck size", "must be positive")
	}
	if c.Repeats < 0 {
		return core.ErrNegativeRepeats
	}
	if c.Trials < 1 {
		return fmt.Errorf("%w: got %d", core.ErrInsufficientTrials, c.Trials)
	}
	if c.Workers < 1 {
		return core.NewInvalidArgumentError("workers", "must be positive")
	}
	return nil
}

// Fingerprint hashes every setting that determines the outcome of a run
func (c SimulationConfig) Fingerprint() core.Hash {
	return core.ComputeParamsHash(map[string]interface{}{
		"strategy": c.Strategy.Name(),
		"deck":     c.DeckSize,
		"repeats":  c.Repeats,
		"trials":   c.Trials,
		"workers":  c.Workers,
		"seed":     c.Seed,
	})
}

// SimulationResult aggregates the outcome of a simulation run.
type SimulationResult struct {
	RunID       core.RunID `json:"run_id"`
	Fingerprint core.Hash  `json:"fingerprint"` // equal for runs that must produce equal counts
	Strategy    string     `json:"strategy"`
	DeckSize    int        `json:"deck_size"`
	Repeats     int        `json:"repeats"`
	Trials      int        `json:"trials"`
	Workers     int        `json:"workers"`
	Seed        int64      `json:"seed"`

	// Counts is only populated for decks up to MaxEnumerableDeck.
	Counts          map[string]int      `json:"counts,omitempty"`
	Expected        Distribution        `json:"expected,omitempty"`
	RisingSequences map[int]int         `json:"rising_sequences"`
	Displacement    DisplacementSummary `json:"displacement"`
	Fit             *FitResult          `json:"fit,omitempty"`
	EmpiricalTV     *float64            `json:"empirical_tv,omitempty"`
	TheoreticalTV   *float64            `json:"theoretical_tv,omitempty"`
	Duration        time.Duration       `json:"duration"`
}

// Simulator runs shuffle trials across workers, each drawing from its own
// deterministic stream so that a run is reproducible from its seed.
type Simulator struct {
	rngPort ports.RNGPort
}

// NewSimulator creates a simulator backed by rngPort
func NewSimulator(rngPort ports.RNGPort) *Simulator {
	return &Simulator{rngPort: rngPort}
}

type workerTally struct {
	counts       map[string]int
	rising       map[int]int
	displacement []float64
}

// Run executes the trials described by cfg.
func (s *Simulator) Run(ctx context.Context, cfg SimulationConfig) (*SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = DefaultAlpha
	}
	if cfg.Workers > cfg.Trials {
		cfg.Workers = cfg.Trials
	}

	start := time.Now()
	enumerable := cfg.DeckSize <= MaxEnumerableDeck
	tallies := make([]workerTally, cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		trials := cfg.Trials / cfg.Workers
		if w < cfg.Trials%cfg.Workers {
			trials++
		}

		g.Go(func() error {
			key := fmt.Sprintf("%s/worker-%d", cfg.Strategy.Name(), w)
			src, err := s.rngPort.Stream(gctx, "", "simulate", key, cfg.Seed)
			if err != nil {
				return err
			}
			tally, err := runTrials(gctx, src, cfg, trials, enumerable)
			if err != nil {
				return err
			}
			tallies[w] = tally
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &SimulationResult{
		RunID:           core.NewRunID(),
		Fingerprint:     cfg.Fingerprint(),
		Strategy:        cfg.Strategy.Name(),
		DeckSize:        cfg.DeckSize,
		Repeats:         cfg.Repeats,
		Trials:          cfg.Trials,
		Workers:         cfg.Workers,
		Seed:            cfg.Seed,
		RisingSequences: make(map[int]int),
	}
	if enumerable {
		res.Counts = make(map[string]int)
	}

	var samples []float64
	for _, t := range tallies {
		for k, c := range t.counts {
			res.Counts[k] += c
		}
		for r, c := range t.rising {
			res.RisingSequences[r] += c
		}
		samples = append(samples, t.displacement...)
	}

	summary, err := SummarizeDisplacement(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize displacement: %w", err)
	}
	res.Displacement = summary

	if _, ok := cfg.Strategy.(shuffle.GilbertShannonReeds); ok {
		tv := RiffleVariationDistance(cfg.DeckSize, cfg.Repeats)
		res.TheoreticalTV = &tv
	}

	if enumerable {
		expected, err := Expected(cfg.Strategy, cfg.DeckSize, cfg.Repeats)
		if err == nil {
			fit := ChiSquareFit(res.Counts, expected, cfg.Alpha)
			tv := VariationDistance(res.Counts, expected)
			res.Expected = expected
			res.Fit = &fit
			res.EmpiricalTV = &tv
		} else if !core.IsUnsupportedOperation(err) {
			return nil, err
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

func runTrials(ctx context.Context, src ports.Source, cfg SimulationConfig, trials int, enumerable bool) (workerTally, error) {
	tally := workerTally{
		counts:       make(map[string]int),
		rising:       make(map[int]int),
		displacement: make([]float64, 0, trials),
	}
	base := Identity(cfg.DeckSize)
	perm := make([]int, cfg.DeckSize)

	for t := 0; t < trials; t++ {
		if t%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return tally, err
			}
		}

		copy(perm, base)
		if err := shuffle.ShuffleNInPlace(src, perm, cfg.Repeats, cfg.Strategy); err != nil {
			return tally, err
		}

		if enumerable {
			tally.counts[PermutationKey(perm)]++
		}
		tally.rising[RisingSequences(perm)]++
		tally.displacement = append(tally.displacement, MeanDisplacement(perm))
	}
	return tally, nil
}
