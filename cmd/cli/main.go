package main

import (
	"fmt"
	"os"

	"goshuffle/adapters/rng"
	"goshuffle/app"
	"goshuffle/domain/shuffle"
	"goshuffle/internal"
	"goshuffle/internal/config"

	"github.com/spf13/cobra"
)

// services bundles what every command needs after configuration is loaded
type services struct {
	cfg         *config.Config
	logger      *internal.Logger
	shuffles    *app.ShuffleService
	simulations *app.SimulationService
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	var defaultStrategy string

	rootCmd := &cobra.Command{
		Use:           "goshuffle",
		Short:         "Shuffle sequences with Fisher-Yates, Faro and riffle strategies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&defaultStrategy, "default-strategy", "", "Override SHUFFLE_DEFAULT_STRATEGY for this invocation")

	load := func() (*services, error) {
		return setup(envFile, defaultStrategy)
	}

	rootCmd.AddCommand(
		newShuffleCmd(load),
		newNShuffleCmd(load),
		newSimulateCmd(load),
		newStrategiesCmd(load),
		newDefaultCmd(load),
		newVariationCmd(),
	)
	return rootCmd
}

// setup loads configuration and wires the services the commands use
func setup(envFile, defaultStrategy string) (*services, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := internal.NewLogger(cfg.LogLevel)
	shuffle.SetDefaultStrategy(cfg.Shuffle.DefaultStrategy)

	rngPort := rng.NewAdapter(cfg.Shuffle.Seed)
	svc := &services{
		cfg:         cfg,
		logger:      logger,
		shuffles:    app.NewShuffleService(rngPort, logger),
		simulations: app.NewSimulationService(rngPort, cfg.Simulation, cfg.Shuffle.Seed, logger),
	}

	if defaultStrategy != "" {
		if _, err := svc.shuffles.SetDefault(defaultStrategy); err != nil {
			return nil, err
		}
	}
	return svc, nil
}
