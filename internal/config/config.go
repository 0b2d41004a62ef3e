package config

import (
	"os"
	"strconv"
	"time"

	"goshuffle/domain/shuffle"
	"goshuffle/internal"
	"goshuffle/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Shuffle    ShuffleConfig
	Simulation SimulationConfig
	Server     ServerConfig
	LogLevel   internal.LogLevel
}

// ShuffleConfig holds settings for the shuffle core
type ShuffleConfig struct {
	DefaultStrategy shuffle.Strategy
	Seed            int64 // 0 seeds the shared source from the clock
}

// SimulationConfig holds defaults for simulation runs
type SimulationConfig struct {
	Trials   int
	Workers  int
	DeckSize int
	Timeout  time.Duration
	Alpha    float64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// LoadDotEnv loads variables from the given .env files (or ./.env) without
// overriding the environment. A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	shuffleConfig, err := loadShuffleConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load shuffle configuration")
	}
	config.Shuffle = *shuffleConfig

	config.Simulation = *loadSimulationConfig()
	config.Server = *loadServerConfig()

	level, err := internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	config.LogLevel = level

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadShuffleConfig() (*ShuffleConfig, error) {
	name := getEnvOrDefault("SHUFFLE_DEFAULT_STRATEGY", "random")
	strategy, err := shuffle.ParseStrategy(name)
	if err != nil {
		return nil, errors.ConfigInvalid("SHUFFLE_DEFAULT_STRATEGY: " + err.Error())
	}

	seed := int64(0)
	if value := os.Getenv("SHUFFLE_SEED"); value != "" {
		seed, err = strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("SHUFFLE_SEED must be an integer")
		}
	}

	return &ShuffleConfig{
		DefaultStrategy: strategy,
		Seed:            seed,
	}, nil
}

func loadSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Trials:   getEnvIntOrDefault("SHUFFLE_TRIALS", 10000),
		Workers:  getEnvIntOrDefault("SHUFFLE_WORKERS", 4),
		DeckSize: getEnvIntOrDefault("SHUFFLE_DECK_SIZE", 52),
		Timeout:  getEnvDurationOrDefault("SHUFFLE_SIMULATION_TIMEOUT", 30*time.Second),
		Alpha:    getEnvFloatOrDefault("SHUFFLE_ALPHA", 0.001),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func validateConfig(config *Config) error {
	if config.Simulation.Trials < 1 {
		return errors.ConfigInvalid("SHUFFLE_TRIALS must be positive")
	}
	if config.Simulation.Workers < 1 {
		return errors.ConfigInvalid("SHUFFLE_WORKERS must be positive")
	}
	if config.Simulation.DeckSize < 1 {
		return errors.ConfigInvalid("SHUFFLE_DECK_SIZE must be positive")
	}
	if config.Simulation.Alpha <= 0 || config.Simulation.Alpha >= 1 {
		return errors.ConfigInvalid("SHUFFLE_ALPHA must be in (0, 1)")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
