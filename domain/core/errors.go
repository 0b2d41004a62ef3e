package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Capability errors
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// Argument errors
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNegativeRepeats    = fmt.Errorf("%w: repetition count must be non-negative", ErrInvalidArgument)
	ErrMissingSource      = fmt.Errorf("%w: randomized strategy requires a random source", ErrInvalidArgument)
	ErrUnknownStrategy    = fmt.Errorf("%w: unknown strategy", ErrInvalidArgument)
	ErrUnknownDirection   = fmt.Errorf("%w: unknown faro direction", ErrInvalidArgument)
	ErrLengthMismatch     = fmt.Errorf("%w: sequence length mismatch", ErrInvalidArgument)
	ErrInsufficientTrials = fmt.Errorf("%w: not enough trials", ErrInvalidArgument)
)

// Error constructors with context
func NewUnsupportedOperationError(strategy string, shape string) error {
	return fmt.Errorf("%w: strategy %s cannot %s", ErrUnsupportedOperation, strategy, shape)
}

func NewInvalidArgumentError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, field, reason)
}

func NewUnknownStrategyError(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownStrategy, name)
}

// Error checking helpers
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsUnsupportedOperation(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}
