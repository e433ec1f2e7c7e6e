// Package contract defines the error kinds shared by the correlation engine
// and the record helpers.
//
// Every error produced by those packages wraps exactly one of the sentinels
// below, so callers can branch with errors.Is regardless of the message:
//
//	if errors.Is(err, contract.ErrConfiguration) {
//	    return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
//	}
package contract

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports a missing mandatory argument or mutually exclusive options.
	ErrConfiguration = errors.New("configuration error")

	// ErrTypeContract reports a supplied strategy, reporter or predicate that cannot be invoked.
	ErrTypeContract = errors.New("type contract error")

	// ErrInvariantViolation reports an internal state that should be impossible.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrStrategyFailed reports a caller-supplied function that panicked mid-batch.
	ErrStrategyFailed = errors.New("strategy failed")
)

// Configuration returns an ErrConfiguration naming the offending argument.
func Configuration(argument, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrConfiguration, argument, fmt.Sprintf(format, args...))
}

// TypeContract returns an ErrTypeContract naming the offending argument.
func TypeContract(argument, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrTypeContract, argument, fmt.Sprintf(format, args...))
}

// Invariant returns an ErrInvariantViolation describing the broken invariant.
func Invariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// StrategyFailure wraps a recovered panic value raised while evaluating a strategy.
func StrategyFailure(stage string, recovered any) error {
	if err, ok := recovered.(error); ok {
		return fmt.Errorf("%w: %s: %w", ErrStrategyFailed, stage, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrStrategyFailed, stage, recovered)
}
