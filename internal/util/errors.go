// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input provided")

	// Validation failures wrap ErrInvalidInput so callers can match either.
	ErrInvalidWeight = fmt.Errorf("%w: weight must be a number between 1 and 300 kg", ErrInvalidInput)
	ErrInvalidAge    = fmt.Errorf("%w: age must be a whole number between 1 and 120", ErrInvalidInput)
	ErrInvalidAmount = fmt.Errorf("%w: amount must be a positive number of milliliters", ErrInvalidInput)

	ErrNoProfile            = errors.New("user has no hydration profile")
	ErrOnboardingInProgress = errors.New("user is still onboarding")
	ErrProfileExists        = errors.New("user already has a hydration profile")
)

// IsError reports whether err matches target anywhere in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
