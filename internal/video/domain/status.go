package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid transition")

// Status tracks a single reconciliation submission. ResolvingSize may be
// re-entered for each bounded attempt; FallbackApplied is the side exit taken
// when the host never reported a derived size. Persisted and Rejected are
// terminal.
type Status string

const (
	Received        Status = "received"
	ResolvingSize   Status = "resolving_size"
	FallbackApplied Status = "fallback_applied"
	Persisted       Status = "persisted"
	Rejected        Status = "rejected"
)

func CanTransition(from, to Status) bool {
	switch from {
	case Received:
		return to == ResolvingSize || to == Rejected
	case ResolvingSize:
		return to == ResolvingSize || to == FallbackApplied || to == Persisted
	case FallbackApplied:
		return to == Persisted
	case Persisted:
		return false
	case Rejected:
		return false
	default:
		return false
	}
}

func ValidateTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
