package state

import "errors"

var (
	// ErrUnknownPowerRule indicates a power rule name that is not recognised.
	ErrUnknownPowerRule = errors.New("state: unknown power rule")

	// ErrPowerSum indicates coalition powers that do not add up to one.
	ErrPowerSum = errors.New("state: coalition powers must sum up to 1")

	// ErrMissingMinPower indicates a PowerThreshold state without a threshold.
	ErrMissingMinPower = errors.New("state: minimum power threshold is not defined")

	// ErrSeveralWinners indicates a tie for the largest power share among deploying coalitions.
	ErrSeveralWinners = errors.New("state: several winning coalitions not allowed")

	// ErrNoCoalitions indicates a state without any coalition.
	ErrNoCoalitions = errors.New("state: no coalitions")
)
