package climate

import "errors"

var (
	// ErrNegativeDamage indicates a marginal damage parameter below zero.
	ErrNegativeDamage = errors.New("climate: marginal damage cannot be negative")

	// ErrPowerRange indicates a power share (country or coalition) outside [0,1].
	ErrPowerRange = errors.New("climate: power must be in [0,1]")

	// ErrEmptyCoalition indicates a coalition without members or with zero weighted damage.
	ErrEmptyCoalition = errors.New("climate: coalition has no weight")
)
