package state

import "fmt"

// PowerRule selects the strongest coalition of a state.
type PowerRule int

const (
	// WeakGovernance lets the coalition preferring the most geoengineering deploy.
	WeakGovernance PowerRule = iota
	// PowerThreshold lets the most powerful coalition deploy if it is powerful enough.
	PowerThreshold
)

const (
	weakGovernanceName = "weak_governance"
	powerThresholdName = "power_threshold"
)

// String returns the configuration name of the rule.
func (r PowerRule) String() string {
	switch r {
	case WeakGovernance:
		return weakGovernanceName
	case PowerThreshold:
		return powerThresholdName
	default:
		return fmt.Sprintf("PowerRule(%d)", int(r))
	}
}

// ParsePowerRule maps a configuration name to a PowerRule.
func ParsePowerRule(name string) (PowerRule, error) {
	switch name {
	case weakGovernanceName:
		return WeakGovernance, nil
	case powerThresholdName:
		return PowerThreshold, nil
	default:
		return 0, fmt.Errorf("%q: %w (want %s or %s)", name, ErrUnknownPowerRule, powerThresholdName, weakGovernanceName)
	}
}
