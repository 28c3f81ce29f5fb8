package experiment

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/farsight/internal/numeric"
	"github.com/katalvlaran/farsight/state"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("experiment: invalid configuration")

// StateSpec declares one state and its coalition structure.
type StateSpec struct {
	Name       string     `yaml:"name"`
	Coalitions [][]string `yaml:"coalitions"`
}

// Config holds every parameter of one experiment. It is immutable during a run.
type Config struct {
	// Name identifies the experiment within its suite.
	Name string `yaml:"name"`
	// ExperimentName names the output files.
	ExperimentName string `yaml:"experiment_name"`

	Players []string    `yaml:"players"`
	States  []StateSpec `yaml:"states"`

	BaseTemp       map[string]float64 `yaml:"base_temp"`
	DeltaTemp      map[string]float64 `yaml:"delta_temp"`
	IdealTemp      map[string]float64 `yaml:"ideal_temp"`
	MarginalDamage map[string]float64 `yaml:"m_damage"`
	Power          map[string]float64 `yaml:"power"`
	Protocol       map[string]float64 `yaml:"protocol"`

	Discounting       float64  `yaml:"discounting"`
	PowerRule         string   `yaml:"power_rule"`
	MinPower          *float64 `yaml:"min_power"`
	UnanimityRequired bool     `yaml:"unanimity_required"`

	StrategyTable    string `yaml:"strategy_table"`
	StrategyTableDir string `yaml:"strategy_table_dir"`
}

// StateNames lists the state names in declaration order.
func (c *Config) StateNames() []string {
	out := make([]string, len(c.States))
	for i, s := range c.States {
		out[i] = s.Name
	}

	return out
}

// Validate checks the configuration before anything is computed.
func (c *Config) Validate() error {
	if c.ExperimentName == "" {
		return invalid("experiment_name is required")
	}
	if err := uniqueNonEmpty("players", c.Players); err != nil {
		return err
	}
	if err := uniqueNonEmpty("states", c.StateNames()); err != nil {
		return err
	}

	perPlayer := []struct {
		key    string
		values map[string]float64
	}{
		{"base_temp", c.BaseTemp},
		{"delta_temp", c.DeltaTemp},
		{"ideal_temp", c.IdealTemp},
		{"m_damage", c.MarginalDamage},
		{"power", c.Power},
		{"protocol", c.Protocol},
	}
	for _, pp := range perPlayer {
		if len(pp.values) != len(c.Players) {
			return invalid("%s: %d values for %d players", pp.key, len(pp.values), len(c.Players))
		}
		for _, p := range c.Players {
			v, ok := pp.values[p]
			if !ok {
				return invalid("%s: no value for player %s", pp.key, p)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return invalid("%s: value for player %s is not finite", pp.key, p)
			}
		}
	}

	protocolSum := 0.0
	for _, p := range c.Players {
		if !numeric.InUnit(c.Protocol[p]) {
			return invalid("protocol: %g for player %s is not a probability", c.Protocol[p], p)
		}
		protocolSum += c.Protocol[p]
	}
	if !numeric.IsClose(protocolSum, 1, numeric.SumAtol) {
		return invalid("protocol sums to %g, want 1", protocolSum)
	}

	for _, s := range c.States {
		seen := make(map[string]bool, len(c.Players))
		for _, coalition := range s.Coalitions {
			if len(coalition) == 0 {
				return invalid("state %s: empty coalition", s.Name)
			}
			for _, p := range coalition {
				if !contains(c.Players, p) {
					return invalid("state %s: unknown player %s", s.Name, p)
				}
				if seen[p] {
					return invalid("state %s: player %s in several coalitions", s.Name, p)
				}
				seen[p] = true
			}
		}
		if len(seen) != len(c.Players) {
			return invalid("state %s: coalitions cover %d of %d players", s.Name, len(seen), len(c.Players))
		}
	}

	if !(c.Discounting > 0 && c.Discounting < 1) {
		return invalid("discounting must lie in (0,1), got %g", c.Discounting)
	}
	rule, err := state.ParsePowerRule(c.PowerRule)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if rule == state.PowerThreshold && c.MinPower == nil {
		return invalid("min_power is required for %s", rule)
	}
	if c.StrategyTable == "" {
		return invalid("strategy_table is required")
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func uniqueNonEmpty(key string, names []string) error {
	if len(names) == 0 {
		return invalid("%s: none declared", key)
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return invalid("%s: empty name", key)
		}
		if seen[n] {
			return invalid("%s: %q declared twice", key, n)
		}
		seen[n] = true
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
