package state

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/farsight/climate"
	"github.com/katalvlaran/farsight/internal/numeric"
)

// powerSumAtol is the tolerance of the "powers sum to one" check.
const powerSumAtol = 1e-12

// State is one coalition structure of the game.
type State struct {
	Name       string
	Coalitions []*climate.Coalition
	Countries  []*climate.Country
	Rule       PowerRule
	// MinPower is the deployment threshold; required for PowerThreshold.
	MinPower *float64

	powers []float64
}

// New validates the coalition structure and returns a State.
func New(name string, coalitions []*climate.Coalition, countries []*climate.Country, rule PowerRule, minPower *float64) (*State, error) {
	if len(coalitions) == 0 {
		return nil, fmt.Errorf("state %s: %w", name, ErrNoCoalitions)
	}
	powers := make([]float64, len(coalitions))
	total := 0.0
	for k, c := range coalitions {
		p, err := c.TotalPower()
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", name, err)
		}
		powers[k] = p
		total += p
	}
	if !numeric.IsClose(total, 1, powerSumAtol) {
		return nil, fmt.Errorf("state %s: %w (got %g)", name, ErrPowerSum, total)
	}

	return &State{
		Name:       name,
		Coalitions: coalitions,
		Countries:  countries,
		Rule:       rule,
		MinPower:   minPower,
		powers:     powers,
	}, nil
}

// StrongestCoalition returns the coalition that gets to implement
// geoengineering under s.Rule. Earlier coalitions win ties.
func (s *State) StrongestCoalition() (*climate.Coalition, error) {
	keys := make([]float64, len(s.Coalitions))
	for k, c := range s.Coalitions {
		var err error
		switch s.Rule {
		case PowerThreshold:
			keys[k] = s.powers[k]
		case WeakGovernance:
			keys[k], err = c.AvgIdealG()
		default:
			err = fmt.Errorf("%v: %w", s.Rule, ErrUnknownPowerRule)
		}
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", s.Name, err)
		}
	}

	order := make([]int, len(s.Coalitions))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool { return keys[order[a]] > keys[order[b]] })

	return s.Coalitions[order[0]], nil
}

// DeploymentLevel returns the geoengineering level G of the state.
func (s *State) DeploymentLevel() (float64, error) {
	winner, err := s.StrongestCoalition()
	if err != nil {
		return 0, err
	}
	g, err := winner.AvgIdealG()
	if err != nil {
		return 0, fmt.Errorf("state %s: %w", s.Name, err)
	}
	if s.Rule != PowerThreshold {
		return g, nil
	}

	if s.MinPower == nil {
		return 0, fmt.Errorf("state %s: %w", s.Name, ErrMissingMinPower)
	}
	winnerPower, err := winner.TotalPower()
	if err != nil {
		return 0, fmt.Errorf("state %s: %w", s.Name, err)
	}
	if winnerPower < *s.MinPower {
		return 0, nil
	}
	// A deploying coalition must hold the largest power share alone.
	ties := 0
	for _, p := range s.powers {
		if p == winnerPower {
			ties++
		}
	}
	if ties != 1 {
		return 0, fmt.Errorf("state %s: %w (%d coalitions with power %g)", s.Name, ErrSeveralWinners, ties, winnerPower)
	}

	return g, nil
}

// Payoffs maps every country to its static payoff in this state.
func (s *State) Payoffs() (map[string]float64, error) {
	g, err := s.DeploymentLevel()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(s.Countries))
	for _, c := range s.Countries {
		out[c.Name] = c.Payoff(g)
	}

	return out, nil
}

// Members lists the countries that belong to a non-singleton coalition,
// in country order.
func (s *State) Members() []string {
	var out []string
	for _, country := range s.Countries {
		for _, c := range s.Coalitions {
			if len(c.Members) > 1 && c.Contains(country.Name) {
				out = append(out, country.Name)
				break
			}
		}
	}

	return out
}

// Powers returns the coalition power shares in coalition order.
func (s *State) Powers() []float64 {
	return append([]float64(nil), s.powers...)
}
