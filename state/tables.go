package state

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/farsight/frame"
)

// GeoengineeringColumn is the single column of the deployment-level table.
const GeoengineeringColumn = "G"

// errNonFinite marks a payoff or deployment level that is NaN or infinite.
var errNonFinite = errors.New("state: non-finite value")

// PayoffMatrix tabulates the static payoffs, states × players.
func PayoffMatrix(states []*State, players []string) (*frame.Frame, error) {
	f, err := frame.New("payoffs", Names(states), players)
	if err != nil {
		return nil, err
	}
	for i, s := range states {
		payoffs, err := s.Payoffs()
		if err != nil {
			return nil, err
		}
		for j, p := range players {
			v, ok := payoffs[p]
			if !ok {
				return nil, fmt.Errorf("state %s: player %s: %w", s.Name, p, frame.ErrUnknownLabel)
			}
			if !isFinite(v) {
				return nil, fmt.Errorf("state %s: payoff of %s: %w", s.Name, p, errNonFinite)
			}
			f.Data[i][j] = v
		}
	}

	return f, nil
}

// DeploymentLevels tabulates G per state, one row per state.
func DeploymentLevels(states []*State) (*frame.Frame, error) {
	f, err := frame.New("geoengineering", Names(states), []string{GeoengineeringColumn})
	if err != nil {
		return nil, err
	}
	for i, s := range states {
		g, err := s.DeploymentLevel()
		if err != nil {
			return nil, err
		}
		if !isFinite(g) {
			return nil, fmt.Errorf("state %s: deployment level: %w", s.Name, errNonFinite)
		}
		f.Data[i][0] = g
	}

	return f, nil
}

// Names returns the state names in order.
func Names(states []*State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Name
	}

	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
