package state_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/farsight/climate"
	"github.com/katalvlaran/farsight/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func country(t *testing.T, name string, base, delta, ideal, d, power float64) *climate.Country {
	t.Helper()
	c, err := climate.NewCountry(name, base, delta, ideal, d, power)
	require.NoError(t, err)
	return c
}

func ptr(v float64) *float64 { return &v }

type abc struct {
	A, B, C *climate.Country
}

func (x abc) all() []*climate.Country { return []*climate.Country{x.A, x.B, x.C} }

func (x abc) singletons() []*climate.Coalition {
	return []*climate.Coalition{
		climate.NewCoalition(x.A),
		climate.NewCoalition(x.B),
		climate.NewCoalition(x.C),
	}
}

func stateCountries(t *testing.T) abc {
	return abc{
		A: country(t, "A", 15, 5, 10, 1, 0.60),
		B: country(t, "B", 10, 3, 13, 1, 0.30),
		C: country(t, "C", 20, 3, 13, 1, 0.10),
	}
}

func TestStrongestCoalition_WeakGovernance(t *testing.T) {
	x := stateCountries(t)
	coalitions := x.singletons()
	s, err := state.New("(test_name)", coalitions, x.all(), state.WeakGovernance, nil)
	require.NoError(t, err)

	// A and C both prefer G = 10; A is declared first.
	winner, err := s.StrongestCoalition()
	require.NoError(t, err)
	assert.Same(t, coalitions[0], winner)
}

func TestStrongestCoalition_PowerThreshold(t *testing.T) {
	x := stateCountries(t)
	coalitions := x.singletons()
	s, err := state.New("(test_name)", coalitions, x.all(), state.PowerThreshold, ptr(0.55))
	require.NoError(t, err)

	winner, err := s.StrongestCoalition()
	require.NoError(t, err)
	assert.Same(t, coalitions[0], winner)
}

func TestDeploymentLevel_PowerThreshold(t *testing.T) {
	tests := []struct {
		name     string
		minPower float64
		want     float64
	}{
		{"threshold met", 0.55, 10},
		{"threshold not met", 0.75, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x := stateCountries(t)
			s, err := state.New("(test_name)", x.singletons(), x.all(), state.PowerThreshold, ptr(tc.minPower))
			require.NoError(t, err)

			g, err := s.DeploymentLevel()
			require.NoError(t, err)
			assert.Equal(t, tc.want, g)
		})
	}
}

func TestPayoffs(t *testing.T) {
	x := stateCountries(t)

	s, err := state.New("(test_name)", x.singletons(), x.all(), state.PowerThreshold, ptr(0.75))
	require.NoError(t, err)
	payoffs, err := s.Payoffs()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 0, "B": 0, "C": 0}, payoffs)

	coalitions := []*climate.Coalition{
		climate.NewCoalition(x.A, x.C),
		climate.NewCoalition(x.B),
	}
	s, err = state.New("(test_name)", coalitions, x.all(), state.PowerThreshold, ptr(0.70))
	require.NoError(t, err)
	payoffs, err = s.Payoffs()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 100, "B": -100, "C": 100}, payoffs)
	assert.Equal(t, []string{"A", "C"}, s.Members())
}

func TestNew_Errors(t *testing.T) {
	x := stateCountries(t)

	_, err := state.New("(A)", []*climate.Coalition{climate.NewCoalition(x.A)}, x.all(), state.WeakGovernance, nil)
	assert.ErrorIs(t, err, state.ErrPowerSum)

	_, err = state.New("empty", nil, x.all(), state.WeakGovernance, nil)
	assert.ErrorIs(t, err, state.ErrNoCoalitions)
}

func TestDeploymentLevel_Errors(t *testing.T) {
	x := stateCountries(t)
	s, err := state.New("(test_name)", x.singletons(), x.all(), state.PowerThreshold, nil)
	require.NoError(t, err)
	_, err = s.DeploymentLevel()
	assert.ErrorIs(t, err, state.ErrMissingMinPower)

	half := []*climate.Country{
		country(t, "A", 15, 5, 10, 1, 0.5),
		country(t, "B", 10, 3, 13, 1, 0.5),
	}
	coalitions := []*climate.Coalition{climate.NewCoalition(half[0]), climate.NewCoalition(half[1])}
	s, err = state.New("(tie)", coalitions, half, state.PowerThreshold, ptr(0.5))
	require.NoError(t, err)
	_, err = s.DeploymentLevel()
	assert.ErrorIs(t, err, state.ErrSeveralWinners)
}

func TestParsePowerRule(t *testing.T) {
	for _, rule := range []state.PowerRule{state.WeakGovernance, state.PowerThreshold} {
		got, err := state.ParsePowerRule(rule.String())
		require.NoError(t, err)
		assert.Equal(t, rule, got)
	}

	_, err := state.ParsePowerRule("strongest")
	assert.ErrorIs(t, err, state.ErrUnknownPowerRule)
}

func zeroIdealStates(t *testing.T) []*state.State {
	a := country(t, "A", 10, 3, 13, 1, 0.60)
	b := country(t, "B", 11, 2, 13, 1, 0.30)
	c := country(t, "C", 12, 1, 13, 1, 0.10)
	all := []*climate.Country{a, b, c}

	structures := map[string][]*climate.Coalition{
		"state_1": {climate.NewCoalition(a), climate.NewCoalition(b), climate.NewCoalition(c)},
		"state_2": {climate.NewCoalition(a, b), climate.NewCoalition(c)},
		"state_3": {climate.NewCoalition(a, b, c)},
	}
	var out []*state.State
	for _, name := range []string{"state_1", "state_2", "state_3"} {
		s, err := state.New(name, structures[name], all, state.WeakGovernance, nil)
		require.NoError(t, err)
		out = append(out, s)
	}

	return out
}

// Every country's ideal deployment is zero, so all payoffs vanish.
func TestPayoffMatrix_AllZeros(t *testing.T) {
	states := zeroIdealStates(t)
	f, err := state.PayoffMatrix(states, []string{"A", "B", "C"})
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff([]string{"state_1", "state_2", "state_3"}, f.RowLabels))
	for _, row := range f.Data {
		assert.Equal(t, []float64{0, 0, 0}, row)
	}
}

func TestDeploymentLevels_AllZeros(t *testing.T) {
	f, err := state.DeploymentLevels(zeroIdealStates(t))
	require.NoError(t, err)
	assert.Equal(t, []string{state.GeoengineeringColumn}, f.ColLabels)
	assert.Equal(t, []float64{0, 0, 0}, f.Column(0))
}
