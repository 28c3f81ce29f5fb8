package climate_test

import (
	"testing"

	"github.com/katalvlaran/farsight/climate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCountry(t *testing.T, name string, base, delta, ideal, d, power float64) *climate.Country {
	t.Helper()
	c, err := climate.NewCountry(name, base, delta, ideal, d, power)
	require.NoError(t, err)
	return c
}

// TestCountry_ModelQuantities checks eqs. (B.1)-(B.7) on a single country.
func TestCountry_ModelQuantities(t *testing.T) {
	c := mustCountry(t, "A", 20, 1, 13, 1, 0.25)

	assert.Equal(t, 21.0, c.ClimateChangeTemp())
	assert.Equal(t, 8.0, c.IdealGeoengineering())
	assert.Equal(t, 64.0, c.ClimateChangeDamage())
	assert.Equal(t, 0.25, c.WeightedDamage())
	assert.Equal(t, 0.0, c.Damage(0))
	assert.Equal(t, -60.0, c.Damage(6))
	assert.Equal(t, -c.ClimateChangeDamage(), c.Damage(c.IdealGeoengineering()))
	assert.Equal(t, 48.0, c.Payoff(4))
}

func TestNewCountry_Validation(t *testing.T) {
	_, err := climate.NewCountry("A", 20, 1, 13, -0.1, 0.5)
	assert.ErrorIs(t, err, climate.ErrNegativeDamage)

	_, err = climate.NewCountry("A", 20, 1, 13, 1, 1.5)
	assert.ErrorIs(t, err, climate.ErrPowerRange)

	_, err = climate.NewCountry("A", 20, 1, 13, 1, -0.5)
	assert.ErrorIs(t, err, climate.ErrPowerRange)
}

func TestCoalition(t *testing.T) {
	a := mustCountry(t, "A", 20, 1, 13, 1, 0.25)
	b := mustCountry(t, "B", 10, 3, 13, 1, 0.25)
	co := climate.NewCoalition(a, b)

	power, err := co.TotalPower()
	require.NoError(t, err)
	assert.Equal(t, 0.5, power)

	g, err := co.AvgIdealG()
	require.NoError(t, err)
	assert.Equal(t, 4.0, g)

	assert.Equal(t, []string{"A", "B"}, co.Names())
	assert.True(t, co.Contains("B"))
	assert.False(t, co.Contains("C"))
}

// TestCoalition_WeightsByDamage checks that heavier damage pulls the
// coalition's deployment towards that member's ideal.
func TestCoalition_WeightsByDamage(t *testing.T) {
	w := mustCountry(t, "W", 21.5, 3, 13, 0.75, 1.0/3)
	tt := mustCountry(t, "T", 14, 3, 13, 1.25, 1.0/3)

	g, err := climate.NewCoalition(w, tt).AvgIdealG()
	require.NoError(t, err)
	assert.InDelta(t, 6.8125, g, 1e-12)
}

func TestCoalition_Errors(t *testing.T) {
	a := mustCountry(t, "A", 20, 1, 13, 1, 0.75)
	b := mustCountry(t, "B", 10, 3, 13, 1, 0.5)
	_, err := climate.NewCoalition(a, b).TotalPower()
	assert.ErrorIs(t, err, climate.ErrPowerRange)

	_, err = climate.NewCoalition().AvgIdealG()
	assert.ErrorIs(t, err, climate.ErrEmptyCoalition)
}
