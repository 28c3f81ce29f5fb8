package climate

import "fmt"

// Country is an individual player of the game.
//
// Fields map to the model parameters: BaseTemp is T^base and DeltaTemp is
// Δ in eq. (B.1); IdealTemp is T^ideal and MarginalDamage is d in eq.
// (B.3); Power is the global power share gamma in eq. (B.6).
type Country struct {
	Name           string
	BaseTemp       float64
	DeltaTemp      float64
	IdealTemp      float64
	MarginalDamage float64
	Power          float64
}

// NewCountry validates the parameters and returns a Country.
func NewCountry(name string, baseTemp, deltaTemp, idealTemp, mDamage, power float64) (*Country, error) {
	if mDamage < 0 {
		return nil, fmt.Errorf("country %s: %w (got %g)", name, ErrNegativeDamage, mDamage)
	}
	if power < 0 || power > 1 {
		return nil, fmt.Errorf("country %s: %w (got %g)", name, ErrPowerRange, power)
	}

	return &Country{
		Name:           name,
		BaseTemp:       baseTemp,
		DeltaTemp:      deltaTemp,
		IdealTemp:      idealTemp,
		MarginalDamage: mDamage,
		Power:          power,
	}, nil
}

// ClimateChangeTemp is the temperature with zero geoengineering, eq. (B.1).
func (c *Country) ClimateChangeTemp() float64 {
	return c.BaseTemp + c.DeltaTemp
}

// IdealGeoengineering is the country's preferred deployment level, alpha in eq. (B.4).
func (c *Country) IdealGeoengineering() float64 {
	return c.ClimateChangeTemp() - c.IdealTemp
}

// ClimateChangeDamage is the damage without geoengineering, K in eq. (B.3).
func (c *Country) ClimateChangeDamage() float64 {
	dev := c.ClimateChangeTemp() - c.IdealTemp
	return c.MarginalDamage * dev * dev
}

// WeightedDamage is the power-weighted marginal damage, eta in eq. (B.7).
func (c *Country) WeightedDamage() float64 {
	return c.Power * c.MarginalDamage
}

// Damage returns the climate damage under deployment G, normalised so that
// Damage(0) == 0 for every country.
func (c *Country) Damage(G float64) float64 {
	dev := c.IdealGeoengineering() - G
	return c.MarginalDamage*dev*dev - c.ClimateChangeDamage()
}

// Payoff is the country's static payoff under deployment G, eq. (B.3).
func (c *Country) Payoff(G float64) float64 {
	return -c.Damage(G)
}
