package climate

import "fmt"

// Coalition is a group of cooperating countries. Member order is kept as
// given; it matters only for the summation order of floating-point sums.
type Coalition struct {
	Members []*Country
}

// NewCoalition groups members into a coalition.
func NewCoalition(members ...*Country) *Coalition {
	return &Coalition{Members: members}
}

// TotalPower is the coalition's global power share; it must lie in [0,1].
func (c *Coalition) TotalPower() (float64, error) {
	power := 0.0
	for _, m := range c.Members {
		power += m.Power
	}
	if power < 0 || power > 1 {
		return 0, fmt.Errorf("coalition %v: %w (got %g)", c.Names(), ErrPowerRange, power)
	}

	return power, nil
}

// AvgIdealG is the coalition's weighted ideal deployment, eq. (B.9):
// Σ alpha_i·eta_i / Σ eta_i.
func (c *Coalition) AvgIdealG() (float64, error) {
	var num, den float64
	for _, m := range c.Members {
		num += m.IdealGeoengineering() * m.WeightedDamage()
		den += m.WeightedDamage()
	}
	if den == 0 {
		return 0, fmt.Errorf("coalition %v: %w", c.Names(), ErrEmptyCoalition)
	}

	return num / den, nil
}

// Names lists member names in coalition order.
func (c *Coalition) Names() []string {
	out := make([]string, len(c.Members))
	for i, m := range c.Members {
		out[i] = m.Name
	}

	return out
}

// Contains reports whether a country with the given name is a member.
func (c *Coalition) Contains(name string) bool {
	for _, m := range c.Members {
		if m.Name == name {
			return true
		}
	}

	return false
}
