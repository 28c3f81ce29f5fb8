// Package numeric holds the floating-point comparison policy shared by the
// equilibrium checks: |a−b| <= atol + rtol·|b|, the usual isclose rule.
package numeric

import "math"

const (
	// DefaultAtol is the absolute tolerance used for value comparisons.
	DefaultAtol = 1e-12

	// DefaultRtol is the relative tolerance of every comparison.
	DefaultRtol = 1e-5

	// SumAtol is the absolute tolerance for "sums to one" checks.
	SumAtol = 1e-8
)

// IsClose reports |a−b| <= atol + DefaultRtol·|b|. The test is asymmetric in
// a and b.
func IsClose(a, b, atol float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return math.Abs(a-b) <= atol+DefaultRtol*math.Abs(b)
}

// AllClose reports whether IsClose holds element-wise; lengths must match.
func AllClose(a, b []float64, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !IsClose(a[i], b[i], atol) {
			return false
		}
	}
	return true
}

// InUnit reports 0 <= p <= 1.
func InUnit(p float64) bool {
	return p >= 0 && p <= 1
}
