// Package utils provides utility functions for the cadetops analytics service.
// This file contains numeric conversion and bounding utilities.
package utils

import "math"

// ================================================================================
// Bounding
// ================================================================================

// ClampInt bounds v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat bounds v to [lo, hi]; NaN maps to lo
func ClampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ================================================================================
// Rounding
// ================================================================================

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SafeRatio returns num/den, or 0 when den is zero
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

//Personal.AI order the ending
