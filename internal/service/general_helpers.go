package service

import "math"

// RoundingPrecision is the divisor used for two-decimal presentation rounding.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places using the package
// RoundingPrecision constant. Folds always accumulate at full precision;
// rounding is applied only when building API response payloads, never
// between fold steps.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}
