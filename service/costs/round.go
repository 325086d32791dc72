package costs

import "math"

// roundHalfUp rounds to the nearest integer with halves going towards +Inf
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Round2 rounds an amount to cents
func Round2(x float64) float64 {
	return roundHalfUp(x*100) / 100
}
