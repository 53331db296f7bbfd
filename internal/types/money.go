// README: Rounding helpers for amounts shown to clients.
package types

import "math"

// Round2 rounds to cents; used for money and distances.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place; used for hours.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
