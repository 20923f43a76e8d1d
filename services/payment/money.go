package payment

import "math"

// ToMinorUnits converts major units to pence, rounding to the nearest penny.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts pence back to major units.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}
