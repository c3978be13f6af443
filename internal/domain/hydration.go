// internal/domain/hydration.go
package domain

// Bounds accepted during onboarding.
const (
	MinWeightKg = 1.0
	MaxWeightKg = 300.0
	MinAge      = 1
	MaxAge      = 120
)

// litersPerKg is the base daily water requirement per kilogram of body weight.
const litersPerKg = 0.033

// ComputeDailyNeed returns the daily water goal in liters for a person of the
// given weight (kg) and age (years). Inputs are expected to be validated.
func ComputeDailyNeed(weight float64, age int) float64 {
	base := weight * litersPerKg
	return base * ageMultiplier(age)
}

func ageMultiplier(age int) float64 {
	switch {
	case age < 30:
		return 1.0
	case age < 55:
		return 0.95
	default:
		return 0.9
	}
}
