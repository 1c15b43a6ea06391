// Package fitness computes derived health metrics from body measurements.
// All functions are pure and deterministic.
package fitness

import "math"

// BMI returns the body mass index for the given weight in kilograms and
// height in centimeters, rounded to one decimal place.
func BMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100
	bmi := weightKg / (h * h)
	return math.Round(bmi*10) / 10
}

// FitnessAge adjusts a chronological age by a BMI-based offset band:
// underweight adds one year, normal leaves it unchanged, overweight adds
// five, obese adds ten.
func FitnessAge(bmi float64, age int) int {
	switch {
	case bmi < 18.5:
		return age + 1
	case bmi < 25:
		return age
	case bmi < 30:
		return age + 5
	default:
		return age + 10
	}
}
