package risk

import (
	"fmt"
	"math"
)

// BMICategory is the standard four-band body-mass-index classification.
type BMICategory string

const (
	BMIUnderweight BMICategory = "UNDERWEIGHT"
	BMINormal      BMICategory = "NORMAL"
	BMIOverweight  BMICategory = "OVERWEIGHT"
	BMIObese       BMICategory = "OBESE"
)

// Band boundaries shared by BMICategory, IsUnderweight and the
// weight-gain table.
const (
	underweightBMI = 18.5
	overweightBMI  = 25.0
	obeseBMI       = 30.0
)

// BMI computes body mass index from weight in kilograms and height in
// centimeters.
func BMI(weightKg, heightCm float64) (float64, error) {
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) || math.IsNaN(heightCm) || math.IsInf(heightCm, 0) {
		return 0, fmt.Errorf("%w: weight and height must be finite", ErrInvalidInput)
	}
	if heightCm <= 0 {
		return 0, fmt.Errorf("%w: height must be positive, got %v cm", ErrInvalidInput, heightCm)
	}
	if weightKg < 0 {
		return 0, fmt.Errorf("%w: weight must not be negative, got %v kg", ErrInvalidInput, weightKg)
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM), nil
}

// IsUnderweight reports whether the BMI falls below the underweight
// boundary.
func IsUnderweight(bmi float64) bool {
	return bmi < underweightBMI
}

// BMICategoryOf classifies a BMI into its band.
func BMICategoryOf(bmi float64) BMICategory {
	switch {
	case bmi < underweightBMI:
		return BMIUnderweight
	case bmi < overweightBMI:
		return BMINormal
	case bmi < obeseBMI:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// RecommendedWeightGainRange returns the advised total pregnancy weight
// gain in kilograms for a pre-pregnancy BMI. The values are a fixed
// clinical policy table keyed by the four BMI bands, kept as literals
// for compatibility with existing guidance.
func RecommendedWeightGainRange(prePregnancyBMI float64) (minKg, maxKg float64) {
	switch BMICategoryOf(prePregnancyBMI) {
	case BMIUnderweight:
		return 12.5, 18
	case BMINormal:
		return 11.5, 16
	case BMIOverweight:
		return 7, 11.5
	default:
		return 5, 9
	}
}
