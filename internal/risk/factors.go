package risk

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInput marks malformed factor values reaching the engine
// (negative counts, non-finite numbers). It is always a caller bug and
// is never retried.
var ErrInvalidInput = errors.New("invalid input")

// BloodPressure is a single paired reading in mmHg.
type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// Factors is the transient input to an assessment, assembled fresh for
// every recomputation. Optional clinical signals are pointers: a nil
// field means "no reading exists", which is distinct from a present
// zero value and scores nothing for that band.
type Factors struct {
	// Age in whole years at the time of assessment.
	Age int

	// Underweight is derived from BMI < 18.5 when height is known, or
	// from a direct low-weight threshold otherwise. UnderweightApprox
	// is set when the coarse fallback was used, so the contributing
	// factor note can flag the approximation.
	Underweight       bool
	UnderweightApprox bool

	HasChronicConditions        bool
	HadAbnormalPregnancyHistory bool
	PreviousCesareans           int
	PreviousMiscarriages        int

	BloodPressure *BloodPressure
	Hemoglobin    *float64 // g/dL
	BloodGlucose  *float64 // mg/dL
}

// Validate checks that every numeric factor is a well-formed domain
// value. Absence and zero stay distinct: a nil optional is fine, a
// present negative or non-finite value is not.
func (f Factors) Validate() error {
	if f.Age < 0 {
		return fmt.Errorf("%w: age must not be negative, got %d", ErrInvalidInput, f.Age)
	}
	if f.PreviousCesareans < 0 {
		return fmt.Errorf("%w: previous cesareans must not be negative, got %d", ErrInvalidInput, f.PreviousCesareans)
	}
	if f.PreviousMiscarriages < 0 {
		return fmt.Errorf("%w: previous miscarriages must not be negative, got %d", ErrInvalidInput, f.PreviousMiscarriages)
	}
	if bp := f.BloodPressure; bp != nil {
		if bp.Systolic < 0 || bp.Diastolic < 0 {
			return fmt.Errorf("%w: blood pressure must not be negative, got %d/%d", ErrInvalidInput, bp.Systolic, bp.Diastolic)
		}
	}
	if err := validateOptional("hemoglobin", f.Hemoglobin); err != nil {
		return err
	}
	if err := validateOptional("blood glucose", f.BloodGlucose); err != nil {
		return err
	}
	return nil
}

func validateOptional(name string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidInput, name, *v)
	}
	if *v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidInput, name, *v)
	}
	return nil
}

// AgeAt returns the age in whole years at the reference time. The
// reference is passed explicitly so callers never reach for the
// ambient clock inside the scoring path.
func AgeAt(dateOfBirth, at time.Time) int {
	years := at.Year() - dateOfBirth.Year()
	anniversary := dateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	// A date of birth after the reference time yields a negative age,
	// which Validate rejects rather than clamping it away.
	return years
}
