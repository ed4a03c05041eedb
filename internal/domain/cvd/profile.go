package cvd

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidProfile is returned when age, height or weight is missing or
// outside the range a person can have.
var ErrInvalidProfile = errors.New("invalid clinical profile")

// Body measurement bounds. Anything outside them is a typo or unit mix-up.
const (
	MinHeightCm = 30
	MaxHeightCm = 300
	MaxWeightKg = 700
)

// Plausible blood-pressure bounds enforced by the input forms.
const (
	DiastolicMin = 40
	DiastolicMax = 200
	SystolicMin  = 70
	SystolicMax  = 300
)

// ClinicalProfile is the set of measurements evaluated by the engine.
type ClinicalProfile struct {
	Age                int     `json:"age"`
	Gender             Gender  `json:"gender"`
	HeightCm           float64 `json:"height_cm"`
	WeightKg           float64 `json:"weight_kg"`
	SystolicBP         int     `json:"systolic_bp"`
	DiastolicBP        int     `json:"diastolic_bp"`
	Cholesterol        Level   `json:"cholesterol"`
	Glucose            Level   `json:"glucose"`
	Smokes             bool    `json:"smokes"`
	DrinksAlcohol      bool    `json:"drinks_alcohol"`
	ExercisesRegularly bool    `json:"exercises_regularly"`
}

// Validate checks the fields the engine cannot work without. Blood pressure
// is deliberately not range-checked here; callers clamp it.
func (p ClinicalProfile) Validate() error {
	switch {
	case p.Age <= 0:
		return fmt.Errorf("%w: age must be positive", ErrInvalidProfile)
	case p.HeightCm <= 0:
		return fmt.Errorf("%w: height must be positive", ErrInvalidProfile)
	case p.WeightKg <= 0:
		return fmt.Errorf("%w: weight must be positive", ErrInvalidProfile)
	case !(p.HeightCm >= MinHeightCm && p.HeightCm <= MaxHeightCm):
		return fmt.Errorf("%w: height must be between %d and %d cm", ErrInvalidProfile, MinHeightCm, MaxHeightCm)
	case !(p.WeightKg <= MaxWeightKg):
		return fmt.Errorf("%w: weight must be at most %d kg", ErrInvalidProfile, MaxWeightKg)
	}
	if bmi := BMI(p.WeightKg, p.HeightCm); math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return fmt.Errorf("%w: bmi is not a finite number", ErrInvalidProfile)
	}
	return nil
}

// ClampBloodPressure returns a copy with both readings forced into the
// form bounds.
func (p ClinicalProfile) ClampBloodPressure() ClinicalProfile {
	p.DiastolicBP = clamp(p.DiastolicBP, DiastolicMin, DiastolicMax)
	p.SystolicBP = clamp(p.SystolicBP, SystolicMin, SystolicMax)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
