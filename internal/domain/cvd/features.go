package cvd

// FeatureCount is the width of the model input.
const FeatureCount = 11

// Positions in the feature vector. The order is fixed by the trained model;
// changing it requires retraining or a remapping adapter.
const (
	FeatureGender = iota
	FeatureHeight
	FeatureWeight
	FeatureSystolic
	FeatureDiastolic
	FeatureCholesterol
	FeatureGlucose
	FeatureSmokes
	FeatureAlcohol
	FeatureExercise
	FeatureAge
)

// FeatureVector is the numeric encoding of a ClinicalProfile handed to the
// Predictor.
type FeatureVector [FeatureCount]float64

// NewFeatureVector encodes p in model order.
func NewFeatureVector(p ClinicalProfile) FeatureVector {
	var fv FeatureVector
	fv[FeatureGender] = float64(GenderToCode(string(p.Gender)))
	fv[FeatureHeight] = p.HeightCm
	fv[FeatureWeight] = p.WeightKg
	fv[FeatureSystolic] = float64(p.SystolicBP)
	fv[FeatureDiastolic] = float64(p.DiastolicBP)
	fv[FeatureCholesterol] = float64(p.Cholesterol.Normalize())
	fv[FeatureGlucose] = float64(p.Glucose.Normalize())
	fv[FeatureSmokes] = float64(BoolToCode(p.Smokes))
	fv[FeatureAlcohol] = float64(BoolToCode(p.DrinksAlcohol))
	fv[FeatureExercise] = float64(BoolToCode(p.ExercisesRegularly))
	fv[FeatureAge] = float64(p.Age)
	return fv
}

// Slice returns a copy of the vector as a slice, the shape wire clients
// expect.
func (fv FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, fv[:])
	return out
}
