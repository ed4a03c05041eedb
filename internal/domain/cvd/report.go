package cvd

import (
	"context"
	"fmt"
)

// BloodPressureTiers holds the two independent blood-pressure findings.
type BloodPressureTiers struct {
	Diastolic Finding `json:"diastolic"`
	Systolic  Finding `json:"systolic"`
}

// RiskReport is the outcome of one evaluation. It is built in full or not
// at all.
type RiskReport struct {
	Audience           Audience           `json:"audience"`
	HighRiskPrediction bool               `json:"high_risk_prediction"`
	Headline           Finding            `json:"headline"`
	BMI                float64            `json:"bmi"`
	BMITier            Finding            `json:"bmi_tier"`
	BloodPressure      BloodPressureTiers `json:"blood_pressure"`
	Cholesterol        Finding            `json:"cholesterol"`
	Glucose            Finding            `json:"glucose"`
	Lifestyle          []Finding          `json:"lifestyle"`
}

// Section titles in display order.
const (
	SectionPrediction    = "Cardiovascular Disease Prediction"
	SectionBMI           = "Body Mass Index"
	SectionBloodPressure = "Diastolic & Systolic Blood Pressure"
	SectionCholesterol   = "Cholesterol Level"
	SectionGlucose       = "Glucose Level"
	SectionLifestyle     = "Life Style"
)

// Section groups findings under a heading for presentation.
type Section struct {
	Title    string    `json:"title"`
	Findings []Finding `json:"findings"`
}

// Sections lists the report in its fixed display order.
func (r *RiskReport) Sections() []Section {
	lifestyle := make([]Finding, len(r.Lifestyle))
	copy(lifestyle, r.Lifestyle)
	return []Section{
		{Title: SectionPrediction, Findings: []Finding{r.Headline}},
		{Title: SectionBMI, Findings: []Finding{r.BMITier}},
		{Title: SectionBloodPressure, Findings: []Finding{r.BloodPressure.Diastolic, r.BloodPressure.Systolic}},
		{Title: SectionCholesterol, Findings: []Finding{r.Cholesterol}},
		{Title: SectionGlucose, Findings: []Finding{r.Glucose}},
		{Title: SectionLifestyle, Findings: lifestyle},
	}
}

// Findings flattens Sections.
func (r *RiskReport) Findings() []Finding {
	var out []Finding
	for _, s := range r.Sections() {
		out = append(out, s.Findings...)
	}
	return out
}

// Engine composes the full report. It holds no mutable state and may be
// shared between goroutines.
type Engine struct {
	assembler *Assembler
}

func NewEngine(p Predictor) *Engine {
	return &Engine{assembler: NewAssembler(p)}
}

// Evaluate validates the profile, runs the prediction and composes every
// section for the audience. A prediction failure returns
// ErrPredictionUnavailable and no report.
func (e *Engine) Evaluate(ctx context.Context, p ClinicalProfile, audience Audience) (*RiskReport, error) {
	if !audience.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAudience, audience)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	highRisk, err := e.assembler.Predict(ctx, p)
	if err != nil {
		return nil, err
	}

	return Compose(p, highRisk, audience), nil
}

// Compose builds the report from an already known prediction.
func Compose(p ClinicalProfile, highRisk bool, audience Audience) *RiskReport {
	bmi := BMI(p.WeightKg, p.HeightCm)
	return &RiskReport{
		Audience:           audience,
		HighRiskPrediction: highRisk,
		Headline:           Headline(highRisk, audience),
		BMI:                bmi,
		BMITier:            AssessBMI(bmi, audience),
		BloodPressure: BloodPressureTiers{
			Diastolic: AssessDiastolic(p.DiastolicBP, audience),
			Systolic:  AssessSystolic(p.SystolicBP, audience),
		},
		Cholesterol: AssessCholesterol(p.Cholesterol, audience),
		Glucose:     AssessGlucose(p.Glucose, audience),
		Lifestyle: []Finding{
			AssessSmoking(p.Smokes, audience),
			AssessAlcohol(p.DrinksAlcohol, audience),
			AssessExercise(p.ExercisesRegularly, audience),
		},
	}
}
