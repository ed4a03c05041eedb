package patient

import (
	"time"

	"github.com/cvdss/cvdss/internal/domain/cvd"
)

// Record joins a patient's demographics with their latest medical test.
type Record struct {
	PatientID          int64      `json:"patient_id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Age                int        `json:"age"`
	Gender             cvd.Gender `json:"gender"`
	HeightCm           float64    `json:"height_cm"`
	WeightKg           float64    `json:"weight_kg"`
	Smokes             bool       `json:"smokes"`
	DrinksAlcohol      bool       `json:"drinks_alcohol"`
	ExercisesRegularly bool       `json:"exercises_regularly"`
	ContactInformation string     `json:"contact_information"`
	SystolicBP         int        `json:"systolic_bp"`
	DiastolicBP        int        `json:"diastolic_bp"`
	Cholesterol        cvd.Level  `json:"cholesterol"`
	Glucose            cvd.Level  `json:"glucose"`
	// HighRisk is the last stored prediction; nil until a physician has
	// assessed the record.
	HighRisk  *bool     `json:"high_risk,omitempty"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile returns the measurements in the form the engine evaluates.
func (r *Record) Profile() cvd.ClinicalProfile {
	return cvd.ClinicalProfile{
		Age:                r.Age,
		Gender:             r.Gender,
		HeightCm:           r.HeightCm,
		WeightKg:           r.WeightKg,
		SystolicBP:         r.SystolicBP,
		DiastolicBP:        r.DiastolicBP,
		Cholesterol:        r.Cholesterol,
		Glucose:            r.Glucose,
		Smokes:             r.Smokes,
		DrinksAlcohol:      r.DrinksAlcohol,
		ExercisesRegularly: r.ExercisesRegularly,
	}
}

// ApplyProfile overwrites the measured fields. Names and contact details are
// left alone.
func (r *Record) ApplyProfile(p cvd.ClinicalProfile) {
	r.Age = p.Age
	r.Gender = cvd.Gender(cvd.CodeToGender(cvd.GenderToCode(string(p.Gender))))
	r.HeightCm = p.HeightCm
	r.WeightKg = p.WeightKg
	r.SystolicBP = p.SystolicBP
	r.DiastolicBP = p.DiastolicBP
	r.Cholesterol = p.Cholesterol.Normalize()
	r.Glucose = p.Glucose.Normalize()
	r.Smokes = p.Smokes
	r.DrinksAlcohol = p.DrinksAlcohol
	r.ExercisesRegularly = p.ExercisesRegularly
}

// Summary is one row of a physician's patient list.
type Summary struct {
	PatientID int64  `json:"patient_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AssessmentRequest is the physician's edited profile. Version is the record
// version the edit was based on and must be set.
type AssessmentRequest struct {
	Profile cvd.ClinicalProfile `json:"profile"`
	Version int                 `json:"version"`
}

// Assessment is the outcome of evaluating a profile.
type Assessment struct {
	Report   *cvd.RiskReport `json:"report"`
	Sections []cvd.Section   `json:"sections"`
	// Updated is true when the record was written back.
	Updated bool    `json:"updated"`
	Record  *Record `json:"record,omitempty"`
}

func newAssessment(report *cvd.RiskReport) *Assessment {
	return &Assessment{Report: report, Sections: report.Sections()}
}
