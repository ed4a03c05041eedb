package cvd

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is the severity bucket a measurement falls into.
type Tier string

const (
	TierNormal   Tier = "normal"
	TierElevated Tier = "elevated"
	TierHigh     Tier = "high"
)

// Severity drives how the presentation layer renders a message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Severity returns the default severity for the tier. BMI and lifestyle
// findings override it.
func (t Tier) Severity() Severity {
	switch t {
	case TierElevated:
		return SeverityWarning
	case TierHigh:
		return SeverityError
	default:
		return SeveritySuccess
	}
}

// Audience selects the wording of advisory text.
type Audience string

const (
	AudiencePatient   Audience = "patient"
	AudiencePhysician Audience = "physician"
)

var ErrUnknownAudience = errors.New("unknown audience")

func (a Audience) Valid() bool {
	return a == AudiencePatient || a == AudiencePhysician
}

// ParseAudience accepts "patient" or "physician" in any case.
func ParseAudience(s string) (Audience, error) {
	a := Audience(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAudience, s)
	}
	return a, nil
}

// AudienceForRole maps an account role to the report audience. Anything
// other than a physician reads the patient wording.
func AudienceForRole(role string) Audience {
	if strings.EqualFold(strings.TrimSpace(role), string(AudiencePhysician)) {
		return AudiencePhysician
	}
	return AudiencePatient
}

// Topic names the measurement or habit a finding is about.
type Topic string

const (
	TopicPrediction  Topic = "prediction"
	TopicBMI         Topic = "bmi"
	TopicDiastolic   Topic = "diastolic_bp"
	TopicSystolic    Topic = "systolic_bp"
	TopicCholesterol Topic = "cholesterol"
	TopicGlucose     Topic = "glucose"
	TopicSmoking     Topic = "smoking"
	TopicAlcohol     Topic = "alcohol"
	TopicExercise    Topic = "exercise"
)

// Finding is one classified message of a report.
type Finding struct {
	Topic    Topic    `json:"topic"`
	Tier     Tier     `json:"tier"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
