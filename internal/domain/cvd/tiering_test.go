package cvd

import (
	"math"
	"strings"
	"testing"
)

func TestClassifyDiastolic(t *testing.T) {
	tests := []struct {
		d    int
		want Tier
	}{
		{40, TierNormal},
		{79, TierNormal},
		{80, TierElevated},
		{89, TierElevated},
		{90, TierHigh},
		{200, TierHigh},
		{-5, TierNormal},
	}
	for _, tt := range tests {
		if got := ClassifyDiastolic(tt.d); got != tt.want {
			t.Errorf("ClassifyDiastolic(%d) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestClassifySystolic(t *testing.T) {
	tests := []struct {
		s    int
		want Tier
	}{
		{70, TierNormal},
		{119, TierNormal},
		{120, TierElevated},
		{139, TierElevated},
		{140, TierHigh},
		{300, TierHigh},
	}
	for _, tt := range tests {
		if got := ClassifySystolic(tt.s); got != tt.want {
			t.Errorf("ClassifySystolic(%d) = %s, want %s", tt.s, got, tt.want)
		}
	}
}

func TestClassifyLevel(t *testing.T) {
	if ClassifyLevel(LevelNormal) != TierNormal ||
		ClassifyLevel(LevelAboveNormal) != TierElevated ||
		ClassifyLevel(LevelWellAboveNormal) != TierHigh {
		t.Error("levels must map one to one onto tiers")
	}
	if ClassifyLevel(Level(0)) != TierNormal {
		t.Error("out of range level should be Normal")
	}
}

func TestBMI(t *testing.T) {
	got := BMI(70, 170)
	if math.Abs(got-24.22) > 0.01 {
		t.Errorf("BMI(70,170) = %.3f, want ~24.22", got)
	}
	if ClassifyBMI(24.99) != TierNormal {
		t.Error("24.99 should be Normal")
	}
	if ClassifyBMI(25) != TierHigh {
		t.Error("25 should be High")
	}
}

func TestAssessBMI_HighIsWarning(t *testing.T) {
	bmi := BMI(100, 170)
	f := AssessBMI(bmi, AudiencePatient)
	if f.Tier != TierHigh || f.Severity != SeverityWarning {
		t.Fatalf("expected high/warning, got %s/%s", f.Tier, f.Severity)
	}
	if !strings.Contains(f.Message, "34.6") {
		t.Errorf("expected BMI in message, got %q", f.Message)
	}

	f = AssessBMI(22, AudiencePhysician)
	if f.Tier != TierNormal || f.Severity != SeveritySuccess {
		t.Errorf("expected normal/success, got %s/%s", f.Tier, f.Severity)
	}
}

func TestAssessBloodPressure_AudienceWording(t *testing.T) {
	p := AssessDiastolic(95, AudiencePatient)
	if p.Severity != SeverityError || !strings.Contains(p.Message, "Seek medical attention immediately") {
		t.Errorf("unexpected patient diastolic finding: %+v", p)
	}
	if !strings.Contains(p.Message, "low-sodium") {
		t.Errorf("high tier should keep the diet advice: %q", p.Message)
	}

	d := AssessDiastolic(95, AudiencePhysician)
	if !strings.Contains(d.Message, "Provide medical intervention") {
		t.Errorf("unexpected physician diastolic finding: %+v", d)
	}

	e := AssessSystolic(130, AudiencePatient)
	if e.Tier != TierElevated || e.Severity != SeverityWarning || !strings.Contains(e.Message, "low-sodium") {
		t.Errorf("unexpected elevated systolic finding: %+v", e)
	}
}

func TestAssessSystolic_PhysicianHasAllTiers(t *testing.T) {
	for _, s := range []int{110, 130, 150} {
		f := AssessSystolic(s, AudiencePhysician)
		if f.Message == "" {
			t.Errorf("missing physician systolic message for %d", s)
		}
		if !strings.HasPrefix(f.Message, "Patient's systolic") {
			t.Errorf("unexpected physician wording: %q", f.Message)
		}
	}
}

func TestAssessCholesterol_HighMentionsMedication(t *testing.T) {
	for _, a := range []Audience{AudiencePatient, AudiencePhysician} {
		f := AssessCholesterol(LevelWellAboveNormal, a)
		if f.Tier != TierHigh || !strings.Contains(strings.ToLower(f.Message), "medication") {
			t.Errorf("%s: unexpected cholesterol finding %+v", a, f)
		}
	}
	if !strings.Contains(AssessCholesterol(LevelWellAboveNormal, AudiencePhysician).Message, "Prescribe medication") {
		t.Error("physician wording should prescribe medication")
	}
	if !strings.Contains(AssessGlucose(LevelWellAboveNormal, AudiencePhysician).Message, "Provide medical intervention") {
		t.Error("physician glucose wording should request intervention")
	}
	if !strings.Contains(AssessGlucose(LevelAboveNormal, AudiencePatient).Message, "3 times a week") {
		t.Error("elevated glucose should recommend exercise")
	}
}

func TestLifestyleFindings(t *testing.T) {
	tests := []struct {
		name     string
		finding  Finding
		tier     Tier
		severity Severity
	}{
		{"smoker", AssessSmoking(true, AudiencePatient), TierHigh, SeverityWarning},
		{"non-smoker", AssessSmoking(false, AudiencePatient), TierNormal, SeveritySuccess},
		{"drinker", AssessAlcohol(true, AudiencePhysician), TierHigh, SeverityWarning},
		{"no exercise", AssessExercise(false, AudiencePatient), TierHigh, SeverityInfo},
		{"exercises", AssessExercise(true, AudiencePhysician), TierNormal, SeveritySuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.finding.Tier != tt.tier || tt.finding.Severity != tt.severity {
				t.Errorf("got %s/%s, want %s/%s", tt.finding.Tier, tt.finding.Severity, tt.tier, tt.severity)
			}
			if tt.finding.Message == "" {
				t.Error("expected a message")
			}
		})
	}

	if !strings.HasPrefix(AssessSmoking(true, AudiencePhysician).Message, "Recommend the patient discontinue") {
		t.Error("physician smoking advice should be directive")
	}
	if !strings.HasPrefix(AssessSmoking(true, AudiencePatient).Message, "It is strongly advised you stop") {
		t.Error("patient smoking advice should address the patient")
	}
}

func TestEveryMessageDefined(t *testing.T) {
	topics := []Topic{TopicPrediction, TopicBMI, TopicDiastolic, TopicSystolic, TopicCholesterol, TopicGlucose, TopicSmoking, TopicAlcohol, TopicExercise}
	twoState := map[Topic]bool{TopicPrediction: true, TopicBMI: true, TopicSmoking: true, TopicAlcohol: true, TopicExercise: true}
	for _, a := range []Audience{AudiencePatient, AudiencePhysician} {
		for _, topic := range topics {
			tiers := []Tier{TierNormal, TierElevated, TierHigh}
			if twoState[topic] {
				tiers = []Tier{TierNormal, TierHigh}
			}
			for _, tier := range tiers {
				if message(topic, tier, a) == "" {
					t.Errorf("missing message for %s/%s/%s", topic, tier, a)
				}
			}
		}
	}
}

func TestParseAudience(t *testing.T) {
	if a, err := ParseAudience(" Physician "); err != nil || a != AudiencePhysician {
		t.Errorf("ParseAudience(Physician) = %q, %v", a, err)
	}
	if _, err := ParseAudience("nurse"); err == nil {
		t.Error("expected error for unknown audience")
	}
	if AudienceForRole("physician") != AudiencePhysician || AudienceForRole("admin") != AudiencePatient {
		t.Error("unexpected role mapping")
	}
}
