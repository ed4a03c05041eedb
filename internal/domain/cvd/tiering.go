package cvd

import "fmt"

// Tier boundaries. Lower bounds are inclusive.
const (
	DiastolicElevated = 80
	DiastolicHigh     = 90
	SystolicElevated  = 120
	SystolicHigh      = 140
	BMIOverweight     = 25.0
)

// ClassifyDiastolic buckets a diastolic reading in mmHg.
func ClassifyDiastolic(d int) Tier {
	switch {
	case d < DiastolicElevated:
		return TierNormal
	case d < DiastolicHigh:
		return TierElevated
	default:
		return TierHigh
	}
}

// ClassifySystolic buckets a systolic reading in mmHg.
func ClassifySystolic(s int) Tier {
	switch {
	case s < SystolicElevated:
		return TierNormal
	case s < SystolicHigh:
		return TierElevated
	default:
		return TierHigh
	}
}

// ClassifyLevel maps the categorical lab scale one to one onto tiers.
func ClassifyLevel(l Level) Tier {
	switch l.Normalize() {
	case LevelAboveNormal:
		return TierElevated
	case LevelWellAboveNormal:
		return TierHigh
	default:
		return TierNormal
	}
}

// BMI computes body mass index from kilograms and centimetres.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// ClassifyBMI has no elevated step: anything from 25 up is High.
func ClassifyBMI(bmi float64) Tier {
	if bmi >= BMIOverweight {
		return TierHigh
	}
	return TierNormal
}

func tiered(topic Topic, tier Tier, audience Audience) Finding {
	return Finding{
		Topic:    topic,
		Tier:     tier,
		Severity: tier.Severity(),
		Message:  message(topic, tier, audience),
	}
}

func AssessDiastolic(d int, audience Audience) Finding {
	return tiered(TopicDiastolic, ClassifyDiastolic(d), audience)
}

func AssessSystolic(s int, audience Audience) Finding {
	return tiered(TopicSystolic, ClassifySystolic(s), audience)
}

func AssessCholesterol(l Level, audience Audience) Finding {
	return tiered(TopicCholesterol, ClassifyLevel(l), audience)
}

func AssessGlucose(l Level, audience Audience) Finding {
	return tiered(TopicGlucose, ClassifyLevel(l), audience)
}

// AssessBMI reports a high BMI as a warning rather than an error.
func AssessBMI(bmi float64, audience Audience) Finding {
	tier := ClassifyBMI(bmi)
	f := Finding{Topic: TopicBMI, Tier: tier, Severity: SeveritySuccess, Message: message(TopicBMI, tier, audience)}
	if tier == TierHigh {
		f.Severity = SeverityWarning
		f.Message = fmt.Sprintf(f.Message, bmi)
	}
	return f
}

func habit(topic Topic, needsAttention bool, attention Severity, audience Audience) Finding {
	if !needsAttention {
		return Finding{Topic: topic, Tier: TierNormal, Severity: SeveritySuccess, Message: message(topic, TierNormal, audience)}
	}
	return Finding{Topic: topic, Tier: TierHigh, Severity: attention, Message: message(topic, TierHigh, audience)}
}

func AssessSmoking(smokes bool, audience Audience) Finding {
	return habit(TopicSmoking, smokes, SeverityWarning, audience)
}

func AssessAlcohol(drinks bool, audience Audience) Finding {
	return habit(TopicAlcohol, drinks, SeverityWarning, audience)
}

// AssessExercise flags a missing exercise habit at info level only.
func AssessExercise(exercises bool, audience Audience) Finding {
	return habit(TopicExercise, !exercises, SeverityInfo, audience)
}
