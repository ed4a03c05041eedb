package cvd

import (
	"context"
	"errors"
	"fmt"
)

// Predictor is the trained binary classifier. It must return 0 or 1 for a
// feature vector in FeatureVector order.
type Predictor interface {
	Predict(ctx context.Context, fv FeatureVector) (int, error)
}

// PredictorFunc adapts a plain function to Predictor.
type PredictorFunc func(ctx context.Context, fv FeatureVector) (int, error)

func (f PredictorFunc) Predict(ctx context.Context, fv FeatureVector) (int, error) {
	return f(ctx, fv)
}

// ErrPredictionUnavailable matches every PredictionUnavailableError.
var ErrPredictionUnavailable = errors.New("prediction unavailable")

// PredictionUnavailableError reports that the predictor could not produce a
// usable label. The engine never substitutes a default.
type PredictionUnavailableError struct {
	Err error
}

func (e *PredictionUnavailableError) Error() string {
	if e.Err == nil {
		return ErrPredictionUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrPredictionUnavailable, e.Err)
}

func (e *PredictionUnavailableError) Unwrap() error { return e.Err }

func (e *PredictionUnavailableError) Is(target error) bool {
	return target == ErrPredictionUnavailable
}

// Assembler turns a profile into the prediction headline.
type Assembler struct {
	predictor Predictor
}

func NewAssembler(p Predictor) *Assembler {
	return &Assembler{predictor: p}
}

// Predict encodes the profile, calls the predictor once and validates the
// label.
func (a *Assembler) Predict(ctx context.Context, p ClinicalProfile) (bool, error) {
	if a.predictor == nil {
		return false, &PredictionUnavailableError{Err: errors.New("no predictor configured")}
	}
	label, err := a.predictor.Predict(ctx, NewFeatureVector(p))
	if err != nil {
		return false, &PredictionUnavailableError{Err: err}
	}
	switch label {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &PredictionUnavailableError{Err: fmt.Errorf("predictor returned %d, want 0 or 1", label)}
	}
}

// Headline renders the prediction as the first finding of a report.
func Headline(highRisk bool, audience Audience) Finding {
	tier := TierNormal
	if highRisk {
		tier = TierHigh
	}
	return tiered(TopicPrediction, tier, audience)
}
