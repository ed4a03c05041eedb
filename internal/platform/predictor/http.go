package predictor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cvdss/cvdss/internal/domain/cvd"
)

// PredictPath is appended to the configured base URL.
const PredictPath = "/predict"

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Prediction *int `json:"prediction"`
}

// HTTPPredictor calls a model-serving endpoint over HTTP.
type HTTPPredictor struct {
	client *resty.Client
}

// NewHTTPPredictor creates a client for baseURL. retries is the number of
// additional attempts after a transport error or 5xx; zero disables retries.
func NewHTTPPredictor(baseURL string, timeout time.Duration, retries int) *HTTPPredictor {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPPredictor{client: client}
}

// Predict posts the feature vector and returns the label. Any transport
// failure, non-2xx status or body without a prediction is an error.
func (p *HTTPPredictor) Predict(ctx context.Context, fv cvd.FeatureVector) (int, error) {
	var out predictResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(predictRequest{Features: fv.Slice()}).
		SetResult(&out).
		Post(PredictPath)
	if err != nil {
		return 0, fmt.Errorf("call predictor: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("predictor returned status %d", resp.StatusCode())
	}
	if out.Prediction == nil {
		return 0, fmt.Errorf("predictor response has no prediction")
	}
	return *out.Prediction, nil
}
