// Package predictor provides the cvd.Predictor implementations: a client for
// a remote model server and an in-process scorer for exported tree
// ensembles.
package predictor

import (
	"fmt"

	"github.com/cvdss/cvdss/internal/config"
	"github.com/cvdss/cvdss/internal/domain/cvd"
)

// New builds the predictor selected by cfg.PredictorMode.
func New(cfg *config.Config) (cvd.Predictor, error) {
	switch cfg.PredictorMode {
	case config.PredictorHTTP:
		return NewHTTPPredictor(cfg.PredictorURL, cfg.PredictorTimeout, cfg.PredictorRetries), nil
	case config.PredictorFile:
		f, err := LoadForest(cfg.PredictorModelPath)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown predictor mode %q", cfg.PredictorMode)
	}
}
