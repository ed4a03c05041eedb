package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/cvdss/cvdss/internal/domain/cvd"
)

// ErrInvalidModel is returned when a model file cannot be used for scoring.
var ErrInvalidModel = errors.New("invalid model")

// Node is one split or leaf of a regression tree. A node with Leaf set is a
// leaf; otherwise rows with features[Feature] < Threshold go Left.
type Node struct {
	Feature   int      `json:"feature"`
	Threshold float64  `json:"threshold"`
	Left      int      `json:"left"`
	Right     int      `json:"right"`
	Leaf      *float64 `json:"leaf,omitempty"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Model is an exported gradient-boosted ensemble. Node 0 of every tree is
// the root.
type Model struct {
	BaseScore    float64 `json:"base_score"`
	LearningRate float64 `json:"learning_rate"`
	Threshold    float64 `json:"threshold"`
	Trees        []Tree  `json:"trees"`
}

// ForestPredictor scores a Model in process.
type ForestPredictor struct {
	model Model
}

// LoadForest reads and validates a model file.
func LoadForest(path string) (*ForestPredictor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidModel, path, err)
	}
	return NewForest(m)
}

// NewForest validates m and fills defaults: a zero learning rate means 1 and
// a zero threshold means 0.5.
func NewForest(m Model) (*ForestPredictor, error) {
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("%w: no trees", ErrInvalidModel)
	}
	if m.LearningRate == 0 {
		m.LearningRate = 1
	}
	if m.Threshold == 0 {
		m.Threshold = 0.5
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		return nil, fmt.Errorf("%w: threshold %v outside (0,1)", ErrInvalidModel, m.Threshold)
	}
	for i, t := range m.Trees {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidModel, i, err)
		}
	}
	return &ForestPredictor{model: m}, nil
}

func (t Tree) validate() error {
	if len(t.Nodes) == 0 {
		return errors.New("no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf != nil {
			continue
		}
		if n.Feature < 0 || n.Feature >= cvd.FeatureCount {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		// Children must come after their parent, which rules out cycles.
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: child index out of range", i)
		}
	}
	return nil
}

func (t Tree) score(fv cvd.FeatureVector) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf != nil {
			return *n.Leaf
		}
		if fv[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Probability returns the logistic probability of the positive class.
func (f *ForestPredictor) Probability(fv cvd.FeatureVector) float64 {
	margin := f.model.BaseScore
	for _, t := range f.model.Trees {
		margin += f.model.LearningRate * t.score(fv)
	}
	return 1 / (1 + math.Exp(-margin))
}

func (f *ForestPredictor) Predict(ctx context.Context, fv cvd.FeatureVector) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if f.Probability(fv) >= f.model.Threshold {
		return 1, nil
	}
	return 0, nil
}
