package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/bibbank/fraudshield/internal/domain/port"
	"github.com/bibbank/fraudshield/internal/domain/valueobject"
)

// ModelTypeRandomForest is the only artifact type Forest understands.
const ModelTypeRandomForest = "random_forest"

// Node is one node of a decision tree. Internal nodes send a feature value
// <= Threshold to Left and everything else to Right. Leaves carry the
// probability of fraud observed at that leaf.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
	Leaf      bool    `json:"leaf"`
}

// Tree is a flattened decision tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

type artifact struct {
	ModelType    string   `json:"model_type"`
	Version      string   `json:"version"`
	FeatureNames []string `json:"feature_names"`
	Trees        []Tree   `json:"trees"`
}

// Forest is a random-forest classifier loaded from a JSON artifact. It is
// immutable after loading and safe for concurrent use.
type Forest struct {
	version string
	trees   []Tree
}

var (
	_ port.Classifier            = (*Forest)(nil)
	_ port.ProbabilityClassifier = (*Forest)(nil)
)

// LoadForest reads and validates a forest artifact. Any failure wraps
// port.ErrClassifierUnavailable.
func LoadForest(path string) (*Forest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read model %s: %w", port.ErrClassifierUnavailable, path, err)
	}
	f, err := ParseForest(raw)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return f, nil
}

// ParseForest decodes and validates a forest artifact. The declared feature
// names must match valueobject.FeatureNames exactly, in order.
func ParseForest(raw []byte) (*Forest, error) {
	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: decode model: %w", port.ErrClassifierUnavailable, err)
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", port.ErrClassifierUnavailable, err)
	}
	return &Forest{version: a.Version, trees: a.Trees}, nil
}

func (a artifact) validate() error {
	if a.ModelType != ModelTypeRandomForest {
		return fmt.Errorf("unsupported model type %q", a.ModelType)
	}
	if len(a.FeatureNames) != valueobject.FeatureCount {
		return fmt.Errorf("model expects %d features, extractor produces %d", len(a.FeatureNames), valueobject.FeatureCount)
	}
	for i, name := range a.FeatureNames {
		if name != valueobject.FeatureNames[i] {
			return fmt.Errorf("feature %d is %q, extractor produces %q", i, name, valueobject.FeatureNames[i])
		}
	}
	if len(a.Trees) == 0 {
		return fmt.Errorf("model has no trees")
	}
	for t, tree := range a.Trees {
		if err := tree.validate(); err != nil {
			return fmt.Errorf("tree %d: %w", t, err)
		}
	}
	return nil
}

// validate requires children to follow their parent, which rules out cycles.
func (t Tree) validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			if n.Value < 0 || n.Value > 1 {
				return fmt.Errorf("node %d: leaf value %v outside [0, 1]", i, n.Value)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= valueobject.FeatureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		for _, child := range [2]int{n.Left, n.Right} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("node %d: child index %d out of range", i, child)
			}
		}
	}
	return nil
}

func (t Tree) predict(v valueobject.FeatureVector) float64 {
	i := 0
	for !t.Nodes[i].Leaf {
		n := t.Nodes[i]
		if v[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// PredictProba returns the mean fraud probability across trees.
func (f *Forest) PredictProba(_ context.Context, v valueobject.FeatureVector) (float64, error) {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(v)
	}
	return sum / float64(len(f.trees)), nil
}

// Predict returns LabelFraud when the mean probability exceeds one half.
func (f *Forest) Predict(ctx context.Context, v valueobject.FeatureVector) (valueobject.Label, error) {
	p, err := f.PredictProba(ctx, v)
	if err != nil {
		return valueobject.LabelNormal, err
	}
	if p > 0.5 {
		return valueobject.LabelFraud, nil
	}
	return valueobject.LabelNormal, nil
}

// Version returns the artifact version string.
func (f *Forest) Version() string { return f.version }

// TreeCount returns the number of trees in the forest.
func (f *Forest) TreeCount() int { return len(f.trees) }

// Check runs one inference on the zero feature vector and reports whether the
// forest still yields a probability in [0, 1]. Failures wrap
// port.ErrClassifierUnavailable.
func (f *Forest) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", port.ErrClassifierUnavailable, err)
	}
	if f == nil || len(f.trees) == 0 {
		return fmt.Errorf("%w: forest has no trees", port.ErrClassifierUnavailable)
	}
	p, err := f.PredictProba(ctx, valueobject.FeatureVector{})
	if err != nil {
		return fmt.Errorf("%w: %w", port.ErrClassifierUnavailable, err)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: probability %v out of range", port.ErrClassifierUnavailable, p)
	}
	return nil
}
