package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	ModelTypeForest = "forest"
	ModelTypeLinear = "linear"
)

// TreeNode is one node of a regression tree. A node whose Left and Right are
// equal is a leaf; otherwise rows with x[Feature] <= Threshold go left.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

func (n TreeNode) leaf() bool {
	return n.Left == n.Right
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t Tree) eval(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.leaf() {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// validate checks that children point forward, so evaluation always ends.
func (t Tree) validate() error {
	if len(t.Nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.leaf() {
			continue
		}
		if n.Feature < 0 || n.Feature >= FeatureCount {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("node %d: child %d out of range", i, child)
			}
		}
	}
	return nil
}

// ForestModel averages the outputs of its trees.
type ForestModel struct {
	Trees []Tree
}

func (m *ForestModel) Predict(ctx context.Context, f Features) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(m.Trees) == 0 {
		return 0, errors.New("forest has no trees")
	}
	x := f.Vector()
	var sum float64
	for _, t := range m.Trees {
		sum += t.eval(x)
	}
	return sum / float64(len(m.Trees)), nil
}

type LinearModel struct {
	Intercept    float64
	Coefficients []float64
}

func (m *LinearModel) Predict(ctx context.Context, f Features) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(m.Coefficients) != FeatureCount {
		return 0, fmt.Errorf("linear model expects %d coefficients, has %d", FeatureCount, len(m.Coefficients))
	}
	y := m.Intercept
	for i, v := range f.Vector() {
		y += m.Coefficients[i] * v
	}
	return y, nil
}

type modelArtifact struct {
	Type         string    `json:"type"`
	Trees        []Tree    `json:"trees"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// LoadModel reads a serialized regression model from path.
func LoadModel(path string) (Predictor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return ParseModel(b)
}

func ParseModel(b []byte) (Predictor, error) {
	var a modelArtifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	switch a.Type {
	case ModelTypeForest:
		if len(a.Trees) == 0 {
			return nil, errors.New("forest model has no trees")
		}
		for i, t := range a.Trees {
			if err := t.validate(); err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
		}
		return &ForestModel{Trees: a.Trees}, nil
	case ModelTypeLinear:
		if len(a.Coefficients) != FeatureCount {
			return nil, fmt.Errorf("linear model expects %d coefficients, has %d", FeatureCount, len(a.Coefficients))
		}
		return &LinearModel{Intercept: a.Intercept, Coefficients: a.Coefficients}, nil
	default:
		return nil, fmt.Errorf("unknown model type %q", a.Type)
	}
}
