package genre

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/moodtunes/internal/shared"
)

// Classifier predicts a genre class index from a feature vector.
//
// Implementations take one row of [FeatureCount] floats and return the
// predicted class index into [Labels].
type Classifier interface {
	Predict(features []float64) (int, error)
}

// Model is a linear genre scorer loaded from a JSON artifact.
//
// Each genre has one weight row and a bias; prediction is the argmax of
// the per-genre scores. The artifact replaces the original gradient-boosted
// model, keeping the same input order and index -> label encoding.
type Model struct {
	GenreLabels []string    `json:"labels"`
	Weights     [][]float64 `json:"weights"`
	Bias        []float64   `json:"bias"`
}

// LoadModel reads and validates the classifier artifact at path.
//
// A missing or malformed artifact is an error the caller should treat as
// startup-fatal; prediction cannot run without it.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrModelNotFound, err)
	}

	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	if err := model.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	return &model, nil
}

func (m *Model) validate() error {
	if len(m.Weights) != len(Labels) {
		return fmt.Errorf("expected %d weight rows, got %d", len(Labels), len(m.Weights))
	}
	for i, row := range m.Weights {
		if len(row) != FeatureCount {
			return fmt.Errorf("weight row %d has width %d, want %d", i, len(row), FeatureCount)
		}
	}
	if len(m.Bias) != 0 && len(m.Bias) != len(Labels) {
		return fmt.Errorf("expected %d bias terms, got %d", len(Labels), len(m.Bias))
	}
	if len(m.GenreLabels) != 0 && len(m.GenreLabels) != len(Labels) {
		return fmt.Errorf("expected %d labels, got %d", len(Labels), len(m.GenreLabels))
	}
	return nil
}

// ExampleModel returns a usable starter artifact.
//
// Each genre scores its own listening-frequency feature, so the starter
// model recommends whatever the user already listens to most. Written by
// `moodtunes setup model` so the app runs before a trained artifact exists.
func ExampleModel() *Model {
	// Feature indices of the frequency ordinals for the eight output genres.
	frequencyIndex := map[Label]int{
		"Classical":        8,
		"EDM":              9,
		"Hip hop":          12,
		"Metal":            15,
		"Pop":              16,
		"R&B":              17,
		"Rock":             18,
		"Video game music": 19,
	}

	model := &Model{
		GenreLabels: make([]string, len(Labels)),
		Weights:     make([][]float64, len(Labels)),
		Bias:        make([]float64, len(Labels)),
	}

	for i, label := range Labels {
		model.GenreLabels[i] = string(label)
		row := make([]float64, FeatureCount)
		row[frequencyIndex[label]] = 1.0
		model.Weights[i] = row
	}

	// Nudge toward Pop on an all-defaults profile.
	model.Bias[1] = 0.5

	return model
}

// Predict returns the class index with the highest score for the feature row.
func (m *Model) Predict(features []float64) (int, error) {
	if len(features) != FeatureCount {
		return 0, fmt.Errorf("%w: expected %d features, got %d", shared.ErrInvalidInput, FeatureCount, len(features))
	}

	best := 0
	bestScore := m.score(0, features)
	for i := 1; i < len(m.Weights); i++ {
		if score := m.score(i, features); score > bestScore {
			best, bestScore = i, score
		}
	}

	return best, nil
}

func (m *Model) score(class int, features []float64) float64 {
	score := 0.0
	if class < len(m.Bias) {
		score = m.Bias[class]
	}
	for j, w := range m.Weights[class] {
		score += w * features[j]
	}
	return score
}
