package genre

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/models"
)

// Predictor produces a genre label for a profile document.
type Predictor struct {
	classifier Classifier
	logger     *log.Logger
}

// NewPredictor creates a Predictor around a classifier.
func NewPredictor(classifier Classifier, logger *log.Logger) *Predictor {
	if logger == nil {
		logger = log.Default()
	}
	return &Predictor{classifier: classifier, logger: logger}
}

// FavoriteGenre predicts the user's favorite genre.
//
// Never fails: on any classifier error the prediction falls back to
// [FallbackLabel], logged at WARN so the degradation is visible rather
// than silently swallowed. Out-of-range class indices are clamped into
// the label table.
func (p *Predictor) FavoriteGenre(profile models.Profile) Label {
	features := EncodeFeatures(profile)

	index, err := p.classifier.Predict(features[:])
	if err != nil {
		p.logger.Warn("genre prediction failed, falling back", "fallback", FallbackLabel, "error", err)
		return FallbackLabel
	}

	if index < 0 {
		index = 0
	}
	if index >= len(Labels) {
		index = len(Labels) - 1
	}

	return Labels[index]
}
