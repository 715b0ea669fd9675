package genre

import (
	"errors"
	"testing"

	"github.com/desertthunder/moodtunes/internal/models"
)

type stubClassifier struct {
	index int
	err   error
}

func (s stubClassifier) Predict([]float64) (int, error) {
	return s.index, s.err
}

func TestFavoriteGenre(t *testing.T) {
	t.Run("Always A Known Label", func(t *testing.T) {
		predictor := NewPredictor(ExampleModel(), nil)
		profile := models.Profile{
			models.KeyAge:          30,
			"Frequency_Metal":      "Very frequently",
			"Frequency_Classical":  "Never",
			models.KeyMusicEffects: "Improve",
		}

		got := predictor.FavoriteGenre(profile)

		found := false
		for _, label := range Labels {
			if got == label {
				found = true
			}
		}
		if !found {
			t.Errorf("predicted %q is not in the label table", got)
		}
	})

	t.Run("Falls Back On Classifier Error", func(t *testing.T) {
		predictor := NewPredictor(stubClassifier{err: errors.New("boom")}, nil)

		if got := predictor.FavoriteGenre(models.Profile{}); got != FallbackLabel {
			t.Errorf("expected %q, got %q", FallbackLabel, got)
		}
	})

	t.Run("Clamps Negative Index", func(t *testing.T) {
		predictor := NewPredictor(stubClassifier{index: -1}, nil)

		if got := predictor.FavoriteGenre(models.Profile{}); got != Labels[0] {
			t.Errorf("expected %q, got %q", Labels[0], got)
		}
	})

	t.Run("Clamps Oversized Index", func(t *testing.T) {
		predictor := NewPredictor(stubClassifier{index: 99}, nil)

		if got := predictor.FavoriteGenre(models.Profile{}); got != Labels[len(Labels)-1] {
			t.Errorf("expected %q, got %q", Labels[len(Labels)-1], got)
		}
	})

	t.Run("Nil Profile Uses Defaults", func(t *testing.T) {
		predictor := NewPredictor(ExampleModel(), nil)

		if got := predictor.FavoriteGenre(nil); got != FallbackLabel {
			t.Errorf("expected all-defaults prediction %q, got %q", FallbackLabel, got)
		}
	})
}

func TestPromptFor(t *testing.T) {
	for _, label := range Labels {
		if PromptFor(label) == "" {
			t.Errorf("no prompt for %q", label)
		}
	}

	if got := PromptFor("Polka"); got != FallbackPrompt {
		t.Errorf("expected fallback prompt for unknown label, got %q", got)
	}
}
