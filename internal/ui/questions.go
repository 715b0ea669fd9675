package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/moodtunes/internal/models"
)

var yesNo = []string{"No", "Yes"}

var musicEffects = []string{"Improve", "No effect", "Worsen"}

// NewProfileForm builds the full listening-habits questionnaire.
func NewProfileForm() *FormModel {
	fields := []field{
		numberQuestion(models.KeyAge, "How old are you?", "25", 1, 120),
		numberQuestion(models.KeyHoursPerDay, "How many hours per day do you listen to music?", "2", 0, 24),
		selectQuestion(models.KeyWhileWorking, "Do you listen to music while working?", yesNo, 0),
		selectQuestion(models.KeyInstrumental, "Do you play an instrument?", yesNo, 0),
		selectQuestion(models.KeyComposer, "Do you compose music?", yesNo, 0),
		selectQuestion(models.KeyExploratory, "Do you actively explore new music?", yesNo, 0),
		selectQuestion(models.KeyOpenness, "Are you open to new experiences?", yesNo, 0),
		selectQuestion(models.KeyForeignLangs, "Do you listen to music in foreign languages?", yesNo, 0),
		numberQuestion(models.KeyBPM, "Preferred tempo (BPM)?", "120", 60, 200),
	}

	for _, pair := range models.FrequencyGenres {
		// The legacy bracketed key carries the human-readable genre name.
		genre := strings.TrimSuffix(strings.TrimPrefix(pair[1], "Frequency ["), "]")
		prompt := fmt.Sprintf("How often do you listen to %s?", genre)
		fields = append(fields, selectQuestion(pair[0], prompt, models.FrequencyLabels, 2))
	}

	fields = append(fields,
		numberQuestion(models.KeyAnxiety, "Anxiety level (1-10)?", "5", 1, 10),
		numberQuestion(models.KeyDepression, "Depression level (1-10)?", "5", 1, 10),
		numberQuestion(models.KeyInsomnia, "Insomnia level (1-10)?", "5", 1, 10),
		numberQuestion(models.KeyOCD, "Difficulty focusing (1-10)?", "5", 1, 10),
		selectQuestion(models.KeyMusicEffects, "Does music improve your mood?", musicEffects, 0),
	)

	return NewForm("Tell us about your listening habits", fields)
}

// Profile converts a completed profile form into a document.
func (m *FormModel) Profile() models.Profile {
	profile := models.Profile{}
	for key, value := range m.answers() {
		profile[key] = value
	}
	return profile
}

// NewMoodForm builds the short mood check-in questionnaire.
func NewMoodForm() *FormModel {
	fields := []field{
		selectQuestion(models.KeyExploratory, "Feeling open to new music today?", yesNo, 0),
		numberQuestion(models.KeyAnxiety, "Anxiety level (1-10)?", "5", 1, 10),
		numberQuestion(models.KeyDepression, "Depression level (1-10)?", "5", 1, 10),
		numberQuestion(models.KeyInsomnia, "Insomnia level (1-10)?", "5", 1, 10),
		numberQuestion(models.KeyOCD, "Difficulty focusing (1-10)?", "5", 1, 10),
	}
	return NewForm("Mood check-in", fields)
}

// Mood converts a completed mood form into a partial update.
func (m *FormModel) Mood() models.MoodUpdate {
	answers := m.answers()

	mood := models.MoodUpdate{
		Anxiety:    answerInt(answers, models.KeyAnxiety, 5),
		Depression: answerInt(answers, models.KeyDepression, 5),
		Insomnia:   answerInt(answers, models.KeyInsomnia, 5),
		Focus:      answerInt(answers, models.KeyOCD, 5),
	}
	if answers[models.KeyExploratory] == "Yes" {
		mood.Exploratory = 1
	}
	return mood
}

func answerInt(answers map[string]any, key string, def int) int {
	if n, ok := answers[key].(float64); ok {
		return int(n)
	}
	return def
}
