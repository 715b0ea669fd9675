package models

import (
	"time"
)

// Profile is the per-user listening habits and mood document.
//
// The document is loosely typed: values may be strings, ints, or floats
// depending on which app version wrote them, and the twelve frequency
// fields exist under two key spellings (current "Frequency_Pop" and
// legacy "Frequency [Pop]"). Missing fields are legal; every consumer
// falls back to documented defaults.
type Profile map[string]any

// Document keys for the current schema version.
const (
	KeyAge           = "Age"
	KeyHoursPerDay   = "Hours per day"
	KeyWhileWorking  = "While working"
	KeyInstrumental  = "Instrumentalist"
	KeyComposer      = "Composer"
	KeyExploratory   = "Exploratory"
	KeyForeignLangs  = "Foreign languages"
	KeyOpenness      = "Openness"
	KeyBPM           = "BPM"
	KeyAnxiety       = "Anxiety"
	KeyDepression    = "Depression"
	KeyInsomnia      = "Insomnia"
	KeyOCD           = "OCD"
	KeyMusicEffects  = "MusicEffects"
	KeyLastUpdated   = "LastUpdated"
	KeyMoodUpdatedAt = "MoodLastUpdated"
)

// FrequencyGenres lists the twelve frequency fields in feature order.
// The first element of each pair is the current key, the second the
// legacy bracketed key written by earlier app versions.
var FrequencyGenres = [12][2]string{
	{"Frequency_Classical", "Frequency [Classical]"},
	{"Frequency_EDM", "Frequency [EDM]"},
	{"Frequency_Folk", "Frequency [Folk]"},
	{"Frequency_Gospel", "Frequency [Gospel]"},
	{"Frequency_HipHop", "Frequency [Hip hop]"},
	{"Frequency_Jazz", "Frequency [Jazz]"},
	{"Frequency_KPop", "Frequency [K pop]"},
	{"Frequency_Metal", "Frequency [Metal]"},
	{"Frequency_Pop", "Frequency [Pop]"},
	{"Frequency_RnB", "Frequency [R&B]"},
	{"Frequency_Rock", "Frequency [Rock]"},
	{"Frequency_VGM", "Frequency [Video game music]"},
}

// FrequencyLabels are the four ordinal listening-frequency answers.
var FrequencyLabels = []string{"Never", "Rarely", "Sometimes", "Very frequently"}

// Clone returns a shallow copy of the profile document.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Get returns the value for key, or nil when absent.
func (p Profile) Get(key string) any {
	if p == nil {
		return nil
	}
	return p[key]
}

// Touch stamps the document's last-updated field.
func (p Profile) Touch(now time.Time) {
	p[KeyLastUpdated] = now.Format(time.RFC3339)
}

// MoodUpdate carries the mood fields merged into a profile document.
// Only these fields are written; the rest of the document is untouched.
type MoodUpdate struct {
	Exploratory int // 1 when open to new experiences
	Anxiety     int // 1-10
	Depression  int // 1-10
	Insomnia    int // 1-10
	Focus       int // 1-10, stored under the legacy OCD key
}

// Document converts the update into the partial document written to the store.
func (m MoodUpdate) Document(now time.Time) map[string]any {
	return map[string]any{
		KeyExploratory:   m.Exploratory,
		KeyAnxiety:       m.Anxiety,
		KeyDepression:    m.Depression,
		KeyInsomnia:      m.Insomnia,
		KeyOCD:           m.Focus,
		KeyLastUpdated:   now.Format(time.RFC3339),
		KeyMoodUpdatedAt: now.Format(time.RFC3339),
	}
}
