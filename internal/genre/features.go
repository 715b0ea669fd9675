package genre

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/moodtunes/internal/models"
)

// FeatureCount is the width of the classifier input vector.
const FeatureCount = 25

// Field defaults used when a profile value is missing or unparseable.
const (
	defaultAge       = 25.0
	defaultHours     = 2.0
	defaultFlag      = 0.0
	defaultBPM       = 120.0
	defaultFrequency = 2.0 // "Sometimes"
	defaultMood      = 5.0
)

// frequencyOrdinals maps the four listening-frequency answers to their
// ordinal encoding.
var frequencyOrdinals = map[string]float64{
	"never":           0.0,
	"rarely":          1.0,
	"sometimes":       2.0,
	"very frequently": 3.0,
}

// EncodeFeatures builds the classifier input vector from a profile document.
//
// The order is fixed by the training data: age, hours per day, while-working,
// instrumentalist, composer, exploratory, foreign languages, BPM, the twelve
// frequency ordinals in [models.FrequencyGenres] order, anxiety, depression,
// insomnia, focus (OCD key), music-improves-mood. Works for any document,
// including a nil or empty one, which yields the all-defaults vector.
func EncodeFeatures(profile models.Profile) [FeatureCount]float64 {
	var features [FeatureCount]float64

	features[0] = coerce(profile.Get(models.KeyAge), defaultAge)
	features[1] = coerce(profile.Get(models.KeyHoursPerDay), defaultHours)
	features[2] = coerce(profile.Get(models.KeyWhileWorking), defaultFlag)
	features[3] = coerce(profile.Get(models.KeyInstrumental), defaultFlag)
	features[4] = coerce(profile.Get(models.KeyComposer), defaultFlag)
	features[5] = coerce(profile.Get(models.KeyExploratory), defaultFlag)
	features[6] = coerce(profile.Get(models.KeyForeignLangs), defaultFlag)
	features[7] = coerce(profile.Get(models.KeyBPM), defaultBPM)

	for i, keys := range models.FrequencyGenres {
		features[8+i] = frequency(profile, keys[0], keys[1])
	}

	features[20] = coerce(profile.Get(models.KeyAnxiety), defaultMood)
	features[21] = coerce(profile.Get(models.KeyDepression), defaultMood)
	features[22] = coerce(profile.Get(models.KeyInsomnia), defaultMood)
	features[23] = coerce(profile.Get(models.KeyOCD), defaultMood)
	features[24] = improveFlag(profile.Get(models.KeyMusicEffects))

	return features
}

// frequency reads one frequency field, checking the current key first and
// falling back to the legacy bracketed key, then to the documented default.
func frequency(profile models.Profile, key, legacyKey string) float64 {
	return coerce(profile.Get(key), coerce(profile.Get(legacyKey), defaultFrequency))
}

// coerce converts a loosely-typed document value to a float feature.
//
// Rules, in order: nil -> default; numeric-looking string -> parsed value;
// yes/no -> 1/0; frequency label -> ordinal; anything else gets a generic
// numeric parse and falls back to the default. Coercion never fails.
func coerce(value any, def float64) float64 {
	if value == nil {
		return def
	}

	str, ok := value.(string)
	if !ok {
		str = fmt.Sprintf("%v", value)
	}

	if isNumericString(str) {
		if parsed, err := strconv.ParseFloat(str, 64); err == nil {
			return parsed
		}
	}

	switch strings.ToLower(str) {
	case "yes":
		return 1.0
	case "no":
		return 0.0
	}

	if ordinal, ok := frequencyOrdinals[strings.ToLower(str)]; ok {
		return ordinal
	}

	if parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
		return parsed
	}

	return def
}

// isNumericString reports whether s consists of digits with at most one
// decimal point.
func isNumericString(s string) bool {
	if s == "" {
		return false
	}
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return s != "."
}

// improveFlag encodes the music-affects-mood label: "Improve" -> 1, else 0.
func improveFlag(value any) float64 {
	str, ok := value.(string)
	if !ok {
		str = fmt.Sprintf("%v", value)
	}
	if strings.EqualFold(str, "improve") {
		return 1.0
	}
	return 0.0
}
