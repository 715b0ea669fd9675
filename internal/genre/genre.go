package genre

// Label is one of the eight fixed genre strings the classifier outputs.
type Label string

// FallbackLabel is returned whenever prediction fails.
const FallbackLabel Label = "Pop"

// Labels maps classifier class indices to genre labels.
//
// The order matches the training label encoding of the model artifact;
// reordering it silently breaks every prediction.
var Labels = [8]Label{
	"Rock",
	"Pop",
	"Metal",
	"EDM",
	"Hip hop",
	"Classical",
	"Video game music",
	"R&B",
}

// FallbackPrompt is used for genres without a composition prompt.
const FallbackPrompt = "Compose a melody"

// Prompts holds the natural-language composition instruction per genre.
var Prompts = map[Label]string{
	"Classical":        "Compose a serene classical piano piece reminiscent of a peaceful afternoon in a garden.",
	"EDM":              "Create an upbeat and energetic electronic dance track suitable for a vibrant festival atmosphere.",
	"Hip hop":          "Generate a laid-back hip hop beat with a smooth rhythm and catchy bassline, perfect for a chill evening.",
	"Metal":            "Produce a high-intensity metal track with fast guitar riffs and powerful drum beats.",
	"Pop":              "Compose a catchy pop melody with an uplifting vibe and a memorable chorus.",
	"R&B":              "Create a soulful R&B track with a slow groove and emotional vocal harmonies.",
	"Rock":             "Generate a classic rock anthem with strong guitar chords and a steady, driving beat.",
	"Video game music": "Compose an adventurous and dynamic theme suitable for an action-packed video game level.",
}

// PromptFor returns the composition prompt for a genre, or the generic
// fallback for unknown genres.
func PromptFor(label Label) string {
	if prompt, ok := Prompts[label]; ok {
		return prompt
	}
	return FallbackPrompt
}
