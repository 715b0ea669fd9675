// Package genre turns a loosely-typed profile document into a genre prediction.
//
// # Feature Encoding
//
// [EncodeFeatures] maps a profile document to the fixed 25-wide feature
// vector the classifier artifact was trained on. The order and width are
// load-bearing: age, hours per day, five yes/no flags, BPM, the twelve
// frequency ordinals, four mood ratings, and the music-improves-mood flag.
// Profile documents are loosely typed and carry legacy key spellings, so
// every scalar goes through one coercion routine (nil -> default, numeric
// strings, yes/no, frequency ordinals, generic parse, default) and frequency
// fields fall back from the current key to the bracketed legacy key.
//
// # Classifier
//
// [Model] is a linear scorer loaded from a JSON artifact: one weight row and
// bias per genre, argmax over scores. The artifact's row order matches
// [Labels]; a missing or corrupt artifact is startup-fatal. The predicted
// index is clamped into range before the label lookup.
//
// # Fallback Policy
//
// [Predictor.FavoriteGenre] never fails. Any classifier error is logged at
// WARN and the prediction falls back to "Pop", so a recommendation is
// always produced.
package genre
