// Package models defines the data model for the moodtunes service.
//
// The package contains three categories of types:
//
// 1. The profile document: [Profile] is a loosely-typed per-user document
// persisted in the cloud document store, keyed by email. Field names carry
// legacy spellings from earlier app versions (bracketed frequency keys),
// so consumers go through the genre package's normalization rather than
// reading raw keys.
//
// 2. Transient operation types: [CompositionTask] tracks one remote music
// generation job for the duration of a single poll loop; [MoodUpdate]
// carries the partial document for a mood merge.
//
// 3. Persistent entities: [TrackRecord] is the local history row written
// for every compose attempt and playlist lookup. It implements the Model
// interface providing ID, timestamps, and validation.
package models
