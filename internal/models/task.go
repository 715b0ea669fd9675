package models

// Composition task statuses reported by the generation API.
//
// Only "composed" and "failed" are terminal; every other status literal
// (queued, processing, running, ...) keeps the poll loop going.
const (
	TaskStatusComposed = "composed"
	TaskStatusFailed   = "failed"
)

// CompositionTask is one remote music generation job.
//
// Not persisted: it exists only for the duration of a single poll loop.
type CompositionTask struct {
	ID       string // opaque task id returned by the compose endpoint
	Status   string
	TrackURL string // set once Status is composed
}

// Terminal reports whether the task has reached a final state.
func (t CompositionTask) Terminal() bool {
	return t.Status == TaskStatusComposed || t.Status == TaskStatusFailed
}
