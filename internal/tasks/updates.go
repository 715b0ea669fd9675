package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SubmitTrack Phase = iota
	PollStatus
	TrackReady
	TrackFailed
	SearchPlaylists
)

func (p Phase) String() string {
	switch p {
	case SubmitTrack:
		return "submit_track"
	case PollStatus:
		return "poll_status"
	case TrackReady:
		return "track_ready"
	case TrackFailed:
		return "track_failed"
	case SearchPlaylists:
		return "search_playlists"
	default:
		return ""
	}
}

func submitTrackUpdate(genre string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SubmitTrack,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Submitting %s composition request...", genre),
	}
}

func pollStatusUpdate(step, total int, status string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PollStatus,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Task status: %s", step, total, status),
	}
}

func trackReadyUpdate(url string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TrackReady,
		Step:    1,
		Total:   1,
		Message: "Track composed",
		Data:    url,
	}
}

func trackFailedUpdate(taskID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TrackFailed,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Composition failed (task %s)", taskID),
	}
}

func searchPlaylistsUpdate(genre string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchPlaylists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching playlists for %s...", genre),
	}
}
