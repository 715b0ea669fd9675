// package tasks orchestrates music generation and playlist lookup.
//
// The core abstraction is ComposeEngine, which submits composition requests,
// polls the task until a terminal state, and hands finished tracks to a Player.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/genre"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultPollInterval = 10 * time.Second
	defaultPollTimeout  = 10 * time.Minute
	defaultMaxPolls     = 60
)

// ComposeResult contains the outcome of a full composition operation.
type ComposeResult struct {
	TaskID   string // Task ID assigned by the generation service
	Status   string // Terminal task status (composed or failed)
	TrackURL string // Result audio URL, set when composed
	Played   bool   // Whether playback was triggered
	Polls    int    // Number of status polls performed
}

// Composed reports whether the operation produced a track.
func (r *ComposeResult) Composed() bool {
	return r.Status == models.TaskStatusComposed
}

// Player plays a finished track for the user.
type Player interface {
	Play(url string) error
}

// ComposeEngine orchestrates the submit-and-poll composition flow.
// Contains dependencies on the generation service, catalog, and player.
type ComposeEngine struct {
	generator services.Generator
	catalog   services.Catalog
	player    Player
	logger    *log.Logger

	interval time.Duration
	timeout  time.Duration
	maxPolls int
}

// NewComposeEngine creates a ComposeEngine with the provided collaborators.
// Polling bounds come from config; zero values fall back to the defaults
// (10s interval, 10m deadline, 60 attempts).
func NewComposeEngine(generator services.Generator, catalog services.Catalog, player Player, cfg shared.BeatovenConfig, logger *log.Logger) *ComposeEngine {
	if logger == nil {
		logger = log.Default()
	}

	interval := time.Duration(cfg.PollIntervalSecs) * time.Second
	if interval <= 0 {
		interval = defaultPollInterval
	}
	timeout := time.Duration(cfg.PollTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = defaultPollTimeout
	}
	maxPolls := cfg.MaxPolls
	if maxPolls <= 0 {
		maxPolls = defaultMaxPolls
	}

	return &ComposeEngine{
		generator: generator,
		catalog:   catalog,
		player:    player,
		logger:    logger,
		interval:  interval,
		timeout:   timeout,
		maxPolls:  maxPolls,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ComposeEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Compose submits a composition request for the genre and polls until the
// task reaches a terminal state.
//
// Returns a result for both composed and failed tasks; errors are reserved
// for operations that never completed: a rejected submission wraps
// [shared.ErrComposeFailed], an exhausted deadline or attempt cap wraps
// [shared.ErrComposeTimeout]. A transport error during a single poll counts
// as a failed attempt but does not terminate the loop.
func (e *ComposeEngine) Compose(ctx context.Context, progress chan<- ProgressUpdate, label genre.Label) (*ComposeResult, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("%w: generation service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, submitTrackUpdate(string(label)))

	taskID, err := e.generator.Compose(ctx, services.ComposeRequest{
		Prompt: genre.PromptFor(label),
		Genre:  string(label),
		Format: "wav",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrComposeFailed, err)
	}

	e.logger.Info("composition submitted", "task_id", taskID, "genre", label)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(e.interval), 1)
	result := &ComposeResult{TaskID: taskID}

	for attempt := 1; attempt <= e.maxPolls; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrComposeTimeout, err)
		}

		task, err := e.generator.TaskStatus(ctx, taskID)
		result.Polls = attempt

		status := models.TaskStatusFailed
		if err != nil {
			e.logger.Warn("status poll failed", "task_id", taskID, "attempt", attempt, "error", err)
		} else {
			status = task.Status
		}

		e.sendProgress(progress, pollStatusUpdate(attempt, e.maxPolls, status))

		switch {
		case err == nil && status == models.TaskStatusComposed:
			result.Status = status
			result.TrackURL = task.TrackURL
			e.sendProgress(progress, trackReadyUpdate(task.TrackURL))
			e.play(result)
			return result, nil

		case err == nil && status == models.TaskStatusFailed:
			result.Status = status
			e.sendProgress(progress, trackFailedUpdate(taskID))
			return result, nil
		}
	}

	return nil, fmt.Errorf("%w: task %s still pending after %d polls", shared.ErrComposeTimeout, taskID, e.maxPolls)
}

func (e *ComposeEngine) play(result *ComposeResult) {
	if e.player == nil || result.TrackURL == "" {
		return
	}
	if err := e.player.Play(result.TrackURL); err != nil {
		e.logger.Warn("playback failed", "url", result.TrackURL, "error", err)
		return
	}
	result.Played = true
}

// PickPlaylist searches the catalog for playlists matching the genre and
// returns one chosen uniformly at random. Returns (nil, nil) when the
// search yields no results.
func (e *ComposeEngine) PickPlaylist(ctx context.Context, progress chan<- ProgressUpdate, label genre.Label) (*services.Playlist, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, searchPlaylistsUpdate(string(label)))

	playlists, err := e.catalog.SearchPlaylists(ctx, string(label), 5)
	if err != nil {
		return nil, err
	}
	if len(playlists) == 0 {
		return nil, nil
	}

	picked := playlists[rand.IntN(len(playlists))]
	return &picked, nil
}
