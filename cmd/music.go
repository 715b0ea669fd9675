package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/moodtunes/internal/genre"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
	"github.com/desertthunder/moodtunes/internal/tasks"
	"github.com/urfave/cli/v3"
)

// favoriteGenre loads the user's profile and predicts a genre. A missing
// document falls back to an empty profile, which encodes to the defaults.
func (r *Runner) favoriteGenre(ctx context.Context, email string) (genre.Label, error) {
	predictor, err := r.predictor()
	if err != nil {
		return "", fmt.Errorf("failed to load genre model: %w", err)
	}

	store, err := r.profileStore(ctx)
	if err != nil {
		return "", err
	}

	profile, err := store.Get(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil {
		r.logger.Warn("no profile found, predicting from defaults", "email", email)
		profile = models.Profile{}
	}

	return predictor.FavoriteGenre(profile), nil
}

// MusicPredict prints the predicted favorite genre.
func (r *Runner) MusicPredict(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	email, err := r.resolveEmail(cmd)
	if err != nil {
		return err
	}
	defer r.close()

	label, err := r.favoriteGenre(ctx, email)
	if err != nil {
		return err
	}

	return r.writePlain("Predicted genre for %s: %s\n", email, label)
}

// drainProgress prints progress updates until the channel is closed.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate, drained chan<- struct{}) {
	for update := range progress {
		r.writePlain("%s\n", update.Message)
	}
	close(drained)
}

// MusicCompose predicts a genre, generates a track, and opens it.
func (r *Runner) MusicCompose(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	email, err := r.resolveEmail(cmd)
	if err != nil {
		return err
	}
	defer r.close()

	label, err := r.favoriteGenre(ctx, email)
	if err != nil {
		return err
	}

	var player tasks.Player
	if !cmd.Bool("no-play") {
		player = r.cliPlayer()
	}

	engine, err := r.composeEngine(player)
	if err != nil {
		return err
	}

	r.writePlain("Composing a %s track...\n", label)

	progress := make(chan tasks.ProgressUpdate, 16)
	drained := make(chan struct{})
	go r.drainProgress(progress, drained)

	result, err := engine.Compose(ctx, progress, label)
	close(progress)
	<-drained
	if err != nil {
		record := models.NewTrackRecord(email, string(label), models.RecordKindCompose)
		record.Status = models.TaskStatusFailed
		r.record(record)
		return err
	}

	record := models.NewTrackRecord(email, string(label), models.RecordKindCompose)
	record.TaskID = result.TaskID
	record.TrackURL = result.TrackURL
	record.Status = result.Status
	r.record(record)

	if !result.Composed() {
		return fmt.Errorf("%w: task %s", shared.ErrComposeFailed, result.TaskID)
	}

	r.writePlain("✓ Track ready: %s\n", result.TrackURL)
	if result.Played {
		r.writePlain("Opened in your browser.\n")
	}
	return nil
}

// MusicPlaylist predicts a genre and finds a matching playlist.
func (r *Runner) MusicPlaylist(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	email, err := r.resolveEmail(cmd)
	if err != nil {
		return err
	}
	defer r.close()

	label, err := r.favoriteGenre(ctx, email)
	if err != nil {
		return err
	}

	engine, err := r.composeEngine(nil)
	if err != nil {
		return err
	}

	playlist, err := engine.PickPlaylist(ctx, nil, label)
	if err != nil {
		return fmt.Errorf("playlist search failed: %w", err)
	}
	if playlist == nil {
		return fmt.Errorf("%w: for genre %s", shared.ErrNoPlaylists, label)
	}

	record := models.NewTrackRecord(email, string(label), models.RecordKindPlaylist)
	record.TrackURL = playlist.URL
	record.Status = "found"
	r.record(record)

	r.writePlain("Playlist for %s: %s\n%s\n", label, playlist.Name, playlist.URL)

	if cmd.Bool("open") {
		if err := r.cliPlayer().Play(playlist.URL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}
	return nil
}
