package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/shared"
)

type mockGenerator struct {
	taskID     string
	composeErr error
	statuses   []models.CompositionTask
	statusErrs []error
	polls      int
}

func (m *mockGenerator) Compose(ctx context.Context, req services.ComposeRequest) (string, error) {
	return m.taskID, m.composeErr
}

func (m *mockGenerator) TaskStatus(ctx context.Context, taskID string) (*models.CompositionTask, error) {
	i := m.polls
	m.polls++
	if i < len(m.statusErrs) && m.statusErrs[i] != nil {
		return nil, m.statusErrs[i]
	}
	if i >= len(m.statuses) {
		i = len(m.statuses) - 1
	}
	task := m.statuses[i]
	task.ID = taskID
	return &task, nil
}

type mockCatalog struct {
	playlists []services.Playlist
	err       error
}

func (m *mockCatalog) SearchPlaylists(ctx context.Context, query string, limit int) ([]services.Playlist, error) {
	return m.playlists, m.err
}

type countingPlayer struct {
	urls []string
	err  error
}

func (p *countingPlayer) Play(url string) error {
	p.urls = append(p.urls, url)
	return p.err
}

func newTestEngine(generator services.Generator, catalog services.Catalog, player Player) *ComposeEngine {
	return &ComposeEngine{
		generator: generator,
		catalog:   catalog,
		player:    player,
		logger:    shared.NewLogger(nil),
		interval:  time.Millisecond,
		timeout:   time.Second,
		maxPolls:  5,
	}
}

func TestCompose(t *testing.T) {
	t.Run("Composes After Processing", func(t *testing.T) {
		generator := &mockGenerator{
			taskID: "abc",
			statuses: []models.CompositionTask{
				{Status: "processing"},
				{Status: "processing"},
				{Status: models.TaskStatusComposed, TrackURL: "https://cdn.example.com/track.wav"},
			},
		}
		player := &countingPlayer{}
		engine := newTestEngine(generator, nil, player)

		result, err := engine.Compose(context.Background(), nil, "Rock")
		if err != nil {
			t.Fatalf("compose failed: %v", err)
		}

		if !result.Composed() {
			t.Errorf("expected composed result, got status %s", result.Status)
		}
		if result.TrackURL != "https://cdn.example.com/track.wav" {
			t.Errorf("unexpected track URL %s", result.TrackURL)
		}
		if result.Polls != 3 {
			t.Errorf("expected 3 polls, got %d", result.Polls)
		}
		if len(player.urls) != 1 || player.urls[0] != "https://cdn.example.com/track.wav" {
			t.Errorf("expected playback exactly once with track URL, got %v", player.urls)
		}
		if !result.Played {
			t.Error("expected result to record playback")
		}
	})

	t.Run("Failed On First Poll", func(t *testing.T) {
		generator := &mockGenerator{
			taskID:   "abc",
			statuses: []models.CompositionTask{{Status: models.TaskStatusFailed}},
		}
		player := &countingPlayer{}
		engine := newTestEngine(generator, nil, player)

		result, err := engine.Compose(context.Background(), nil, "Rock")
		if err != nil {
			t.Fatalf("expected completed operation, got %v", err)
		}

		if result.Composed() {
			t.Error("expected failed result")
		}
		if len(player.urls) != 0 {
			t.Errorf("expected no playback, got %v", player.urls)
		}
	})

	t.Run("Submit Failure", func(t *testing.T) {
		generator := &mockGenerator{composeErr: errors.New("boom")}
		engine := newTestEngine(generator, nil, &countingPlayer{})

		_, err := engine.Compose(context.Background(), nil, "Rock")
		if !errors.Is(err, shared.ErrComposeFailed) {
			t.Errorf("expected ErrComposeFailed, got %v", err)
		}
	})

	t.Run("Poll Error Does Not Terminate", func(t *testing.T) {
		generator := &mockGenerator{
			taskID: "abc",
			statusErrs: []error{
				errors.New("connection reset"),
				nil,
			},
			statuses: []models.CompositionTask{
				{},
				{Status: models.TaskStatusComposed, TrackURL: "https://cdn.example.com/track.wav"},
			},
		}
		engine := newTestEngine(generator, nil, &countingPlayer{})

		result, err := engine.Compose(context.Background(), nil, "Rock")
		if err != nil {
			t.Fatalf("compose failed: %v", err)
		}
		if !result.Composed() || result.Polls != 2 {
			t.Errorf("expected composed on second poll, got %+v", result)
		}
	})

	t.Run("Exhausts Attempts", func(t *testing.T) {
		generator := &mockGenerator{
			taskID:   "abc",
			statuses: []models.CompositionTask{{Status: "processing"}},
		}
		engine := newTestEngine(generator, nil, &countingPlayer{})

		_, err := engine.Compose(context.Background(), nil, "Rock")
		if !errors.Is(err, shared.ErrComposeTimeout) {
			t.Errorf("expected ErrComposeTimeout, got %v", err)
		}
		if generator.polls != 5 {
			t.Errorf("expected 5 polls, got %d", generator.polls)
		}
	})

	t.Run("Reports Progress", func(t *testing.T) {
		generator := &mockGenerator{
			taskID:   "abc",
			statuses: []models.CompositionTask{{Status: models.TaskStatusComposed, TrackURL: "u"}},
		}
		engine := newTestEngine(generator, nil, &countingPlayer{})
		progress := make(chan ProgressUpdate, 16)

		if _, err := engine.Compose(context.Background(), progress, "Pop"); err != nil {
			t.Fatalf("compose failed: %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) < 3 || phases[0] != SubmitTrack || phases[len(phases)-1] != TrackReady {
			t.Errorf("unexpected phase sequence %v", phases)
		}
	})
}

func TestPickPlaylist(t *testing.T) {
	t.Run("Zero Results", func(t *testing.T) {
		engine := newTestEngine(nil, &mockCatalog{}, nil)

		playlist, err := engine.PickPlaylist(context.Background(), nil, "Pop")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if playlist != nil {
			t.Errorf("expected nil playlist, got %+v", playlist)
		}
	})

	t.Run("Picks A Member", func(t *testing.T) {
		candidates := []services.Playlist{
			{ID: "p1", URL: "https://open.spotify.com/playlist/p1"},
			{ID: "p2", URL: "https://open.spotify.com/playlist/p2"},
			{ID: "p3", URL: "https://open.spotify.com/playlist/p3"},
		}
		engine := newTestEngine(nil, &mockCatalog{playlists: candidates}, nil)

		for range 20 {
			playlist, err := engine.PickPlaylist(context.Background(), nil, "Rock")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			member := false
			for _, c := range candidates {
				if playlist != nil && playlist.URL == c.URL {
					member = true
				}
			}
			if !member {
				t.Fatalf("picked playlist %+v not in candidates", playlist)
			}
		}
	})

	t.Run("Search Error", func(t *testing.T) {
		engine := newTestEngine(nil, &mockCatalog{err: errors.New("boom")}, nil)

		if _, err := engine.PickPlaylist(context.Background(), nil, "Rock"); err == nil {
			t.Error("expected error")
		}
	})
}
