// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/services"
)

// MockGenerator is a configurable test double for [services.Generator].
type MockGenerator struct {
	TaskID     string
	ComposeErr error
	Statuses   []models.CompositionTask
	Polls      int
}

func (m *MockGenerator) Compose(ctx context.Context, req services.ComposeRequest) (string, error) {
	return m.TaskID, m.ComposeErr
}

func (m *MockGenerator) TaskStatus(ctx context.Context, taskID string) (*models.CompositionTask, error) {
	i := m.Polls
	m.Polls++
	if len(m.Statuses) == 0 {
		return nil, errors.New("no statuses configured")
	}
	if i >= len(m.Statuses) {
		i = len(m.Statuses) - 1
	}
	task := m.Statuses[i]
	task.ID = taskID
	return &task, nil
}

// MockCatalog is a test double for [services.Catalog].
type MockCatalog struct {
	Playlists []services.Playlist
	Err       error
}

func (m *MockCatalog) SearchPlaylists(ctx context.Context, query string, limit int) ([]services.Playlist, error) {
	return m.Playlists, m.Err
}

// MockPlayer records playback invocations.
type MockPlayer struct {
	URLs []string
	Err  error
}

func (m *MockPlayer) Play(url string) error {
	m.URLs = append(m.URLs, url)
	return m.Err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
