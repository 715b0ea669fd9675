// package services defines interfaces for interacting with HTTP APIs
//
// Beatoven (music generation), Spotify (playlist search)
package services

import (
	"context"

	"github.com/desertthunder/moodtunes/internal/models"
)

// Generator defines the interface for music generation providers that
// compose tracks asynchronously.
type Generator interface {
	// Compose submits a composition request and returns the provider's
	// task ID for polling.
	Compose(ctx context.Context, req ComposeRequest) (string, error)

	// TaskStatus retrieves the current state of a composition task.
	TaskStatus(ctx context.Context, taskID string) (*models.CompositionTask, error)
}

// Catalog defines the interface for music catalog providers that can
// search for playlists by genre.
type Catalog interface {
	// SearchPlaylists searches the catalog for playlists matching the
	// query, returning at most limit results.
	SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error)
}

// ComposeRequest describes a track to generate.
type ComposeRequest struct {
	Prompt string
	Genre  string
	Format string
}

// Playlist represents a playlist returned by a catalog search.
type Playlist struct {
	ID   string
	Name string
	URL  string
}
