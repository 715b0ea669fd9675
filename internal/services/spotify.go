// Spotify API implementation of [Catalog]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/moodtunes/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyPlaylist represents a playlist in a search response.
type SpotifyPlaylist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type playlistPage struct {
	Items []SpotifyPlaylist `json:"items"`
	Total int               `json:"total"`
}

// SpotifySearchResponse represents the playlist portion of a search response.
type SpotifySearchResponse struct {
	Playlists playlistPage `json:"playlists"`
}

// SpotifyService implements the [Catalog] interface for Spotify API
// interactions. Uses the OAuth2 client credentials flow, which suits
// catalog search since no user data is read.
type SpotifyService struct {
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a Spotify catalog client with the given
// credentials. The returned client fetches and refreshes app tokens
// transparently.
func NewSpotifyService(ctx context.Context, cfg shared.SpotifyConfig) (*SpotifyService, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret", shared.ErrMissingCredentials)
	}

	config := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyService{
		httpClient: config.Client(ctx),
		baseURL:    spotifyBaseURL,
	}, nil
}

// doRequest performs an authenticated GET request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchPlaylists searches Spotify for playlists matching the query.
func (s *SpotifyService) SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=playlist&limit=%d", url.QueryEscape(query), limit)

	var response SpotifySearchResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	playlists := make([]Playlist, 0, len(response.Playlists.Items))
	for _, item := range response.Playlists.Items {
		playlists = append(playlists, Playlist{
			ID:   item.ID,
			Name: item.Name,
			URL:  item.ExternalURLs.Spotify,
		})
	}

	return playlists, nil
}
