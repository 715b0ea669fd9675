// Package services implements the [Generator] and [Catalog] interfaces for the Beatoven and Spotify APIs.
//
// # Generator Interface
//
// Music generation is asynchronous: [BeatovenService.Compose] submits a prompt and returns a task ID,
// and [BeatovenService.TaskStatus] reports progress until the task reaches a terminal state.
//
// # Catalog Interface
//
// [SpotifyService] authenticates with the client credentials flow via [clientcredentials.Config],
// which caches and refreshes the app token automatically. Search results map the provider JSON to
// the neutral [Playlist] type.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : required API key or client secret absent from config
//   - [shared.ErrAPIRequest] : HTTP request failed or returned a non-2xx status
//   - [shared.ErrServiceUnavailable] : provider returned an unusable response body
package services
