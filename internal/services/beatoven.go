// Beatoven API implementation of [Generator]
//
// Request and response shapes based on https://docs.beatoven.ai/api-reference
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
)

const beatovenBaseURL = "https://public-api.beatoven.ai/api/v1"

type composePrompt struct {
	Text  string `json:"text"`
	Genre string `json:"genre,omitempty"`
}

type composeRequestBody struct {
	Prompt composePrompt `json:"prompt"`
	Format string        `json:"format"`
}

type composeResponse struct {
	TaskID string `json:"task_id"`
}

type taskMeta struct {
	TrackURL string `json:"track_url"`
}

// BeatovenTask represents a composition task as reported by the API.
type BeatovenTask struct {
	Status string   `json:"status"`
	Meta   taskMeta `json:"meta"`
}

// BeatovenService implements the [Generator] interface for the Beatoven
// composition API. Authenticates every request with a bearer API key.
type BeatovenService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewBeatovenService creates a Beatoven client from config. The API key
// is required; the base URL falls back to the public endpoint.
func NewBeatovenService(cfg shared.BeatovenConfig) (*BeatovenService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: beatoven api_key", shared.ErrMissingCredentials)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = beatovenBaseURL
	}

	return &BeatovenService{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}, nil
}

// doRequest performs an authenticated HTTP request to the Beatoven API.
func (s *BeatovenService) doRequest(ctx context.Context, method, endpoint string, body interface{}, result interface{}) error {
	apiURL := s.baseURL + endpoint

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: beatoven returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Compose submits a composition task and returns its task ID.
func (s *BeatovenService) Compose(ctx context.Context, req ComposeRequest) (string, error) {
	format := req.Format
	if format == "" {
		format = "wav"
	}

	body := composeRequestBody{
		Prompt: composePrompt{Text: req.Prompt, Genre: req.Genre},
		Format: format,
	}

	var response composeResponse
	if err := s.doRequest(ctx, "POST", "/tracks/compose", body, &response); err != nil {
		return "", err
	}

	if response.TaskID == "" {
		return "", fmt.Errorf("%w: compose response missing task_id", shared.ErrServiceUnavailable)
	}

	return response.TaskID, nil
}

// TaskStatus retrieves the current state of a composition task.
func (s *BeatovenService) TaskStatus(ctx context.Context, taskID string) (*models.CompositionTask, error) {
	var task BeatovenTask
	endpoint := fmt.Sprintf("/tasks/%s", taskID)
	if err := s.doRequest(ctx, "GET", endpoint, nil, &task); err != nil {
		return nil, err
	}

	return &models.CompositionTask{
		ID:       taskID,
		Status:   task.Status,
		TrackURL: task.Meta.TrackURL,
	}, nil
}
