package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/moodtunes/internal/auth"
	"github.com/desertthunder/moodtunes/internal/genre"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/tasks"
)

type fakeStore struct {
	docs    map[string]models.Profile
	getErr  error
	saveErr error
}

func (f *fakeStore) Get(ctx context.Context, email string) (models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.docs[email], nil
}

func (f *fakeStore) Save(ctx context.Context, email string, profile models.Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.docs[email] = profile
	return nil
}

func (f *fakeStore) MergeMood(ctx context.Context, email string, mood models.MoodUpdate) error {
	doc := f.docs[email]
	if doc == nil {
		doc = models.Profile{}
	}
	for key, value := range mood.Document(time.Now()) {
		doc[key] = value
	}
	f.docs[email] = doc
	return nil
}

type fakeEngine struct {
	result      *tasks.ComposeResult
	composeErr  error
	playlist    *services.Playlist
	playlistErr error
}

func (f *fakeEngine) Compose(ctx context.Context, progress chan<- tasks.ProgressUpdate, label genre.Label) (*tasks.ComposeResult, error) {
	return f.result, f.composeErr
}

func (f *fakeEngine) PickPlaylist(ctx context.Context, progress chan<- tasks.ProgressUpdate, label genre.Label) (*services.Playlist, error) {
	return f.playlist, f.playlistErr
}

type fakeRecorder struct {
	records []*models.TrackRecord
}

func (f *fakeRecorder) Create(record *models.TrackRecord) error {
	f.records = append(f.records, record)
	return nil
}

func newTestServer(store *fakeStore, engine *fakeEngine, recorder *fakeRecorder) *Server {
	if store == nil {
		store = &fakeStore{docs: map[string]models.Profile{}}
	}
	if engine == nil {
		engine = &fakeEngine{}
	}
	if recorder == nil {
		recorder = &fakeRecorder{}
	}

	authenticator := auth.NewAuthenticator(map[string]string{"a@b.com": "pw"})
	sessions := auth.NewSessionManager(time.Hour)
	predictor := genre.NewPredictor(genre.ExampleModel(), nil)

	return New(authenticator, sessions, store, predictor, engine, recorder, nil)
}

func login(t *testing.T, router *Router) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(`{"email": "a@b.com", "password": "pw"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return body
}

func TestLogin(t *testing.T) {
	router := newTestServer(nil, nil, nil).Routes()

	t.Run("Rejects Bad Credentials", func(t *testing.T) {
		for _, body := range []string{
			`{"email": "a@b.com", "password": "wrong"}`,
			`{"email": "A@B.COM", "password": "pw"}`,
			`{"email": "other@b.com", "password": "pw"}`,
		} {
			req := httptest.NewRequest("POST", "/api/login", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401 for %s, got %d", body, rec.Code)
			}
		}
	})

	t.Run("Rejects Malformed Email", func(t *testing.T) {
		authenticator := auth.NewAuthenticator(map[string]string{"not-an-email": "pw"})
		sessions := auth.NewSessionManager(time.Hour)
		srv := New(authenticator, sessions, &fakeStore{docs: map[string]models.Profile{}},
			genre.NewPredictor(genre.ExampleModel(), nil), &fakeEngine{}, &fakeRecorder{}, nil)

		req := httptest.NewRequest("POST", "/api/login", strings.NewReader(`{"email": "not-an-email", "password": "pw"}`))
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for malformed email, got %d", rec.Code)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Error("expected no session cookie for malformed email")
		}
	})

	t.Run("Accepts Exact Pair", func(t *testing.T) {
		cookie := login(t, router)
		if cookie.Value == "" || !cookie.HttpOnly {
			t.Errorf("expected HttpOnly session cookie, got %+v", cookie)
		}
	})

	t.Run("Session Identity", func(t *testing.T) {
		cookie := login(t, router)

		req := httptest.NewRequest("GET", "/api/me", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		body := decodeBody(t, rec)
		if body["email"] != "a@b.com" || body["name"] != "a" {
			t.Errorf("unexpected identity %v", body)
		}
	})

	t.Run("Logout Destroys Session", func(t *testing.T) {
		cookie := login(t, router)

		req := httptest.NewRequest("POST", "/api/logout", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		req = httptest.NewRequest("GET", "/api/me", nil)
		req.AddCookie(cookie)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 after logout, got %d", rec.Code)
		}
	})

	t.Run("Protected Route Without Cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/profile", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}

func TestProfileRoutes(t *testing.T) {
	t.Run("Missing Profile", func(t *testing.T) {
		router := newTestServer(nil, nil, nil).Routes()
		cookie := login(t, router)

		req := httptest.NewRequest("GET", "/api/profile", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Save Then Fetch", func(t *testing.T) {
		store := &fakeStore{docs: map[string]models.Profile{}}
		router := newTestServer(store, nil, nil).Routes()
		cookie := login(t, router)

		req := httptest.NewRequest("PUT", "/api/profile", strings.NewReader(`{"Age": 30, "Frequency_Rock": "Very frequently"}`))
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("save failed with status %d", rec.Code)
		}

		req = httptest.NewRequest("GET", "/api/profile", nil)
		req.AddCookie(cookie)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		body := decodeBody(t, rec)
		if body["Frequency_Rock"] != "Very frequently" {
			t.Errorf("unexpected profile %v", body)
		}
	})

	t.Run("Mood Merge", func(t *testing.T) {
		store := &fakeStore{docs: map[string]models.Profile{
			"a@b.com": {"Age": 30},
		}}
		router := newTestServer(store, nil, nil).Routes()
		cookie := login(t, router)

		req := httptest.NewRequest("POST", "/api/profile/mood", strings.NewReader(`{"anxiety": 7, "depression": 3, "insomnia": 5, "focus": 2, "exploratory": 1}`))
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("mood merge failed with status %d", rec.Code)
		}

		doc := store.docs["a@b.com"]
		if doc[models.KeyAnxiety] != 7 {
			t.Errorf("expected anxiety 7, got %v", doc[models.KeyAnxiety])
		}
		if doc["Age"] != 30 {
			t.Errorf("expected untouched fields to survive, got %v", doc)
		}
	})
}

func TestMusicRoutes(t *testing.T) {
	t.Run("Compose Success", func(t *testing.T) {
		engine := &fakeEngine{result: &tasks.ComposeResult{
			TaskID:   "abc",
			Status:   models.TaskStatusComposed,
			TrackURL: "https://cdn.example.com/track.wav",
		}}
		recorder := &fakeRecorder{}
		router := newTestServer(nil, engine, recorder).Routes()
		cookie := login(t, router)

		req := httptest.NewRequest("POST", "/api/music/compose", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("compose failed with status %d: %s", rec.Code, rec.Body.String())
		}

		body := decodeBody(t, rec)
		if body["track_url"] != "https://cdn.example.com/track.wav" {
			t.Errorf("unexpected body %v", body)
		}
		if label, ok := body["genre"].(string); !ok || label == "" {
			t.Error("expected a genre in the response")
		}

		if len(recorder.records) != 1 || recorder.records[0].Kind != models.RecordKindCompose {
			t.Errorf("expected one compose history row, got %+v", recorder.records)
		}
	})

	t.Run("Compose Failure", func(t *testing.T) {
		engine := &fakeEngine{composeErr: errors.New("boom")}
		router := newTestServer(nil, engine, nil).Routes()
		cookie := login(t, router)

		req := httptest.NewRequest("POST", "/api/music/compose", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
		body := decodeBody(t, rec)
		if message, ok := body["error"].(string); !ok || message == "" {
			t.Error("expected error payload")
		}
	})

	t.Run("Playlist Found", func(t *testing.T) {
		engine := &fakeEngine{playlist: &services.Playlist{
			ID:   "p1",
			Name: "Pop Hits",
			URL:  "https://open.spotify.com/playlist/p1",
		}}
		router := newTestServer(nil, engine, nil).Routes()
		cookie := login(t, router)

		req := httptest.NewRequest("GET", "/api/music/playlist", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		body := decodeBody(t, rec)
		if body["url"] != "https://open.spotify.com/playlist/p1" {
			t.Errorf("unexpected body %v", body)
		}
	})

	t.Run("No Playlists", func(t *testing.T) {
		router := newTestServer(nil, &fakeEngine{}, nil).Routes()
		cookie := login(t, router)

		req := httptest.NewRequest("GET", "/api/music/playlist", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["error"] != "no playlists found" {
			t.Errorf("unexpected error payload %v", body)
		}
	})
}

func TestHealth(t *testing.T) {
	router := newTestServer(nil, nil, nil).Routes()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
