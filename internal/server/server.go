// package server contains middleware & handlers for the moodtunes web service
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/auth"
	"github.com/desertthunder/moodtunes/internal/genre"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/tasks"
)

// SessionCookie is the name of the session cookie issued at login.
const SessionCookie = "moodtunes_session"

// ProfileStore defines the profile document operations handlers depend on.
type ProfileStore interface {
	Get(ctx context.Context, email string) (models.Profile, error)
	Save(ctx context.Context, email string, profile models.Profile) error
	MergeMood(ctx context.Context, email string, mood models.MoodUpdate) error
}

// MusicEngine defines the composition and playlist operations handlers depend on.
type MusicEngine interface {
	Compose(ctx context.Context, progress chan<- tasks.ProgressUpdate, label genre.Label) (*tasks.ComposeResult, error)
	PickPlaylist(ctx context.Context, progress chan<- tasks.ProgressUpdate, label genre.Label) (*services.Playlist, error)
}

// Recorder persists track history rows. Recording is best effort; handler
// responses never depend on it.
type Recorder interface {
	Create(record *models.TrackRecord) error
}

// Server wires the authenticated API surface together.
type Server struct {
	auth      *auth.Authenticator
	sessions  *auth.SessionManager
	profiles  ProfileStore
	predictor *genre.Predictor
	engine    MusicEngine
	history   Recorder
	logger    *log.Logger
}

// New creates a Server with the provided collaborators.
func New(authenticator *auth.Authenticator, sessions *auth.SessionManager, profiles ProfileStore, predictor *genre.Predictor, engine MusicEngine, history Recorder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		auth:      authenticator,
		sessions:  sessions,
		profiles:  profiles,
		predictor: predictor,
		engine:    engine,
		history:   history,
		logger:    logger,
	}
}

// Routes builds the router with the full middleware chain and all API routes.
func (s *Server) Routes() *Router {
	router := NewRouter()
	router.Use(s.Recover, s.LogRequests)

	router.Handle("GET /health", http.HandlerFunc(s.handleHealth))
	router.Handle("POST /api/login", http.HandlerFunc(s.handleLogin))
	router.Handle("POST /api/logout", http.HandlerFunc(s.handleLogout))

	router.Handle("GET /api/me", http.HandlerFunc(s.handleMe), s.RequireSession)
	router.Handle("GET /api/profile", http.HandlerFunc(s.handleGetProfile), s.RequireSession)
	router.Handle("PUT /api/profile", http.HandlerFunc(s.handlePutProfile), s.RequireSession)
	router.Handle("POST /api/profile/mood", http.HandlerFunc(s.handleMood), s.RequireSession)
	router.Handle("POST /api/music/compose", http.HandlerFunc(s.handleCompose), s.RequireSession)
	router.Handle("GET /api/music/playlist", http.HandlerFunc(s.handlePlaylist), s.RequireSession)

	return router
}

// Start listens on addr and serves the API until the context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Minute, // compose requests poll a remote job
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errs:
		return err
	}
}
