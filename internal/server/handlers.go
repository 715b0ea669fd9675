package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/desertthunder/moodtunes/internal/auth"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !auth.ValidateEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "please enter a valid email address")
		return
	}

	if !s.auth.Check(req.Email, req.Password) {
		writeError(w, http.StatusUnauthorized, "user not found or incorrect password")
		return
	}

	session := s.sessions.Create(req.Email)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"email": session.Email,
		"name":  session.Name,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		s.sessions.Destroy(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"email": session.Email,
		"name":  session.Name,
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	profile, err := s.profiles.Get(r.Context(), session.Email)
	if err != nil {
		s.logger.Error("profile fetch failed", "email", session.Email, "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch profile")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.profiles.Save(r.Context(), session.Email, profile); err != nil {
		s.logger.Error("profile save failed", "email", session.Email, "error", err)
		writeError(w, http.StatusBadGateway, "failed to save profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type moodRequest struct {
	Exploratory int `json:"exploratory"`
	Anxiety     int `json:"anxiety"`
	Depression  int `json:"depression"`
	Insomnia    int `json:"insomnia"`
	Focus       int `json:"focus"`
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mood := models.MoodUpdate{
		Exploratory: req.Exploratory,
		Anxiety:     req.Anxiety,
		Depression:  req.Depression,
		Insomnia:    req.Insomnia,
		Focus:       req.Focus,
	}

	if err := s.profiles.MergeMood(r.Context(), session.Email, mood); err != nil {
		s.logger.Error("mood merge failed", "email", session.Email, "error", err)
		writeError(w, http.StatusBadGateway, "failed to update mood")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// favoriteGenre loads the user's profile and predicts their genre. A missing
// document predicts from an empty profile, which encodes to the defaults.
func (s *Server) favoriteGenre(r *http.Request, email string) models.Profile {
	profile, err := s.profiles.Get(r.Context(), email)
	if err != nil {
		s.logger.Warn("profile fetch failed, predicting from defaults", "email", email, "error", err)
		return models.Profile{}
	}
	if profile == nil {
		return models.Profile{}
	}
	return profile
}

func (s *Server) record(record *models.TrackRecord) {
	if s.history == nil {
		return
	}
	if err := s.history.Create(record); err != nil {
		s.logger.Warn("failed to record history", "email", record.Email, "error", err)
	}
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	profile := s.favoriteGenre(r, session.Email)
	label := s.predictor.FavoriteGenre(profile)

	result, err := s.engine.Compose(r.Context(), nil, label)
	if err != nil {
		record := models.NewTrackRecord(session.Email, string(label), models.RecordKindCompose)
		record.Status = models.TaskStatusFailed
		s.record(record)

		s.logger.Error("compose failed", "email", session.Email, "genre", label, "error", err)
		if errors.Is(err, shared.ErrComposeTimeout) {
			writeError(w, http.StatusGatewayTimeout, "composition timed out")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to start composition")
		return
	}

	record := models.NewTrackRecord(session.Email, string(label), models.RecordKindCompose)
	record.TaskID = result.TaskID
	record.TrackURL = result.TrackURL
	record.Status = result.Status
	s.record(record)

	if !result.Composed() {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "composition failed",
			"genre": string(label),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"genre":     string(label),
		"track_url": result.TrackURL,
	})
}

func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())

	profile := s.favoriteGenre(r, session.Email)
	label := s.predictor.FavoriteGenre(profile)

	playlist, err := s.engine.PickPlaylist(r.Context(), nil, label)
	if err != nil {
		s.logger.Error("playlist search failed", "email", session.Email, "genre", label, "error", err)
		writeError(w, http.StatusNotFound, "no playlists found")
		return
	}
	if playlist == nil {
		writeError(w, http.StatusNotFound, "no playlists found")
		return
	}

	record := models.NewTrackRecord(session.Email, string(label), models.RecordKindPlaylist)
	record.TrackURL = playlist.URL
	record.Status = "found"
	s.record(record)

	writeJSON(w, http.StatusOK, map[string]string{
		"genre": string(label),
		"name":  playlist.Name,
		"url":   playlist.URL,
	})
}
