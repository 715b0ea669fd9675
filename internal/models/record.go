package models

import (
	"fmt"
	"time"
)

// Record kinds distinguishing history rows.
const (
	RecordKindCompose  = "compose"
	RecordKindPlaylist = "playlist"
)

// TrackRecord is one row of local recommendation history: a compose
// attempt or a playlist lookup for a user.
type TrackRecord struct {
	id        string
	Email     string
	Genre     string
	Kind      string // compose | playlist
	TaskID    string // compose only
	TrackURL  string // result URL when the operation succeeded
	Status    string
	createdAt time.Time
}

// NewTrackRecord creates a history row stamped with the current time.
func NewTrackRecord(email, genre, kind string) *TrackRecord {
	return &TrackRecord{
		Email:     email,
		Genre:     genre,
		Kind:      kind,
		createdAt: time.Now(),
	}
}

func (r *TrackRecord) ID() string           { return r.id }
func (r *TrackRecord) CreatedAt() time.Time { return r.createdAt }

// SetID assigns the record's unique identifier.
func (r *TrackRecord) SetID(id string) { r.id = id }

// SetCreatedAt overrides the creation timestamp (used when scanning rows).
func (r *TrackRecord) SetCreatedAt(t time.Time) { r.createdAt = t }

// Validate checks that required fields are present.
func (r *TrackRecord) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("track record requires an email")
	}
	if r.Genre == "" {
		return fmt.Errorf("track record requires a genre")
	}
	if r.Kind != RecordKindCompose && r.Kind != RecordKindPlaylist {
		return fmt.Errorf("invalid record kind: %s", r.Kind)
	}
	if r.Status == "" {
		return fmt.Errorf("track record requires a status")
	}
	return nil
}
