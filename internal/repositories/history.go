// package repositories provides the persistence layer for track history.
//
// Every compose attempt and playlist lookup is recorded so users can review
// what was generated for them and when.
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
)

// TrackRecordRepository implements [models.Repository] for [models.TrackRecord]
// history rows in sqlite.
type TrackRecordRepository struct {
	db *sql.DB
}

// NewTrackRecordRepository creates a new TrackRecordRepository with the given database connection
func NewTrackRecordRepository(db *sql.DB) *TrackRecordRepository {
	return &TrackRecordRepository{db: db}
}

// Create inserts a new [models.TrackRecord] into the database with a generated ID
func (r *TrackRecordRepository) Create(record *models.TrackRecord) error {
	record.SetID(shared.GenerateID())
	if record.CreatedAt().IsZero() {
		record.SetCreatedAt(time.Now().UTC())
	}

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO track_records (id, email, genre, kind, task_id, track_url, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		record.ID(),
		record.Email,
		record.Genre,
		record.Kind,
		record.TaskID,
		record.TrackURL,
		record.Status,
		record.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert track record: %w", err)
	}

	return nil
}

// Get retrieves a track record by ID
func (r *TrackRecordRepository) Get(id string) (*models.TrackRecord, error) {
	query := `
		SELECT id, email, genre, kind, task_id, track_url, status, created_at
		FROM track_records
		WHERE id = ?
	`

	record, err := scanRecord(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("track record not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track record: %w", err)
	}

	return record, nil
}

// ListByEmail retrieves a user's track records, most recent first.
func (r *TrackRecordRepository) ListByEmail(email string, limit int) ([]*models.TrackRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, email, genre, kind, task_id, track_url, status, created_at
		FROM track_records
		WHERE email = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, email, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query track records: %w", err)
	}
	defer rows.Close()

	var records []*models.TrackRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.TrackRecord, error) {
	var (
		id        string
		email     string
		genre     string
		kind      string
		taskID    sql.NullString
		trackURL  sql.NullString
		status    string
		createdAt time.Time
	)

	if err := row.Scan(&id, &email, &genre, &kind, &taskID, &trackURL, &status, &createdAt); err != nil {
		return nil, err
	}

	record := models.NewTrackRecord(email, genre, kind)
	record.SetID(id)
	record.SetCreatedAt(createdAt)
	record.TaskID = taskID.String
	record.TrackURL = trackURL.String
	record.Status = status

	return record, nil
}
