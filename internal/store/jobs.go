package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nocturnedev/lantern/internal/models"
	"github.com/nocturnedev/lantern/internal/shared"
)

// VideoJobRepository implements [models.Repository] for [models.VideoJob] persistence.
type VideoJobRepository struct {
	db *sql.DB
}

// NewVideoJobRepository creates a new [VideoJobRepository] with the given database connection
func NewVideoJobRepository(db *sql.DB) *VideoJobRepository {
	return &VideoJobRepository{db: db}
}

// Create inserts a new video job into the database with generated ID and sequence
func (r *VideoJobRepository) Create(job *models.VideoJob) error {
	sequence, err := NextSequence(r.db, "video_jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	job.SetSequence(sequence)
	job.SetID(shared.GenerateID())

	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO video_jobs (id, sequence, source, remote_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, job.ID(), job.Sequence(), job.Source(), job.RemoteID(), job.Status(), job.CreatedAt(), job.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert video job: %w", err)
	}

	return nil
}

// Get retrieves a video job by ID, excluding soft-deleted jobs
func (r *VideoJobRepository) Get(id string) (*models.VideoJob, error) {
	query := `
		SELECT id, sequence, source, remote_id, status, created_at, updated_at, deleted_at
		FROM video_jobs
		WHERE id = ? AND deleted_at IS NULL
	`
	return r.scanJob(r.db.QueryRow(query, id))
}

// Update modifies an existing video job in the database
func (r *VideoJobRepository) Update(job *models.VideoJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	job.SetUpdatedAt(now)

	query := `
		UPDATE video_jobs
		SET remote_id = ?, status = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, job.RemoteID(), job.Status(), now, job.ID())
	if err != nil {
		return fmt.Errorf("failed to update video job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrJobNotFound, job.ID())
	}

	return nil
}

// Delete soft-deletes a video job by ID
func (r *VideoJobRepository) Delete(id string) error {
	query := `
		UPDATE video_jobs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete video job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
	}

	return nil
}

// List retrieves video jobs matching the given criteria, newest first.
// Supported criteria: "status".
func (r *VideoJobRepository) List(criteria map[string]any) ([]*models.VideoJob, error) {
	query := `
		SELECT id, sequence, source, remote_id, status, created_at, updated_at, deleted_at
		FROM video_jobs
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if status, ok := criteria["status"]; ok {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query video jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.VideoJob
	for rows.Next() {
		job, err := r.scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate video jobs: %w", err)
	}

	return jobs, nil
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (r *VideoJobRepository) scanJob(row scanner) (*models.VideoJob, error) {
	var (
		id        string
		sequence  int
		source    string
		remoteID  sql.NullString
		status    string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &source, &remoteID, &status, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video job: %w", err)
	}

	job := models.NewVideoJob(sequence, source)
	job.SetID(id)
	job.SetStatus(status)
	job.SetCreatedAt(createdAt)
	job.SetUpdatedAt(updatedAt)
	if remoteID.Valid {
		job.SetRemoteID(remoteID.String)
	}
	if deletedAt.Valid {
		job.SetDeletedAt(&deletedAt.Time)
	}

	return job, nil
}
