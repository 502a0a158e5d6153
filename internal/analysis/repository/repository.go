// Package repository persists photo-analysis jobs and their photos.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"renoquote_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Job statuses. A job is created pending, runs once, and ends completed
// or failed; there is no mid-run cancellation.
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Job is the database model for one photo-analysis run.
type Job struct {
	ID              uuid.UUID `db:"id"`
	QuoteID         uuid.UUID `db:"quote_id"`
	OwnerID         uuid.UUID `db:"owner_id"`
	Status          string    `db:"status"`
	TotalPhotos     int       `db:"total_photos"`
	ProcessedPhotos int       `db:"processed_photos"`
	Progress        int       `db:"progress"`
	Result          []byte    `db:"result"`
	FailureReason   *string   `db:"failure_reason"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Photo is the database model for one photo reference in a job.
type Photo struct {
	ID                 uuid.UUID `db:"id"`
	JobID              uuid.UUID `db:"job_id"`
	FileKey            string    `db:"file_key"`
	Description        *string   `db:"description"`
	ExplicitCategories []string  `db:"explicit_categories"`
	DetectedCategories []string  `db:"detected_categories"`
	Position           int       `db:"position"`
}

const jobNotFoundMsg = "analysis job not found"

// Repository provides database operations for analysis jobs.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new analysis repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateJob inserts a job and its photo references in one transaction.
func (r *Repository) CreateJob(ctx context.Context, job *Job, photos []Photo) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	jobQuery := `
		INSERT INTO analysis_jobs (
			id, quote_id, owner_id, status, total_photos, processed_photos,
			progress, result, failure_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := tx.Exec(ctx, jobQuery,
		job.ID, job.QuoteID, job.OwnerID, job.Status, job.TotalPhotos, job.ProcessedPhotos,
		job.Progress, job.Result, job.FailureReason, job.CreatedAt, job.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert analysis job: %w", err)
	}

	photoQuery := `
		INSERT INTO analysis_photos (
			id, job_id, file_key, description, explicit_categories, detected_categories, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, p := range photos {
		if _, err := tx.Exec(ctx, photoQuery,
			p.ID, p.JobID, p.FileKey, p.Description, p.ExplicitCategories, p.DetectedCategories, p.Position,
		); err != nil {
			return fmt.Errorf("failed to insert analysis photo: %w", err)
		}
	}

	return tx.Commit(ctx)
}

const jobSelect = `
	SELECT id, quote_id, owner_id, status, total_photos, processed_photos,
		progress, result, failure_reason, created_at, updated_at
	FROM analysis_jobs`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(
		&j.ID, &j.QuoteID, &j.OwnerID, &j.Status, &j.TotalPhotos, &j.ProcessedPhotos,
		&j.Progress, &j.Result, &j.FailureReason, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(jobNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to scan analysis job: %w", err)
	}
	return &j, nil
}

// GetJob retrieves a job by id.
func (r *Repository) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	return scanJob(r.pool.QueryRow(ctx, jobSelect+` WHERE id = $1`, id))
}

// GetJobForQuote retrieves a job scoped to a quote and owner.
func (r *Repository) GetJobForQuote(ctx context.Context, id, quoteID, ownerID uuid.UUID) (*Job, error) {
	return scanJob(r.pool.QueryRow(ctx, jobSelect+` WHERE id = $1 AND quote_id = $2 AND owner_id = $3`, id, quoteID, ownerID))
}

// ListPhotos returns a job's photos in upload order.
func (r *Repository) ListPhotos(ctx context.Context, jobID uuid.UUID) ([]Photo, error) {
	query := `
		SELECT id, job_id, file_key, description, explicit_categories, detected_categories, position
		FROM analysis_photos WHERE job_id = $1 ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(
			&p.ID, &p.JobID, &p.FileKey, &p.Description, &p.ExplicitCategories, &p.DetectedCategories, &p.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analysis photos: %w", err)
	}
	return photos, nil
}

// UpdateJobStatus sets a job's status.
func (r *Repository) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE analysis_jobs SET status = $2, updated_at = $3 WHERE id = $1`,
		jobID, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMsg)
	}
	return nil
}

// UpdateProgress persists the processed-photo count and derived percentage
// after each photo, so pollers see the job advance.
func (r *Repository) UpdateProgress(ctx context.Context, jobID uuid.UUID, processed, progress int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE analysis_jobs SET processed_photos = $2, progress = $3, updated_at = $4 WHERE id = $1`,
		jobID, processed, progress, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update job progress: %w", err)
	}
	return nil
}

// SetPhotoDetections records the categories detected on one photo.
func (r *Repository) SetPhotoDetections(ctx context.Context, photoID uuid.UUID, categories []string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE analysis_photos SET detected_categories = $2 WHERE id = $1`,
		photoID, categories)
	if err != nil {
		return fmt.Errorf("failed to update photo detections: %w", err)
	}
	return nil
}

// CompleteJob marks a job completed and stores the consolidation result.
func (r *Repository) CompleteJob(ctx context.Context, jobID uuid.UUID, result []byte) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE analysis_jobs SET status = $2, result = $3, progress = 100, updated_at = $4 WHERE id = $1`,
		jobID, JobStatusCompleted, result, time.Now())
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	return nil
}

// FailJob marks a job failed with a reason.
func (r *Repository) FailJob(ctx context.Context, jobID uuid.UUID, reason string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE analysis_jobs SET status = $2, failure_reason = $3, updated_at = $4 WHERE id = $1`,
		jobID, JobStatusFailed, reason, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}
	return nil
}
