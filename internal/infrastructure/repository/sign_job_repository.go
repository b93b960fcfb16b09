package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/domain/repository"
	"borica-qes/internal/infrastructure/database"
)

// ErrJobNotFound is returned when no job exists for a callback id.
var ErrJobNotFound = errors.New("sign job not found")

type signJobRepository struct {
	db     *database.Database
	logger *zap.Logger
}

func NewSignJobRepository(db *database.Database, logger *zap.Logger) repository.SignJobRepository {
	return &signJobRepository{
		db:     db,
		logger: logger,
	}
}

func (r *signJobRepository) Create(ctx context.Context, job *entity.SignJob) error {
	query := `
		INSERT INTO sign_jobs (callback_id, rp_callback_id, status, content_count, validity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		job.CallbackID,
		job.RPCallbackID,
		job.Status,
		job.ContentCount,
		job.Validity,
	)

	if err != nil {
		r.logger.Error("Failed to create sign job",
			zap.String("callback_id", job.CallbackID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to create sign job: %w", err)
	}

	return nil
}

func (r *signJobRepository) UpdateStatus(ctx context.Context, callbackID, status, cert, contentRefs string) error {
	query := `
		UPDATE sign_jobs
		SET status = $2, cert = $3, content_refs = $4, updated_at = CURRENT_TIMESTAMP
		WHERE callback_id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, callbackID, status, cert, contentRefs)
	if err != nil {
		r.logger.Error("Failed to update sign job",
			zap.String("callback_id", callbackID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to update sign job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

func (r *signJobRepository) GetByCallbackID(ctx context.Context, callbackID string) (*entity.SignJob, error) {
	query := `
		SELECT id, callback_id, rp_callback_id, status, content_count, validity, cert, content_refs, created_at, updated_at
		FROM sign_jobs
		WHERE callback_id = $1
	`

	var job entity.SignJob
	err := r.db.DB.QueryRowContext(ctx, query, callbackID).Scan(
		&job.ID,
		&job.CallbackID,
		&job.RPCallbackID,
		&job.Status,
		&job.ContentCount,
		&job.Validity,
		&job.Cert,
		&job.ContentRefs,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sign job: %w", err)
	}

	return &job, nil
}

func (r *signJobRepository) List(ctx context.Context, limit, offset int) ([]entity.SignJob, error) {
	query := `
		SELECT id, callback_id, rp_callback_id, status, content_count, validity, cert, content_refs, created_at, updated_at
		FROM sign_jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sign jobs: %w", err)
	}
	defer rows.Close()

	jobs := []entity.SignJob{}
	for rows.Next() {
		var job entity.SignJob
		if err := rows.Scan(
			&job.ID,
			&job.CallbackID,
			&job.RPCallbackID,
			&job.Status,
			&job.ContentCount,
			&job.Validity,
			&job.Cert,
			&job.ContentRefs,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sign job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}
