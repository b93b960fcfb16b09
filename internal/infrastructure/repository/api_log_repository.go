package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/infrastructure/database"
)

// APILogRepository persists and lists outbound API call logs.
type APILogRepository interface {
	Save(ctx context.Context, log *entity.APILog) error
	List(ctx context.Context, limit, offset int) ([]entity.APILog, error)
}

type apiLogRepository struct {
	db     *database.Database
	logger *zap.Logger
}

// NewAPILogRepository creates a new API log repository
func NewAPILogRepository(db *database.Database, logger *zap.Logger) APILogRepository {
	return &apiLogRepository{
		db:     db,
		logger: logger,
	}
}

// Save saves an API log entry to the database
func (r *apiLogRepository) Save(ctx context.Context, log *entity.APILog) error {
	query := `
		INSERT INTO api_logs (endpoint, method, request_body, response_body, status_code, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		log.Endpoint,
		log.Method,
		log.RequestBody,
		log.ResponseBody,
		log.StatusCode,
		log.Duration,
		log.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save API log",
			zap.String("endpoint", log.Endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save API log: %w", err)
	}

	return nil
}

func (r *apiLogRepository) List(ctx context.Context, limit, offset int) ([]entity.APILog, error) {
	query := `
		SELECT id, endpoint, method, request_body, response_body, status_code, duration_ms, created_at
		FROM api_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list API logs: %w", err)
	}
	defer rows.Close()

	logs := []entity.APILog{}
	for rows.Next() {
		var log entity.APILog
		if err := rows.Scan(
			&log.ID,
			&log.Endpoint,
			&log.Method,
			&log.RequestBody,
			&log.ResponseBody,
			&log.StatusCode,
			&log.Duration,
			&log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan API log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
