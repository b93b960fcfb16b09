package repository

import (
	"context"

	"borica-qes/internal/domain/entity"
)

// SignJobRepository persists accepted signing submissions and their
// terminal state.
type SignJobRepository interface {
	Create(ctx context.Context, job *entity.SignJob) error
	UpdateStatus(ctx context.Context, callbackID, status, cert, contentRefs string) error
	GetByCallbackID(ctx context.Context, callbackID string) (*entity.SignJob, error)
	List(ctx context.Context, limit, offset int) ([]entity.SignJob, error)
}
