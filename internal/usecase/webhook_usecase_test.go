package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
)

func newTestWebhookUsecase(repo *fakeSignRepo, jobRepo *fakeJobRepo) WebhookUsecase {
	return NewWebhookUsecase(repo, jobRepo, nil, nil, nil, zap.NewNop())
}

func TestHandleSignCallbackRequiresCallbackID(t *testing.T) {
	u := newTestWebhookUsecase(&fakeSignRepo{}, &fakeJobRepo{})

	err := u.HandleSignCallback(context.Background(), &entity.SignCallback{})
	assert.ErrorIs(t, err, ErrMissingCallbackID)
}

func TestHandleSignCallbackIgnoresNonTerminal(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	u := newTestWebhookUsecase(&fakeSignRepo{}, jobRepo)

	cb := &entity.SignCallback{
		CallbackID:         "cb-1",
		SignStatusResponse: entity.SignStatusResponse{Code: "IN_PROGRESS"},
	}

	require.NoError(t, u.HandleSignCallback(context.Background(), cb))
	assert.Empty(t, jobRepo.lastStatus, "non-terminal callbacks must not touch the job")
}

func TestHandleSignCallbackCompletesJob(t *testing.T) {
	jobRepo := &fakeJobRepo{}
	u := newTestWebhookUsecase(&fakeSignRepo{}, jobRepo)

	cb := &entity.SignCallback{
		CallbackID:         "cb-1",
		SignStatusResponse: *completedStatus(),
	}

	require.NoError(t, u.HandleSignCallback(context.Background(), cb))

	assert.Equal(t, entity.JobStatusCompleted, jobRepo.lastStatus)
	assert.Equal(t, "content-1", jobRepo.lastRefs)
}
