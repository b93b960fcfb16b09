package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/domain/repository"
	"borica-qes/internal/infrastructure/document"
	"borica-qes/internal/infrastructure/notifier"
	"borica-qes/internal/infrastructure/redis"
)

// ErrMissingCallbackID is returned when a webhook payload carries no
// correlation token.
var ErrMissingCallbackID = errors.New("webhook payload missing callbackId")

type WebhookUsecase interface {
	// HandleSignCallback processes BORICA's POST to the configured
	// callbackURL: on completion it downloads and stores the signed
	// artifacts, updates the job record and notifies downstream.
	HandleSignCallback(ctx context.Context, cb *entity.SignCallback) error
}

type webhookUsecase struct {
	signRepo    repository.SignRepository
	jobRepo     repository.SignJobRepository
	docService  document.DocumentService
	notifier    *notifier.Client
	redisClient *redis.RedisClient
	logger      *zap.Logger
}

func NewWebhookUsecase(
	signRepo repository.SignRepository,
	jobRepo repository.SignJobRepository,
	docService document.DocumentService,
	notifierClient *notifier.Client,
	redisClient *redis.RedisClient,
	logger *zap.Logger,
) WebhookUsecase {
	return &webhookUsecase{
		signRepo:    signRepo,
		jobRepo:     jobRepo,
		docService:  docService,
		notifier:    notifierClient,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (u *webhookUsecase) HandleSignCallback(ctx context.Context, cb *entity.SignCallback) error {
	if cb.CallbackID == "" {
		return ErrMissingCallbackID
	}

	u.logger.Info("Received sign callback",
		zap.String("callback_id", cb.CallbackID),
		zap.String("code", cb.Code),
	)

	if !cb.Completed() {
		// Intermediate progress; nothing to act on yet
		u.logger.Debug("Callback not terminal, ignoring",
			zap.String("callback_id", cb.CallbackID),
		)
		return nil
	}

	mapping := u.loadMapping(ctx, cb.CallbackID)
	result := entity.ResultFromStatus(&cb.SignStatusResponse)

	refs := []string{}
	for i, sig := range result.Signatures {
		if sig.Signature == "" {
			continue
		}
		refs = append(refs, sig.Signature)
		u.storeArtifact(ctx, cb.CallbackID, sig.Signature, fileNameFor(mapping, i))
	}

	if u.jobRepo != nil {
		if err := u.jobRepo.UpdateStatus(ctx, cb.CallbackID, entity.JobStatusCompleted, result.Cert, strings.Join(refs, ",")); err != nil {
			u.logger.Warn("Failed to update sign job from callback",
				zap.String("callback_id", cb.CallbackID),
				zap.Error(err),
			)
		}
	}

	if u.notifier != nil {
		event := &notifier.JobEvent{
			CallbackID:  cb.CallbackID,
			Status:      entity.JobStatusCompleted,
			ContentRefs: strings.Join(refs, ","),
			OccurredAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if mapping != nil {
			event.RPCallbackID = mapping.RPCallbackID
		}
		if err := u.notifier.SendJobEvent(ctx, event); err != nil {
			u.logger.Warn("Failed to notify downstream",
				zap.String("callback_id", cb.CallbackID),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (u *webhookUsecase) loadMapping(ctx context.Context, callbackID string) *JobMapping {
	if u.redisClient == nil {
		return nil
	}
	cached, err := u.redisClient.Get(ctx, jobKeyPrefix+callbackID)
	if err != nil || cached == "" {
		return nil
	}
	var mapping JobMapping
	if err := json.Unmarshal([]byte(cached), &mapping); err != nil {
		return nil
	}
	return &mapping
}

func (u *webhookUsecase) storeArtifact(ctx context.Context, callbackID, contentRef, fileName string) {
	if u.docService == nil {
		return
	}
	data, err := u.signRepo.DownloadContent(ctx, contentRef)
	if err != nil {
		u.logger.Warn("Failed to download signed content from callback",
			zap.String("content_ref", contentRef),
			zap.Error(err),
		)
		return
	}
	if _, err := u.docService.SaveSigned(callbackID, fileName, data); err != nil {
		u.logger.Warn("Failed to store signed content",
			zap.String("content_ref", contentRef),
			zap.Error(err),
		)
	}
}

func fileNameFor(mapping *JobMapping, index int) string {
	if mapping == nil || index >= len(mapping.FileNames) {
		return ""
	}
	return mapping.FileNames[index]
}
