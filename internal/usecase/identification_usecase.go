package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/domain/repository"
)

// IdentificationUsecase exposes the remote identification endpoints.
// These are single request/response operations; the session state lives on
// the BORICA side.
type IdentificationUsecase interface {
	StartWebSession(ctx context.Context, req *entity.WebSessionRequest) (*entity.WebSessionResponse, error)
	CreateRegistration(ctx context.Context, webSessionID string, req *entity.RegistrationRequest) (*entity.RegistrationResponse, error)
	GetWebResult(ctx context.Context, query *entity.WebResultQuery) (json.RawMessage, error)
	StartOTCSignSession(ctx context.Context, req *entity.OTCSignRequest) (*entity.OTCSignResponse, error)
}

type identificationUsecase struct {
	repo   repository.IdentificationRepository
	logger *zap.Logger
}

func NewIdentificationUsecase(repo repository.IdentificationRepository, logger *zap.Logger) IdentificationUsecase {
	return &identificationUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *identificationUsecase) StartWebSession(ctx context.Context, req *entity.WebSessionRequest) (*entity.WebSessionResponse, error) {
	u.logger.Info("Starting web identification session",
		zap.String("reason", req.IdentificationReason),
	)

	resp, err := u.repo.StartWebSession(ctx, req)
	if err != nil {
		u.logger.Error("Failed to start web session", zap.Error(err))
		return nil, err
	}

	return resp, nil
}

func (u *identificationUsecase) CreateRegistration(ctx context.Context, webSessionID string, req *entity.RegistrationRequest) (*entity.RegistrationResponse, error) {
	u.logger.Info("Creating registration session",
		zap.String("web_session_id", webSessionID),
	)

	resp, err := u.repo.CreateRegistration(ctx, webSessionID, req)
	if err != nil {
		u.logger.Error("Failed to create registration", zap.Error(err))
		return nil, err
	}

	return resp, nil
}

func (u *identificationUsecase) GetWebResult(ctx context.Context, query *entity.WebResultQuery) (json.RawMessage, error) {
	u.logger.Info("Fetching identification result",
		zap.String("result_id", query.ResultID),
		zap.String("process_state", query.ProcessState),
	)

	resp, err := u.repo.GetWebResult(ctx, query)
	if err != nil {
		u.logger.Error("Failed to get web result", zap.Error(err))
		return nil, err
	}

	return resp, nil
}

func (u *identificationUsecase) StartOTCSignSession(ctx context.Context, req *entity.OTCSignRequest) (*entity.OTCSignResponse, error) {
	u.logger.Info("Starting OTC sign session",
		zap.String("sign_session_id", req.SignSessionID),
		zap.Int("document_count", len(req.DocumentsForSign)),
	)

	resp, err := u.repo.StartOTCSignSession(ctx, req)
	if err != nil {
		u.logger.Error("Failed to start OTC sign session", zap.Error(err))
		return nil, err
	}

	return resp, nil
}
