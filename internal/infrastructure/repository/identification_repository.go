package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/domain/repository"
	"borica-qes/internal/infrastructure/httpclient"
)

type identificationRepository struct {
	client httpclient.HTTPClient
	logger *zap.Logger
}

func NewIdentificationRepository(client httpclient.HTTPClient, logger *zap.Logger) repository.IdentificationRepository {
	return &identificationRepository{
		client: client,
		logger: logger,
	}
}

func (r *identificationRepository) StartWebSession(ctx context.Context, req *entity.WebSessionRequest) (*entity.WebSessionResponse, error) {
	var response entity.WebSessionResponse
	if err := r.client.Post(ctx, "/identification/web/websession/start", req, &response); err != nil {
		return nil, fmt.Errorf("failed to start web session: %w", err)
	}

	return &response, nil
}

func (r *identificationRepository) CreateRegistration(ctx context.Context, webSessionID string, req *entity.RegistrationRequest) (*entity.RegistrationResponse, error) {
	req.ApplyDefaults()

	var response entity.RegistrationResponse
	path := fmt.Sprintf("/identification/web/sessions/by-otc-request/%s", url.PathEscape(webSessionID))
	if err := r.client.Post(ctx, path, req, &response); err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return &response, nil
}

func (r *identificationRepository) GetWebResult(ctx context.Context, query *entity.WebResultQuery) (json.RawMessage, error) {
	path := fmt.Sprintf("/identification/web/%s/result/%s/%s",
		url.PathEscape(query.ResultID),
		url.PathEscape(query.ProcessState),
		url.PathEscape(query.SessionID),
	)
	if query.OnlyMetadata != nil {
		path += "/" + strconv.FormatBool(*query.OnlyMetadata)
	}

	var response json.RawMessage
	if err := r.client.Get(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("failed to get web result: %w", err)
	}

	return response, nil
}

func (r *identificationRepository) StartOTCSignSession(ctx context.Context, req *entity.OTCSignRequest) (*entity.OTCSignResponse, error) {
	var response entity.OTCSignResponse
	if err := r.client.Post(ctx, "/identification/web/signsession/start", req, &response); err != nil {
		return nil, fmt.Errorf("failed to start OTC sign session: %w", err)
	}

	return &response, nil
}
