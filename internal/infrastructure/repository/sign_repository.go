package repository

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/domain/repository"
	"borica-qes/internal/infrastructure/httpclient"
)

type signRepository struct {
	client httpclient.HTTPClient
	logger *zap.Logger
}

func NewSignRepository(client httpclient.HTTPClient, logger *zap.Logger) repository.SignRepository {
	return &signRepository{
		client: client,
		logger: logger,
	}
}

func (r *signRepository) Submit(ctx context.Context, req *entity.SignRequest, cred entity.Credential) (*entity.SignAcceptedResponse, error) {
	authValue, err := cred.AuthorizationValue()
	if err != nil {
		return nil, err
	}

	var response entity.SignAcceptedResponse
	headers := map[string]string{entity.AuthorizationHeader: authValue}
	if err := r.client.PostWithHeaders(ctx, "/sign", headers, req, &response); err != nil {
		return nil, fmt.Errorf("failed to submit sign request: %w", err)
	}

	return &response, nil
}

func (r *signRepository) SubmitViaQr(ctx context.Context, req *entity.QrRequest) (*entity.QrAcceptedResponse, error) {
	var response entity.QrAcceptedResponse
	if err := r.client.Post(ctx, "/signviaqr", req, &response); err != nil {
		return nil, fmt.Errorf("failed to submit QR sign request: %w", err)
	}

	return &response, nil
}

func (r *signRepository) GetStatus(ctx context.Context, callbackID string) (*entity.SignStatusResponse, error) {
	var response entity.SignStatusResponse
	path := fmt.Sprintf("/sign/%s", url.PathEscape(callbackID))
	if err := r.client.Get(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("failed to get sign status: %w", err)
	}

	return &response, nil
}

func (r *signRepository) GetStatusByRPCallbackID(ctx context.Context, rpCallbackID string) (*entity.SignStatusResponse, error) {
	var response entity.SignStatusResponse
	path := fmt.Sprintf("/sign/rpcallbackid/%s", url.PathEscape(rpCallbackID))
	if err := r.client.Get(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("failed to get sign status by rp callback id: %w", err)
	}

	return &response, nil
}

func (r *signRepository) DownloadContent(ctx context.Context, contentID string) ([]byte, error) {
	path := fmt.Sprintf("/sign/content/%s", url.PathEscape(contentID))
	data, err := r.client.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download signed content: %w", err)
	}

	return data, nil
}
