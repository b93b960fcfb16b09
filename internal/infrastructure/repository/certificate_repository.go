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

type certificateRepository struct {
	client httpclient.HTTPClient
	logger *zap.Logger
}

func NewCertificateRepository(client httpclient.HTTPClient, logger *zap.Logger) repository.CertificateRepository {
	return &certificateRepository{
		client: client,
		logger: logger,
	}
}

func (r *certificateRepository) GetClientToken(ctx context.Context, req *entity.AuthRequest) (*entity.AuthResponse, error) {
	var response entity.AuthResponse
	if err := r.client.Post(ctx, "/auth", req, &response); err != nil {
		return nil, fmt.Errorf("failed to get client token: %w", err)
	}

	return &response, nil
}

func (r *certificateRepository) GetCertificateByIdentity(ctx context.Context, idType entity.IdentifierType, identityValue string) (*entity.CertificateByIdentityResponse, error) {
	var response entity.CertificateByIdentityResponse
	path := fmt.Sprintf("/cert/identity/%s/%s", url.PathEscape(string(idType)), url.PathEscape(identityValue))
	if err := r.client.Get(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("failed to get certificate by identity: %w", err)
	}

	return &response, nil
}

func (r *certificateRepository) GetCertificateByProfileID(ctx context.Context, profileID string) (*entity.CertificateByProfileResponse, error) {
	var response entity.CertificateByProfileResponse
	path := fmt.Sprintf("/cert/%s", url.PathEscape(profileID))
	if err := r.client.Get(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("failed to get certificate by profile id: %w", err)
	}

	return &response, nil
}
