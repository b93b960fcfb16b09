package repository

import (
	"context"

	"borica-qes/internal/domain/entity"
)

// CertificateRepository wraps BORICA's token exchange and certificate
// lookup endpoints.
type CertificateRepository interface {
	GetClientToken(ctx context.Context, req *entity.AuthRequest) (*entity.AuthResponse, error)
	GetCertificateByIdentity(ctx context.Context, idType entity.IdentifierType, identityValue string) (*entity.CertificateByIdentityResponse, error)
	GetCertificateByProfileID(ctx context.Context, profileID string) (*entity.CertificateByProfileResponse, error)
}
