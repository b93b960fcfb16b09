package repository

import (
	"context"
	"encoding/json"

	"borica-qes/internal/domain/entity"
)

// IdentificationRepository wraps BORICA's remote identification endpoints.
// Results with open-ended schemas are returned as raw JSON.
type IdentificationRepository interface {
	StartWebSession(ctx context.Context, req *entity.WebSessionRequest) (*entity.WebSessionResponse, error)
	CreateRegistration(ctx context.Context, webSessionID string, req *entity.RegistrationRequest) (*entity.RegistrationResponse, error)
	GetWebResult(ctx context.Context, query *entity.WebResultQuery) (json.RawMessage, error)
	StartOTCSignSession(ctx context.Context, req *entity.OTCSignRequest) (*entity.OTCSignResponse, error)
}
