package repository

import (
	"context"

	"borica-qes/internal/domain/entity"
)

// SignRepository wraps BORICA's signing endpoints. Submit attaches the
// credential's rpToClientAuthorization header; the QR flow authenticates
// out-of-band and carries no credential.
type SignRepository interface {
	Submit(ctx context.Context, req *entity.SignRequest, cred entity.Credential) (*entity.SignAcceptedResponse, error)
	SubmitViaQr(ctx context.Context, req *entity.QrRequest) (*entity.QrAcceptedResponse, error)
	GetStatus(ctx context.Context, callbackID string) (*entity.SignStatusResponse, error)
	GetStatusByRPCallbackID(ctx context.Context, rpCallbackID string) (*entity.SignStatusResponse, error)
	// DownloadContent fetches the signed artifact by content reference.
	// Content persists server-side 7 days, or 10 years for archived items.
	DownloadContent(ctx context.Context, contentID string) ([]byte, error)
}
