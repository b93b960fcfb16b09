package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/domain/repository"
	"borica-qes/internal/infrastructure/redis"
)

const (
	// Redis key prefix for cached client tokens
	tokenKeyPrefix = "borica:client_token:"
	tokenTTL       = 30 * time.Minute
)

type CertificateUsecase interface {
	// GetClientToken exchanges a profile id and OTP for a client token and
	// caches the token for later signing requests.
	GetClientToken(ctx context.Context, req *entity.AuthRequest) (*entity.AuthResponse, error)
	// CachedClientToken returns a previously exchanged token for the
	// profile, or empty when none is cached.
	CachedClientToken(ctx context.Context, profileID string) string
	GetCertificateByIdentity(ctx context.Context, idType entity.IdentifierType, identityValue string) (*entity.CertificateByIdentityResponse, error)
	GetCertificateByProfileID(ctx context.Context, profileID string) (*entity.CertificateByProfileResponse, error)
}

type certificateUsecase struct {
	repo        repository.CertificateRepository
	redisClient *redis.RedisClient
	logger      *zap.Logger
}

func NewCertificateUsecase(repo repository.CertificateRepository, redisClient *redis.RedisClient, logger *zap.Logger) CertificateUsecase {
	return &certificateUsecase{
		repo:        repo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (u *certificateUsecase) GetClientToken(ctx context.Context, req *entity.AuthRequest) (*entity.AuthResponse, error) {
	u.logger.Info("Exchanging OTP for client token",
		zap.String("profile_id", req.ProfileID),
	)

	resp, err := u.repo.GetClientToken(ctx, req)
	if err != nil {
		u.logger.Error("Failed to get client token", zap.Error(err))
		return nil, err
	}

	if u.redisClient != nil && resp.Data.ClientToken != "" {
		key := tokenKeyPrefix + req.ProfileID
		if err := u.redisClient.Set(ctx, key, resp.Data.ClientToken, tokenTTL); err != nil {
			u.logger.Warn("Failed to cache client token", zap.Error(err))
		}
	}

	return resp, nil
}

func (u *certificateUsecase) CachedClientToken(ctx context.Context, profileID string) string {
	if u.redisClient == nil {
		return ""
	}
	token, err := u.redisClient.Get(ctx, tokenKeyPrefix+profileID)
	if err != nil {
		return ""
	}
	return token
}

func (u *certificateUsecase) GetCertificateByIdentity(ctx context.Context, idType entity.IdentifierType, identityValue string) (*entity.CertificateByIdentityResponse, error) {
	u.logger.Info("Looking up certificate by identity",
		zap.String("id_type", string(idType)),
	)

	resp, err := u.repo.GetCertificateByIdentity(ctx, idType, identityValue)
	if err != nil {
		u.logger.Error("Failed to get certificate by identity", zap.Error(err))
		return nil, err
	}

	return resp, nil
}

func (u *certificateUsecase) GetCertificateByProfileID(ctx context.Context, profileID string) (*entity.CertificateByProfileResponse, error) {
	u.logger.Info("Looking up certificate by profile id",
		zap.String("profile_id", profileID),
	)

	resp, err := u.repo.GetCertificateByProfileID(ctx, profileID)
	if err != nil {
		u.logger.Error("Failed to get certificate by profile id", zap.Error(err))
		return nil, err
	}

	return resp, nil
}
