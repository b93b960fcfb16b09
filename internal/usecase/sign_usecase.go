package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"borica-qes/internal/config"
	"borica-qes/internal/domain/entity"
	"borica-qes/internal/domain/repository"
	"borica-qes/internal/infrastructure/document"
	"borica-qes/internal/infrastructure/redis"
	"borica-qes/internal/poll"
)

const (
	// Redis key prefix for job tracking
	jobKeyPrefix = "borica:job:"
	jobKeyTTL    = 24 * time.Hour
)

// Poll identifier validation. Exactly one of the two identifiers must be
// supplied; supplying both is rejected rather than silently preferring one.
var (
	ErrNoPollIdentifier    = errors.New("provide callback_id or rp_callback_id")
	ErrBothPollIdentifiers = errors.New("provide only one of callback_id and rp_callback_id")
)

// JobMapping stores job info in redis for webhook processing
type JobMapping struct {
	RPCallbackID string   `json:"rp_callback_id"`
	FileNames    []string `json:"file_names"`
}

// PollOptions addresses one poll-until-signed run. Zero Interval/Timeout
// fall back to the configured defaults.
type PollOptions struct {
	CallbackID   string
	RPCallbackID string
	Interval     time.Duration
	Timeout      time.Duration
}

// SignAndWaitResult is the outcome of the submit-poll-download convenience
// operation.
type SignAndWaitResult struct {
	CallbackID string             `json:"callback_id"`
	Result     *entity.SignResult `json:"result"`
	FilePath   string             `json:"file_path,omitempty"`
	Size       int                `json:"size"`
}

type SignUsecase interface {
	// Submit sends a signing request with exactly one identity assertion and
	// returns the acceptance carrying the correlation token.
	Submit(ctx context.Context, req *entity.SignRequest, cred entity.Credential) (*entity.SignAcceptedResponse, error)
	// SubmitViaQr initiates the QR flow; no credential is needed at this step.
	SubmitViaQr(ctx context.Context, req *entity.QrRequest) (*entity.QrAcceptedResponse, error)
	// PollUntilSigned polls the status endpoint until the envelope's short
	// code equals COMPLETED or the timeout elapses.
	PollUntilSigned(ctx context.Context, opts PollOptions) (*entity.SignResult, error)
	// GetStatus performs a single status probe without polling.
	GetStatus(ctx context.Context, callbackID string) (*entity.SignStatusResponse, error)
	// DownloadContent fetches a signed artifact by content reference.
	DownloadContent(ctx context.Context, contentID string) ([]byte, error)
	// SignAndWait runs submit, poll and download of the first signature as
	// one operation and stores the artifact on disk.
	SignAndWait(ctx context.Context, req *entity.SignRequest, cred entity.Credential) (*SignAndWaitResult, error)
}

type signUsecase struct {
	config      *config.Config
	repo        repository.SignRepository
	jobRepo     repository.SignJobRepository
	docService  document.DocumentService
	redisClient *redis.RedisClient
	logger      *zap.Logger
}

func NewSignUsecase(
	cfg *config.Config,
	repo repository.SignRepository,
	jobRepo repository.SignJobRepository,
	docService document.DocumentService,
	redisClient *redis.RedisClient,
	logger *zap.Logger,
) SignUsecase {
	return &signUsecase{
		config:      cfg,
		repo:        repo,
		jobRepo:     jobRepo,
		docService:  docService,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (u *signUsecase) Submit(ctx context.Context, req *entity.SignRequest, cred entity.Credential) (*entity.SignAcceptedResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if cred.IsZero() {
		return nil, entity.ErrNoCredential
	}

	// Generate our own correlation id when the caller supplies none, so the
	// rp-callback-id status endpoint is always usable.
	if req.RelyingPartyCallbackID == "" {
		req.RelyingPartyCallbackID = uuid.NewString()
	}

	u.logger.Info("Submitting sign request",
		zap.Int("content_count", len(req.Contents)),
		zap.String("rp_callback_id", req.RelyingPartyCallbackID),
		zap.String("payer", string(req.Payer)),
	)

	accepted, err := u.repo.Submit(ctx, req, cred)
	if err != nil {
		u.logger.Error("Failed to submit sign request", zap.Error(err))
		return nil, err
	}

	u.logger.Info("Sign request accepted",
		zap.String("callback_id", accepted.Data.CallbackID),
		zap.String("validity", accepted.Data.Validity),
	)

	u.trackJob(ctx, accepted.Data.CallbackID, req)

	return accepted, nil
}

// trackJob persists the accepted submission and caches the mapping consumed
// by the webhook handler. Tracking failures are logged, not surfaced: the
// submission already succeeded remotely.
func (u *signUsecase) trackJob(ctx context.Context, callbackID string, req *entity.SignRequest) {
	if u.jobRepo != nil {
		job := &entity.SignJob{
			CallbackID:   callbackID,
			RPCallbackID: req.RelyingPartyCallbackID,
			Status:       entity.JobStatusSubmitted,
			ContentCount: len(req.Contents),
		}
		if err := u.jobRepo.Create(ctx, job); err != nil {
			u.logger.Warn("Failed to persist sign job", zap.Error(err))
		}
	}

	if u.redisClient != nil {
		fileNames := make([]string, len(req.Contents))
		for i, c := range req.Contents {
			fileNames[i] = c.FileName
		}
		mapping := JobMapping{
			RPCallbackID: req.RelyingPartyCallbackID,
			FileNames:    fileNames,
		}
		data, err := json.Marshal(mapping)
		if err == nil {
			err = u.redisClient.Set(ctx, jobKeyPrefix+callbackID, string(data), jobKeyTTL)
		}
		if err != nil {
			u.logger.Warn("Failed to cache job mapping", zap.Error(err))
		}
	}
}

func (u *signUsecase) SubmitViaQr(ctx context.Context, req *entity.QrRequest) (*entity.QrAcceptedResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u.logger.Info("Submitting QR sign request",
		zap.String("file_name", req.Request.Content.FileName),
	)

	accepted, err := u.repo.SubmitViaQr(ctx, req)
	if err != nil {
		u.logger.Error("Failed to submit QR sign request", zap.Error(err))
		return nil, err
	}

	u.logger.Info("QR sign request accepted",
		zap.String("callback_id", accepted.Data.CallbackID),
	)

	return accepted, nil
}

func (u *signUsecase) GetStatus(ctx context.Context, callbackID string) (*entity.SignStatusResponse, error) {
	return u.repo.GetStatus(ctx, callbackID)
}

func (u *signUsecase) PollUntilSigned(ctx context.Context, opts PollOptions) (*entity.SignResult, error) {
	if opts.CallbackID == "" && opts.RPCallbackID == "" {
		return nil, ErrNoPollIdentifier
	}
	if opts.CallbackID != "" && opts.RPCallbackID != "" {
		return nil, ErrBothPollIdentifiers
	}

	interval := opts.Interval
	if interval == 0 {
		interval = u.config.Borica.Poll.Interval
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = u.config.Borica.Poll.Timeout
	}

	u.logger.Info("Polling for sign completion",
		zap.String("callback_id", opts.CallbackID),
		zap.String("rp_callback_id", opts.RPCallbackID),
		zap.Duration("interval", interval),
		zap.Duration("timeout", timeout),
	)

	probe := func(ctx context.Context) (*entity.SignStatusResponse, bool, error) {
		var status *entity.SignStatusResponse
		var err error
		if opts.CallbackID != "" {
			status, err = u.repo.GetStatus(ctx, opts.CallbackID)
		} else {
			status, err = u.repo.GetStatusByRPCallbackID(ctx, opts.RPCallbackID)
		}
		if err != nil {
			return nil, false, err
		}
		return status, status.Completed(), nil
	}

	status, err := poll.Until(ctx, probe, interval, timeout)
	if err != nil {
		if errors.Is(err, poll.ErrTimeout) {
			u.logger.Warn("Polling timed out",
				zap.String("callback_id", opts.CallbackID),
				zap.String("rp_callback_id", opts.RPCallbackID),
			)
			u.markJob(ctx, opts.CallbackID, entity.JobStatusTimedOut, "", nil)
		}
		return nil, err
	}

	result := entity.ResultFromStatus(status)
	result.CallbackID = opts.CallbackID

	refs := signatureRefs(result.Signatures)
	u.markJob(ctx, opts.CallbackID, entity.JobStatusCompleted, result.Cert, refs)

	u.logger.Info("Sign operation completed",
		zap.String("callback_id", opts.CallbackID),
		zap.Int("signature_count", len(result.Signatures)),
	)

	return result, nil
}

// markJob records a terminal state; best effort, and a no-op when the poll
// was addressed by rp callback id only.
func (u *signUsecase) markJob(ctx context.Context, callbackID, status, cert string, refs []string) {
	if u.jobRepo == nil || callbackID == "" {
		return
	}
	if err := u.jobRepo.UpdateStatus(ctx, callbackID, status, cert, strings.Join(refs, ",")); err != nil {
		u.logger.Warn("Failed to update sign job",
			zap.String("callback_id", callbackID),
			zap.Error(err),
		)
	}
}

func signatureRefs(signatures []entity.SignatureItem) []string {
	refs := make([]string, 0, len(signatures))
	for _, s := range signatures {
		if s.Signature != "" {
			refs = append(refs, s.Signature)
		}
	}
	return refs
}

func (u *signUsecase) DownloadContent(ctx context.Context, contentID string) ([]byte, error) {
	u.logger.Info("Downloading signed content", zap.String("content_id", contentID))

	data, err := u.repo.DownloadContent(ctx, contentID)
	if err != nil {
		u.logger.Error("Failed to download signed content",
			zap.String("content_id", contentID),
			zap.Error(err),
		)
		return nil, err
	}

	return data, nil
}

func (u *signUsecase) SignAndWait(ctx context.Context, req *entity.SignRequest, cred entity.Credential) (*SignAndWaitResult, error) {
	accepted, err := u.Submit(ctx, req, cred)
	if err != nil {
		return nil, err
	}

	result, err := u.PollUntilSigned(ctx, PollOptions{CallbackID: accepted.Data.CallbackID})
	if err != nil {
		return nil, err
	}

	out := &SignAndWaitResult{
		CallbackID: accepted.Data.CallbackID,
		Result:     result,
	}

	refs := signatureRefs(result.Signatures)
	if len(refs) == 0 {
		return out, nil
	}

	data, err := u.DownloadContent(ctx, refs[0])
	if err != nil {
		return nil, err
	}
	out.Size = len(data)

	if u.docService != nil {
		fileName := ""
		if len(req.Contents) > 0 {
			fileName = req.Contents[0].FileName
		}
		path, err := u.docService.SaveSigned(accepted.Data.CallbackID, fileName, data)
		if err != nil {
			u.logger.Warn("Failed to store signed content", zap.Error(err))
		} else {
			out.FilePath = path
		}
	}

	return out, nil
}
