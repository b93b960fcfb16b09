package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/infrastructure/httpclient"
	"borica-qes/internal/poll"
	"borica-qes/internal/usecase"
)

// SignSubmitRequest is the gateway's submission body: the BORICA request
// plus at most one identity method in loose form.
type SignSubmitRequest struct {
	entity.SignRequest
	PersonalID  string `json:"personal_id,omitempty"`
	ProfileID   string `json:"profile_id,omitempty"`
	OTP         string `json:"otp,omitempty"`
	ClientToken string `json:"client_token,omitempty"`
	CertID      string `json:"cert_id,omitempty"`
}

type SignHandler struct {
	usecase usecase.SignUsecase
	logger  *zap.Logger
}

func NewSignHandler(usecase usecase.SignUsecase, logger *zap.Logger) *SignHandler {
	return &SignHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// statusForSignError maps the error taxonomy onto gateway status codes:
// local validation 400, poll timeout 504, BORICA business errors 502,
// anything else 500.
func statusForSignError(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrNoCredential),
		errors.Is(err, entity.ErrAmbiguousCredential),
		errors.Is(err, entity.ErrNoContents),
		errors.Is(err, usecase.ErrNoPollIdentifier),
		errors.Is(err, usecase.ErrBothPollIdentifiers):
		return fiber.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, poll.ErrTimeout):
		return fiber.StatusGatewayTimeout, "POLL_TIMEOUT"
	}

	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) {
		return fiber.StatusBadGateway, apiErr.Code
	}
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return fiber.StatusBadGateway, "UPSTREAM_ERROR"
	}

	return fiber.StatusInternalServerError, "INTERNAL_ERROR"
}

func (h *SignHandler) signError(c *fiber.Ctx, err error) error {
	status, code := statusForSignError(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("Sign operation failed", zap.Error(err))
	}
	return c.Status(status).JSON(entity.NewErrorResponse(code, err.Error()))
}

// Submit godoc
// @Summary Submit a signing request
// @Description Submit contents for remote signing with exactly one identity method
// @Tags sign
// @Accept json
// @Produce json
// @Param request body SignSubmitRequest true "Sign request"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/sign [post]
func (h *SignHandler) Submit(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req SignSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	cred, err := entity.CredentialFromFields(req.PersonalID, req.ProfileID, req.OTP, req.ClientToken, req.CertID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", err.Error()),
		)
	}

	accepted, err := h.usecase.Submit(ctx, &req.SignRequest, cred)
	if err != nil {
		return h.signError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(accepted, "Sign request accepted"),
	)
}

// SubmitAndWait godoc
// @Summary Submit and wait for completion
// @Description Submit, poll until signed and store the signed artifact
// @Tags sign
// @Accept json
// @Produce json
// @Param request body SignSubmitRequest true "Sign request"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/sign/wait [post]
func (h *SignHandler) SubmitAndWait(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req SignSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	cred, err := entity.CredentialFromFields(req.PersonalID, req.ProfileID, req.OTP, req.ClientToken, req.CertID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", err.Error()),
		)
	}

	result, err := h.usecase.SignAndWait(ctx, &req.SignRequest, cred)
	if err != nil {
		return h.signError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(result, "Sign operation completed"))
}

// SubmitViaQr godoc
// @Summary Submit a QR-initiated signing request
// @Tags sign
// @Accept json
// @Produce json
// @Param request body entity.QrRequest true "QR sign request"
// @Success 201 {object} entity.APIResponse
// @Router /api/v1/sign/qr [post]
func (h *SignHandler) SubmitViaQr(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req entity.QrRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	accepted, err := h.usecase.SubmitViaQr(ctx, &req)
	if err != nil {
		return h.signError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(
		entity.NewSuccessResponse(accepted, "QR sign request accepted"),
	)
}

// GetStatus godoc
// @Summary Get signing status
// @Description Perform a single status probe by callback id
// @Tags sign
// @Produce json
// @Param callbackId path string true "Callback id"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/sign/status/{callbackId} [get]
func (h *SignHandler) GetStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	callbackID := c.Params("callbackId")
	status, err := h.usecase.GetStatus(ctx, callbackID)
	if err != nil {
		return h.signError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(status, "Status retrieved"))
}

// Poll godoc
// @Summary Poll until signed
// @Description Poll the status endpoint until completion or timeout
// @Tags sign
// @Produce json
// @Param callback_id query string false "Callback id"
// @Param rp_callback_id query string false "Relying party callback id"
// @Param interval query int false "Poll interval in seconds"
// @Param timeout query int false "Poll timeout in seconds"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 504 {object} entity.APIResponse
// @Router /api/v1/sign/poll [get]
func (h *SignHandler) Poll(c *fiber.Ctx) error {
	ctx := c.UserContext()

	opts := usecase.PollOptions{
		CallbackID:   c.Query("callback_id"),
		RPCallbackID: c.Query("rp_callback_id"),
	}
	if v, err := strconv.Atoi(c.Query("interval", "0")); err == nil && v > 0 {
		opts.Interval = time.Duration(v) * time.Second
	}
	if v, err := strconv.Atoi(c.Query("timeout", "0")); err == nil && v > 0 {
		opts.Timeout = time.Duration(v) * time.Second
	}

	result, err := h.usecase.PollUntilSigned(ctx, opts)
	if err != nil {
		return h.signError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(result, "Sign operation completed"))
}

// DownloadContent godoc
// @Summary Download signed content
// @Description Download the signed artifact by content reference
// @Tags sign
// @Produce octet-stream
// @Param contentId path string true "Content reference"
// @Success 200 {file} binary
// @Router /api/v1/sign/content/{contentId} [get]
func (h *SignHandler) DownloadContent(c *fiber.Ctx) error {
	ctx := c.UserContext()

	contentID := c.Params("contentId")
	data, err := h.usecase.DownloadContent(ctx, contentID)
	if err != nil {
		return h.signError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}
