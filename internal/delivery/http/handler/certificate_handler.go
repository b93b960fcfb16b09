package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/infrastructure/httpclient"
	"borica-qes/internal/usecase"
)

type CertificateHandler struct {
	usecase usecase.CertificateUsecase
	logger  *zap.Logger
}

func NewCertificateHandler(usecase usecase.CertificateUsecase, logger *zap.Logger) *CertificateHandler {
	return &CertificateHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *CertificateHandler) upstreamError(c *fiber.Ctx, err error) error {
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) {
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse(apiErr.Code, apiErr.Message),
		)
	}
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse("UPSTREAM_ERROR", err.Error()),
		)
	}
	h.logger.Error("Certificate operation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(
		entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
	)
}

// GetClientToken godoc
// @Summary Exchange profile id and OTP for a client token
// @Tags certificates
// @Accept json
// @Produce json
// @Param request body entity.AuthRequest true "Auth request"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/cert/auth [post]
func (h *CertificateHandler) GetClientToken(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req entity.AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}
	if req.ProfileID == "" || req.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "profileId and otp are required"),
		)
	}

	resp, err := h.usecase.GetClientToken(ctx, &req)
	if err != nil {
		return h.upstreamError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(resp, "Client token retrieved"))
}

// GetCertificateByIdentity godoc
// @Summary Look up a certificate by identity
// @Tags certificates
// @Produce json
// @Param idType path string true "Identifier type (EGN, LNC, EMAIL, PHONE)"
// @Param value path string true "Identity value"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/cert/identity/{idType}/{value} [get]
func (h *CertificateHandler) GetCertificateByIdentity(c *fiber.Ctx) error {
	ctx := c.UserContext()

	idType := entity.IdentifierType(c.Params("idType"))
	switch idType {
	case entity.IdentifierTypeEGN, entity.IdentifierTypeLNC, entity.IdentifierTypeEmail, entity.IdentifierTypePhone:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Unknown identifier type"),
		)
	}

	resp, err := h.usecase.GetCertificateByIdentity(ctx, idType, c.Params("value"))
	if err != nil {
		return h.upstreamError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(resp, "Certificate retrieved"))
}

// GetCertificateByProfileID godoc
// @Summary Look up a certificate by profile id
// @Tags certificates
// @Produce json
// @Param profileId path string true "Profile id"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/cert/{profileId} [get]
func (h *CertificateHandler) GetCertificateByProfileID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	resp, err := h.usecase.GetCertificateByProfileID(ctx, c.Params("profileId"))
	if err != nil {
		return h.upstreamError(c, err)
	}

	return c.JSON(entity.NewSuccessResponse(resp, "Certificate retrieved"))
}
