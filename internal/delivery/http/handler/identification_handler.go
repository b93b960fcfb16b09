package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/usecase"
)

type IdentificationHandler struct {
	usecase usecase.IdentificationUsecase
	logger  *zap.Logger
}

func NewIdentificationHandler(usecase usecase.IdentificationUsecase, logger *zap.Logger) *IdentificationHandler {
	return &IdentificationHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// StartWebSession godoc
// @Summary Start a web identification session
// @Tags identification
// @Accept json
// @Produce json
// @Param request body entity.WebSessionRequest true "Web session request"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/identification/websession [post]
func (h *IdentificationHandler) StartWebSession(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req entity.WebSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	resp, err := h.usecase.StartWebSession(ctx, &req)
	if err != nil {
		h.logger.Error("Failed to start web session", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse("UPSTREAM_ERROR", err.Error()),
		)
	}

	return c.JSON(entity.NewSuccessResponse(resp, "Web session started"))
}

// CreateRegistration godoc
// @Summary Create a registration session for an OTC identification
// @Tags identification
// @Accept json
// @Produce json
// @Param webSessionId path string true "Web session id"
// @Param request body entity.RegistrationRequest true "Registration request"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/identification/registration/{webSessionId} [post]
func (h *IdentificationHandler) CreateRegistration(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req entity.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	resp, err := h.usecase.CreateRegistration(ctx, c.Params("webSessionId"), &req)
	if err != nil {
		h.logger.Error("Failed to create registration", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse("UPSTREAM_ERROR", err.Error()),
		)
	}

	return c.JSON(entity.NewSuccessResponse(resp, "Registration created"))
}

// GetWebResult godoc
// @Summary Fetch the result of an identification or signing session
// @Tags identification
// @Produce json
// @Param resultId path string true "Result id"
// @Param state path string true "Process state"
// @Param sessionId path string true "Session id"
// @Param only_metadata query bool false "Return only metadata"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/identification/result/{resultId}/{state}/{sessionId} [get]
func (h *IdentificationHandler) GetWebResult(c *fiber.Ctx) error {
	ctx := c.UserContext()

	query := &entity.WebResultQuery{
		ResultID:     c.Params("resultId"),
		ProcessState: c.Params("state"),
		SessionID:    c.Params("sessionId"),
	}
	if raw := c.Query("only_metadata"); raw != "" {
		onlyMetadata := raw == "true"
		query.OnlyMetadata = &onlyMetadata
	}

	resp, err := h.usecase.GetWebResult(ctx, query)
	if err != nil {
		h.logger.Error("Failed to get web result", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse("UPSTREAM_ERROR", err.Error()),
		)
	}

	return c.JSON(entity.NewSuccessResponse(resp, "Result retrieved"))
}

// StartOTCSignSession godoc
// @Summary Begin an OTC signing session for an identified client
// @Tags identification
// @Accept json
// @Produce json
// @Param request body entity.OTCSignRequest true "OTC sign request"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/identification/signsession [post]
func (h *IdentificationHandler) StartOTCSignSession(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req entity.OTCSignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	resp, err := h.usecase.StartOTCSignSession(ctx, &req)
	if err != nil {
		h.logger.Error("Failed to start OTC sign session", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse("UPSTREAM_ERROR", err.Error()),
		)
	}

	return c.JSON(entity.NewSuccessResponse(resp, "OTC sign session started"))
}
