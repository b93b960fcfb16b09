package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/usecase"
)

type WebhookHandler struct {
	usecase usecase.WebhookUsecase
	logger  *zap.Logger
}

func NewWebhookHandler(usecase usecase.WebhookUsecase, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// HandleSignCallback godoc
// @Summary Receive a signing status callback from BORICA
// @Tags webhook
// @Accept json
// @Produce json
// @Param request body entity.SignCallback true "Callback payload"
// @Success 200 {object} entity.APIResponse
// @Router /webhook/borica [post]
func (h *WebhookHandler) HandleSignCallback(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var callback entity.SignCallback
	if err := c.BodyParser(&callback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid callback body"),
		)
	}

	if err := h.usecase.HandleSignCallback(ctx, &callback); err != nil {
		if errors.Is(err, usecase.ErrMissingCallbackID) {
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", err.Error()),
			)
		}
		h.logger.Error("Failed to process sign callback",
			zap.String("callback_id", callback.CallbackID),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Failed to process callback"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(nil, "Callback processed"))
}
