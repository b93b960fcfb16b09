package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	domainrepo "borica-qes/internal/domain/repository"
	infrarepo "borica-qes/internal/infrastructure/repository"
)

type JobHandler struct {
	jobRepo domainrepo.SignJobRepository
	logRepo infrarepo.APILogRepository
	logger  *zap.Logger
}

func NewJobHandler(jobRepo domainrepo.SignJobRepository, logRepo infrarepo.APILogRepository, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobRepo: jobRepo,
		logRepo: logRepo,
		logger:  logger,
	}
}

func paging(c *fiber.Ctx) (limit, offset int) {
	limit = 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// ListJobs godoc
// @Summary List tracked signing jobs
// @Tags jobs
// @Produce json
// @Param limit query int false "Max rows (default 50)"
// @Param offset query int false "Row offset"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/jobs [get]
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	ctx := c.UserContext()
	limit, offset := paging(c)

	jobs, err := h.jobRepo.List(ctx, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list sign jobs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Failed to list jobs"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(jobs, "Jobs retrieved"))
}

// GetJob godoc
// @Summary Get a signing job by callback id
// @Tags jobs
// @Produce json
// @Param callbackId path string true "Callback id"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/jobs/{callbackId} [get]
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	ctx := c.UserContext()

	job, err := h.jobRepo.GetByCallbackID(ctx, c.Params("callbackId"))
	if err != nil {
		if errors.Is(err, infrarepo.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(
				entity.NewErrorResponse("NOT_FOUND", "Job not found"),
			)
		}
		h.logger.Error("Failed to get sign job", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Failed to get job"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(job, "Job retrieved"))
}

// ListAPILogs godoc
// @Summary List upstream API call logs
// @Tags logs
// @Produce json
// @Param limit query int false "Max rows (default 50)"
// @Param offset query int false "Row offset"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/logs [get]
func (h *JobHandler) ListAPILogs(c *fiber.Ctx) error {
	ctx := c.UserContext()
	limit, offset := paging(c)

	logs, err := h.logRepo.List(ctx, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list API logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Failed to list API logs"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(logs, "Logs retrieved"))
}
