package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/middlewares"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/app/services"
)

type MeterHandler struct {
	meterService   *services.MeterService
	authMiddleware *middlewares.AuthMiddleware
}

func NewMeterHandler(meterService *services.MeterService, authMiddleware *middlewares.AuthMiddleware) *MeterHandler {
	return &MeterHandler{
		meterService:   meterService,
		authMiddleware: authMiddleware,
	}
}

func (h *MeterHandler) RegisterRoutes(router fiber.Router) {
	creditGroup := router.Group("/credits", h.authMiddleware.AuthAccount)
	creditGroup.Get("/", h.CheckEligibility)
	creditGroup.Post("/consume", h.ConsumeCredit)

	usageGroup := router.Group("/usage", h.authMiddleware.AuthAccount)
	usageGroup.Post("/", h.TrackUsage)
	usageGroup.Get("/stats", h.GetUsageStats)
}

func (h *MeterHandler) CheckEligibility(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	status, err := h.meterService.CheckEligibility(account.ID.String())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, status)
}

func (h *MeterHandler) ConsumeCredit(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	status, err := h.meterService.ConsumeCredit(account.ID.String())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, status)
}

func (h *MeterHandler) TrackUsage(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	var req models.UsageTrackRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	record, err := h.meterService.TrackUsage(account.ID.String(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, record)
}

func (h *MeterHandler) GetUsageStats(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	stats, err := h.meterService.GetUsageStats(account.ID.String())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, stats)
}
