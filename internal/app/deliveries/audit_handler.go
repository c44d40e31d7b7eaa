package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/middlewares"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/app/services"
)

type AuditHandler struct {
	auditService       *services.AuditService
	adminKeyMiddleware *middlewares.AdminKeyMiddleware
}

func NewAuditHandler(auditService *services.AuditService, adminKeyMiddleware *middlewares.AdminKeyMiddleware) *AuditHandler {
	return &AuditHandler{
		auditService:       auditService,
		adminKeyMiddleware: adminKeyMiddleware,
	}
}

func (h *AuditHandler) RegisterRoutes(router fiber.Router) {
	adminGroup := router.Group("/admin/audit", h.adminKeyMiddleware.RequireAdminKey)
	adminGroup.Get("/", h.ListAuditLogs)
}

func (h *AuditHandler) ListAuditLogs(c *fiber.Ctx) error {
	pagination := &models.PaginationRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}

	logs, err := h.auditService.GetAuditLogs(pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, logs)
}
