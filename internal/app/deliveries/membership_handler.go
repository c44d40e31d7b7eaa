package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/middlewares"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/app/services"
)

type MembershipHandler struct {
	membershipService  *services.MembershipService
	authMiddleware     *middlewares.AuthMiddleware
	adminKeyMiddleware *middlewares.AdminKeyMiddleware
}

func NewMembershipHandler(membershipService *services.MembershipService, authMiddleware *middlewares.AuthMiddleware, adminKeyMiddleware *middlewares.AdminKeyMiddleware) *MembershipHandler {
	return &MembershipHandler{
		membershipService:  membershipService,
		authMiddleware:     authMiddleware,
		adminKeyMiddleware: adminKeyMiddleware,
	}
}

func (h *MembershipHandler) RegisterRoutes(router fiber.Router) {
	membershipGroup := router.Group("/membership", h.authMiddleware.AuthAccount)
	membershipGroup.Post("/apply", h.Apply)

	adminGroup := router.Group("/admin/memberships", h.adminKeyMiddleware.RequireAdminKey)
	adminGroup.Get("/", h.ListApplications)
	adminGroup.Post("/:id/approve", h.ApproveApplication)
	adminGroup.Post("/:id/reject", h.RejectApplication)
}

func (h *MembershipHandler) Apply(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	var req models.MembershipApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	application, err := h.membershipService.Apply(account.ID.String(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, application)
}

func (h *MembershipHandler) ListApplications(c *fiber.Ctx) error {
	pagination := &models.PaginationRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}

	var status *models.MembershipStatus
	if statusStr := c.Query("status"); statusStr != "" {
		membershipStatus := models.MembershipStatus(statusStr)
		status = &membershipStatus
	}

	applications, err := h.membershipService.ListApplications(pagination, status)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, applications)
}

func (h *MembershipHandler) ApproveApplication(c *fiber.Ctx) error {
	id := c.Params("id")

	application, err := h.membershipService.Approve(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, application)
}

func (h *MembershipHandler) RejectApplication(c *fiber.Ctx) error {
	id := c.Params("id")

	application, err := h.membershipService.Reject(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, application)
}
