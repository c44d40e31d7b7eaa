package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/middlewares"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/app/services"
)

type VoucherHandler struct {
	voucherService     *services.VoucherService
	adminKeyMiddleware *middlewares.AdminKeyMiddleware
}

func NewVoucherHandler(voucherService *services.VoucherService, adminKeyMiddleware *middlewares.AdminKeyMiddleware) *VoucherHandler {
	return &VoucherHandler{
		voucherService:     voucherService,
		adminKeyMiddleware: adminKeyMiddleware,
	}
}

func (h *VoucherHandler) RegisterRoutes(router fiber.Router) {
	voucherGroup := router.Group("/vouchers")
	voucherGroup.Post("/", h.IssueVoucher)
	voucherGroup.Get("/validate/:code", h.CheckValidity)
	voucherGroup.Post("/redeem", h.RedeemVoucher)

	adminGroup := router.Group("/admin/vouchers", h.adminKeyMiddleware.RequireAdminKey)
	adminGroup.Get("/", h.ListVouchers)
	adminGroup.Post("/:id/approve", h.ApproveVoucher)
	adminGroup.Post("/:id/reject", h.RejectVoucher)
}

func (h *VoucherHandler) IssueVoucher(c *fiber.Ctx) error {
	var req models.VoucherCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	voucher, err := h.voucherService.Issue(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, voucher)
}

func (h *VoucherHandler) CheckValidity(c *fiber.Ctx) error {
	code := c.Params("code")

	validity, err := h.voucherService.CheckValidity(code)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, validity)
}

func (h *VoucherHandler) RedeemVoucher(c *fiber.Ctx) error {
	var req models.VoucherRedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	response, err := h.voucherService.Redeem(req.Code, req.Amount)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, response)
}

func (h *VoucherHandler) ListVouchers(c *fiber.Ctx) error {
	pagination := &models.PaginationRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}

	var status *models.VoucherStatus
	if statusStr := c.Query("status"); statusStr != "" {
		voucherStatus := models.VoucherStatus(statusStr)
		status = &voucherStatus
	}

	vouchers, err := h.voucherService.ListVouchers(pagination, status)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, vouchers)
}

func (h *VoucherHandler) ApproveVoucher(c *fiber.Ctx) error {
	id := c.Params("id")

	voucher, err := h.voucherService.Approve(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, voucher)
}

func (h *VoucherHandler) RejectVoucher(c *fiber.Ctx) error {
	id := c.Params("id")

	voucher, err := h.voucherService.Reject(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, voucher)
}
