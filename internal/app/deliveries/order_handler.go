package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/siamaraya/araya-core/internal/app/middlewares"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/app/services"
)

type OrderHandler struct {
	orderService       *services.OrderService
	adminKeyMiddleware *middlewares.AdminKeyMiddleware
}

func NewOrderHandler(orderService *services.OrderService, adminKeyMiddleware *middlewares.AdminKeyMiddleware) *OrderHandler {
	return &OrderHandler{
		orderService:       orderService,
		adminKeyMiddleware: adminKeyMiddleware,
	}
}

func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderGroup := router.Group("/orders")
	orderGroup.Post("/", h.CreateOrder)
	orderGroup.Get("/:orderNumber", h.GetOrder)

	adminGroup := router.Group("/admin/orders", h.adminKeyMiddleware.RequireAdminKey)
	adminGroup.Get("/", h.ListOrders)
	adminGroup.Post("/:id/approve", h.ApproveOrder)
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req models.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	// Orders can be placed anonymously; attach the account when present.
	var accountID *uuid.UUID
	if account, ok := c.Locals("account").(*models.Account); ok {
		accountID = &account.ID
	}

	order, err := h.orderService.CreateOrder(&req, accountID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, order)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderNumber := c.Params("orderNumber")

	order, err := h.orderService.GetOrderByNumber(orderNumber)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, order)
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	pagination := &models.PaginationRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}

	orders, err := h.orderService.ListOrders(pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, orders)
}

func (h *OrderHandler) ApproveOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.OrderApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	order, err := h.orderService.ApproveOrder(id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, order)
}
