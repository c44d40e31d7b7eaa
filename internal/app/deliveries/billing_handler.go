package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/middlewares"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/app/services"
)

type BillingHandler struct {
	subscriptionService *services.SubscriptionService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewBillingHandler(subscriptionService *services.SubscriptionService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *BillingHandler {
	return &BillingHandler{
		subscriptionService: subscriptionService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *BillingHandler) RegisterRoutes(router fiber.Router) {
	billingGroup := router.Group("/billing")

	billingGroup.Get("/plans", h.GetPlans)
	billingGroup.Post("/webhook", h.rateLimitMiddleware.LimitByIP(middlewares.WebhookLimit), h.HandleWebhook)
}

func (h *BillingHandler) GetPlans(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, h.subscriptionService.GetPlans())
}

func (h *BillingHandler) HandleWebhook(c *fiber.Ctx) error {
	var req models.BillingWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	account, err := h.subscriptionService.ApplyBillingEvent(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, account)
}
