package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/middlewares"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/app/services"
)

type AccountHandler struct {
	accountService      *services.AccountService
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewAccountHandler(accountService *services.AccountService, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware) *AccountHandler {
	return &AccountHandler{
		accountService:      accountService,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	accountGroup := router.Group("/accounts")

	accountGroup.Post("/", h.rateLimitMiddleware.LimitByIP(middlewares.SignupLimit), h.CreateAccount)
	accountGroup.Get("/me", h.authMiddleware.AuthAccount, h.GetCurrentAccount)
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req models.AccountCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	response, err := h.accountService.CreateAccount(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, response)
}

func (h *AccountHandler) GetCurrentAccount(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)
	return pkg.SuccessResponse(c, account)
}
