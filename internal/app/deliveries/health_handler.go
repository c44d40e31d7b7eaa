package deliveries

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/pkg"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, fiber.Map{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}
