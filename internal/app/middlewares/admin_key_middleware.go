package middlewares

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/infrastructures"
)

// AdminKeyMiddleware guards the admin approval surface with a static key
// from configuration.
type AdminKeyMiddleware struct{}

func NewAdminKeyMiddleware() *AdminKeyMiddleware {
	return &AdminKeyMiddleware{}
}

func (m *AdminKeyMiddleware) RequireAdminKey(c *fiber.Ctx) error {
	expected := ""
	if infrastructures.Config != nil {
		expected = infrastructures.Config.ADMIN_API_KEY
	}
	if expected == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Admin API is not configured"))
	}

	key := c.Get("X-Admin-Key")
	if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Invalid admin key"))
	}

	return c.Next()
}
