package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/app/services"
)

type AuthMiddleware struct {
	accountService *services.AccountService
}

func NewAuthMiddleware(accountService *services.AccountService) *AuthMiddleware {
	return &AuthMiddleware{accountService: accountService}
}

// AuthAccount resolves the bearer access token to an account and stores it
// in the request locals.
func (m *AuthMiddleware) AuthAccount(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	if token == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError())
	}

	token = strings.Replace(token, "Bearer ", "", 1)

	account, err := m.accountService.GetAccountByToken(token)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Locals("account", account)

	return c.Next()
}
