package pkg

import (
	"errors"
	"reflect"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appError "github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
)

func SuccessResponse[T any](c *fiber.Ctx, data T) error {
	return c.JSON(models.WebResponse[T]{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, err error) error {
	var appErr *appError.AppError
	if errors.As(err, &appErr) {
		body := models.WebResponse[any]{
			Success: false,
			Code:    string(appErr.Code),
			Message: appErr.Message,
		}
		if appErr.Remaining != nil {
			body.Data = fiber.Map{"remaining": appErr.Remaining}
		}
		return c.Status(appErr.StatusCode).JSON(body)
	}

	logrus.Errorf("[%s] %s", reflect.TypeOf(err).String(), err)

	return c.Status(fiber.StatusInternalServerError).JSON(models.WebResponse[any]{
		Success: false,
		Code:    string(appError.CodeInternal),
		Message: "Internal Server Error",
	})
}
