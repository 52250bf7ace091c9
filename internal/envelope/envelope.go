// Package envelope renders every API response in the uniform
// {status, message, status_code, data, errors} shape.
package envelope

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
)

type Response struct {
	Status     bool        `json:"status"`
	Message    string      `json:"message"`
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data"`
	Errors     interface{} `json:"errors"`
}

func Success(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return c.Status(statusCode).JSON(Response{
		Status:     true,
		Message:    message,
		StatusCode: statusCode,
		Data:       data,
	})
}

// Error translates a service error into the envelope. Untyped errors are
// logged and reported as internal failures without leaking their message.
func Error(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		log.Printf("internal error: %+v", err)
		appErr = apperrors.SomethingWentWrong
	}

	fields := appErr.Fields
	if len(fields) == 0 {
		fields = map[string]string{"error": appErr.Message}
	}

	statusCode := appErr.HTTPStatus()
	return c.Status(statusCode).JSON(Response{
		Status:     false,
		Message:    "An error occurred",
		StatusCode: statusCode,
		Errors:     fields,
	})
}
