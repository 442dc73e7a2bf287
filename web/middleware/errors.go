package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"recipebox/recipebox/catalog"
	"recipebox/recipebox/database/repositories"
	"recipebox/recipebox/services"
)

// CustomErrorHandler translates service and repository errors that escaped a
// handler into the standard JSON error envelope.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	errCode := "INTERNAL_SERVER_ERROR"
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	var unavailable *catalog.UnavailableError

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		code = fiber.StatusUnauthorized
		errCode = "UNAUTHORIZED"
		message = services.ErrInvalidCredentials.Error()
	case errors.Is(err, services.ErrDuplicateEmail):
		code = fiber.StatusConflict
		errCode = "CONFLICT"
		message = services.ErrDuplicateEmail.Error()
	case errors.Is(err, services.ErrNotSaved):
		code = fiber.StatusNotFound
		errCode = "NOT_FOUND"
		message = services.ErrNotSaved.Error()
	case errors.Is(err, services.ErrUserNotFound):
		code = fiber.StatusNotFound
		errCode = "NOT_FOUND"
		message = services.ErrUserNotFound.Error()
	case errors.Is(err, catalog.ErrNotFound):
		code = fiber.StatusNotFound
		errCode = "NOT_FOUND"
		message = "Recipe not found in catalog"
	case errors.As(err, &unavailable):
		code = fiber.StatusBadGateway
		errCode = "UPSTREAM_UNAVAILABLE"
		message = "Recipe catalog is unavailable"
	case repositories.IsNotFound(err):
		code = fiber.StatusNotFound
		errCode = "NOT_FOUND"
		message = "Resource not found"
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
		if code < 500 {
			errCode = "BAD_REQUEST"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    errCode,
			"message": message,
		},
	})
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		return c.Next()
	}
}
