package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bizplan/internal/datasource"
	"bizplan/internal/http/middleware"
	"bizplan/internal/service"
)

// errorPayload is the standardized error response body. Success is always
// false; clients branch on it without inspecting status codes.
type errorPayload struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking
// internal details beyond the supplied message.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{
		Success:   false,
		RequestID: requestIDFromCtx(c),
		Message:   message,
	})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// absence to 404, validation to 400, everything else to an opaque 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, datasource.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, err.Error())
	case service.IsValidationError(err):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes
// responses for errors escaping the route handlers.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		default:
			return writeError(c, status, "internal server error")
		}
	}
}
