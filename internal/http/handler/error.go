package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"exportapi/internal/http/middleware"
)

// Machine-readable error codes returned in the "error" field.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeInvalidOptions = "INVALID_OPTIONS"
	CodeBadRequest     = "BAD_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeTokenExpired   = "TOKEN_EXPIRED"
	CodeExportFailed   = "EXPORT_FAILED"
	CodeInternal       = "INTERNAL_ERROR"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string         `json:"request_id,omitempty"`
	Error     string         `json:"error"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
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

// writeError writes a standardized JSON error response. message must be
// safe to show to clients; internal causes belong in the logs.
func writeError(c *fiber.Ctx, status int, code, message string, details map[string]any) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     code,
		Message:   message,
		Details:   details,
	})
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, CodeBadRequest, "bad request", nil)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found", nil)
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed", nil)
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large", nil)
		default:
			return writeError(c, status, CodeInternal, "internal server error", nil)
		}
	}
}
