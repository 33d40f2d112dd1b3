package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docregistry/internal/http/middleware"
	"docregistry/internal/registry"
	"docregistry/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// serviceError maps service and registry errors to responses. Validation and catalog
// messages describe the caller's input and are returned as is; anything unrecognized
// becomes a generic 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, registry.ErrInvalidType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", err.Error())
	case errors.Is(err, registry.ErrValidation):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, registry.ErrCatalogViolation):
		return writeError(c, fiber.StatusUnprocessableEntity, "CATALOG_VIOLATION", err.Error())
	case errors.Is(err, registry.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrAttachmentNotFound):
		return writeError(c, fiber.StatusNotFound, "ATTACHMENT_NOT_FOUND", "attachment not found")
	case errors.Is(err, registry.ErrDuplicateID):
		return writeError(c, fiber.StatusConflict, "DUPLICATE_ID", "a document with this id already exists")
	case errors.Is(err, registry.ErrImmutableField):
		return writeError(c, fiber.StatusConflict, "IMMUTABLE_FIELD", err.Error())
	case errors.Is(err, service.ErrNoContent):
		return writeError(c, fiber.StatusConflict, "NO_CONTENT", "attachment has no stored content")
	case errors.Is(err, service.ErrStorageDisabled):
		return writeError(c, fiber.StatusNotImplemented, "STORAGE_DISABLED", "object storage is not configured")
	case errors.Is(err, registry.ErrPersistence):
		return writeError(c, fiber.StatusServiceUnavailable, "PERSISTENCE_UNAVAILABLE", "storage backend unavailable")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
