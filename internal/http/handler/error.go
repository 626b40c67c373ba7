package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/http/middleware"
	"jobboard/internal/logging"
	"jobboard/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorFields(c, status, code, message, nil)
}

func writeErrorFields(c *fiber.Ctx, status int, code, message string, fields map[string]string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
	})
}

// serviceError translates a request or service error into a response. Unknown
// errors are logged with the request ID and reported as INTERNAL_ERROR.
func serviceError(c *fiber.Ctx, err error) error {
	var (
		br *badRequest
		ve *service.ValidationError
	)
	switch {
	case errors.As(err, &br):
		return writeError(c, fiber.StatusBadRequest, br.code, br.message)
	case errors.As(err, &ve):
		return writeErrorFields(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "validation failed", ve.Fields())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrResumeMissing):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", err.Error())
	case errors.Is(err, service.ErrAlreadyApplied):
		return writeError(c, fiber.StatusConflict, "ALREADY_APPLIED", err.Error())
	case errors.Is(err, service.ErrJobClosed):
		return writeError(c, fiber.StatusConflict, "JOB_CLOSED", err.Error())
	case errors.Is(err, service.ErrSelfDelete):
		return writeError(c, fiber.StatusBadRequest, "SELF_DELETE", err.Error())
	}
	logging.Default().Error("request failed", err, logging.Fields{
		"event":      "request_failed",
		"request_id": middleware.RequestIDFrom(c),
		"path":       c.Path(),
	})
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Messages of 401/403/413 errors raised by middleware are safe and passed through.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		msg := ""
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
			msg = e.Message
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", msg)
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", msg)
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
