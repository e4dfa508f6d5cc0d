package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"vidar/internal/http/middleware"
	"vidar/internal/normalize"
	"vidar/internal/service"
)

// errorPayload defines the error response body.
type errorPayload struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes the standard JSON error response.
// code is a short machine-readable identifier, message is safe to show to the caller.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromCtx(c),
	})
}

// respond translates a service error into a response. Errors it does not recognise are
// returned unchanged so the global ErrorHandler logs them and answers 500.
func respond(c *fiber.Ctx, err error) error {
	var verr *normalize.ValidationError
	switch {
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, service.ErrCredentialsRequired):
		return writeError(c, fiber.StatusBadRequest, "CREDENTIALS_REQUIRED", err.Error())
	case errors.Is(err, service.ErrUserExists):
		return writeError(c, fiber.StatusBadRequest, "USER_EXISTS", err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusBadRequest, "USER_NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrInvalidPassword):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_PASSWORD", err.Error())
	case errors.Is(err, service.ErrFileRequired):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", err.Error())
	case errors.Is(err, service.ErrUnsupportedType):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_TYPE", err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	}
	return err
}

// ErrorHandler returns the global fiber error handler. Framework errors keep their status;
// anything else is logged and reported as a generic 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			log.Error().
				Err(err).
				Str("request_id", requestIDFromCtx(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("request failed")
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}
