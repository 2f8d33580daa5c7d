package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rosapi/internal/http/middleware"
)

// errorPayload is the body of every transport-level error and of service faults.
// Domain failures are answered with the service result instead, so clients can
// tell the two apart by shape.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fiberErrors maps statuses raised by Fiber itself (routing, body limits) to envelope codes.
var fiberErrors = map[int]errorEnvelope{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"BODY_TOO_LARGE", "request body too large"},
}

func requestID(c *fiber.Ctx) string {
	s, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return s
}

// writeError writes the envelope. message must be safe to show; error text from
// GitHub, the database or the cipher never goes here.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestID(c),
		Error:     errorEnvelope{Code: code, Message: message},
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

		if env, ok := fiberErrors[status]; ok {
			return writeError(c, status, env.Code, env.Message)
		}
		return writeError(c, status, "INTERNAL_ERROR", "internal server error")
	}
}
