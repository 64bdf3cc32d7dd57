package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Response is the envelope of every api answer.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	ID      uint64 `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK sends a successful envelope with optional data.
func OK(c *fiber.Ctx, data any) error {
	return c.JSON(Response{Success: true, Data: data})
}

// Fail sends an error envelope with the given status.
func Fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Response{Success: false, Error: msg})
}

// ErrorHandler renders errors escaping a handler as error envelope.
// fiber errors keep their code and message, everything else is logged and reported as 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Fail(c, fe.Code, fe.Message)
	}

	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")

	return Fail(c, fiber.StatusInternalServerError, InternalServerErrorMessage)
}

// BadRequest returns a 400 error carrying the client facing message of err.
func BadRequest(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, capitalize(err.Error()))
}

// NotFound returns a 404 error for the named resource, e.g. "Achievement not found".
func NotFound(resource string) error {
	return fiber.NewError(fiber.StatusNotFound, resource+" not found")
}
