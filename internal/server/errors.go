package server

import (
	"errors"

	"usernotes/internal/database/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// validationError rejects a request before it reaches the store.
type validationError struct {
	fields []dto.FieldError
}

func (e *validationError) Error() string {
	return "request validation failed"
}

func invalidField(msg, typ string, loc ...string) error {
	return &validationError{fields: []dto.FieldError{{Loc: loc, Msg: msg, Type: typ}}}
}

// errorHandler renders every error that escapes a handler as {"detail": ...}.
// Anything that is neither a *fiber.Error nor a validation failure is an
// infrastructure problem and becomes a logged 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var verr *validationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": verr.fields})
	}

	code := fiber.StatusInternalServerError
	detail := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		detail = fiberErr.Message
	} else {
		log.Errorw("request failed",
			"requestid", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}

	return c.Status(code).JSON(fiber.Map{"detail": detail})
}
