package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	domainErrors "moneroreq/internal/errors"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

// StatusOf maps a domain error code to its HTTP status.
func StatusOf(code string) int {
	switch code {
	case domainErrors.CodeInvalidArgument,
		domainErrors.CodeInvalidFormat,
		domainErrors.CodeMalformedPayload:
		return fiber.StatusBadRequest
	case domainErrors.CodeUnsupportedVersion:
		return fiber.StatusUnprocessableEntity
	case domainErrors.CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// DomainError writes err with the status its code maps to. Errors without
// a domain code are reported as a generic server error.
func DomainError(c *fiber.Ctx, err error) error {
	var de *domainErrors.DomainError
	if !errors.As(err, &de) {
		return ServerError(c, "internal server error")
	}
	body := fiber.Map{
		"error": de.Error(),
		"code":  de.Code,
	}
	if de.Field != "" {
		body["field"] = de.Field
	}
	return c.Status(StatusOf(de.Code)).JSON(body)
}
