package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// respondError renders err with the status and message its kind allows.
func respondError(c *fiber.Ctx, err error) error {
	code, message := apperrors.Public(err)
	return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
		"code":    code,
		"message": message,
	})
}

// respondValidation renders validator failures field by field.
func respondValidation(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return respondError(c, apperrors.InvalidInput("Invalid request body"))
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// ErrorHandler is the fiber error handler for errors no handler rendered.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"code":    strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(fe.Code), " ", "_")),
			"message": fe.Message,
		})
	}
	return respondError(c, err)
}
