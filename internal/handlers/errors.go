package handlers

import (
	"fmt"

	"storefront/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusForKind maps the domain error taxonomy to HTTP statuses.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindOutOfStock:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindAuthentication:
		return fiber.StatusUnauthorized
	case apperrors.KindAuthorization:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes a JSON error body with the machine-readable kind
// and the human-readable message.
func respondError(c *fiber.Ctx, message string, err error) error {
	kind := apperrors.KindOf(err)
	return c.Status(statusForKind(kind)).JSON(fiber.Map{
		"message": message,
		"kind":    string(kind),
		"error":   err.Error(),
	})
}

// respondValidationErrors writes the per-field failure map for struct
// validation errors.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return respondError(c, "Validation failed", apperrors.Validation("%v", err))
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"kind":    string(apperrors.KindValidation),
		"errors":  errorMessages,
	})
}

// currentUserID reads the authenticated user's ID from the request
// context, set by the auth middleware.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
