package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto an HTTP status. Client errors
// carry the service message; server errors are logged and reported to
// Sentry with a generic body.
func respondError(c *fiber.Ctx, action string, err error) error {
	var status int
	message := err.Error()

	switch services.Kind(err) {
	case services.ErrValidation, services.ErrInvalidOperation:
		status = fiber.StatusBadRequest
	case services.ErrUnauthorized:
		status = fiber.StatusUnauthorized
	case services.ErrNotFound, services.ErrRecipientNotFound:
		status = fiber.StatusNotFound
	case services.ErrConflict:
		status = fiber.StatusConflict
	case services.ErrTransientStorage:
		status = fiber.StatusServiceUnavailable
		message = "Service temporarily unavailable, please retry"
	default:
		status = fiber.StatusInternalServerError
		message = "Internal server error"
	}

	if status >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request failed",
			"action", action,
			"request_id", requestID(c),
			"user_id", identity.UserID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// noteID parses the :id route parameter. Anything that is not a positive
// integer cannot name a note.
func noteID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func noteNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "Note not found",
	})
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage turns the first field failure into a readable message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return fe.Field() + " is invalid"
}
