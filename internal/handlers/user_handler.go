package handlers

import (
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService, validate: newValidator()}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.UserContext(), identity.UserID(c))
	if err != nil {
		return respondError(c, "get_profile", err)
	}
	return c.JSON(profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	profile, err := h.userService.UpdateProfile(c.UserContext(), identity.UserID(c), &req)
	if err != nil {
		return respondError(c, "update_profile", err)
	}
	return c.JSON(profile)
}
