package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type TemplateHandler struct {
	templateService *services.TemplateService
	validate        *validator.Validate
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, validate: newValidator()}
}

// List handles GET /api/templates?is_premium=true
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	templates, err := h.templateService.ListTemplates(c.UserContext(), truthy(c.Query("is_premium")))
	if err != nil {
		return respondError(c, "list_templates", err)
	}
	return c.JSON(templates)
}

func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	tmpl, err := h.templateService.CreateTemplate(c.UserContext(), &req)
	if err != nil {
		return respondError(c, "create_template", err)
	}
	return c.Status(fiber.StatusCreated).JSON(tmpl)
}

func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Template not found",
		})
	}

	var req dto.UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	tmpl, err := h.templateService.UpdateTemplate(c.UserContext(), uint(id), &req)
	if err != nil {
		return respondError(c, "update_template", err)
	}
	return c.JSON(tmpl)
}

func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Template not found",
		})
	}

	if err := h.templateService.DeleteTemplate(c.UserContext(), uint(id)); err != nil {
		return respondError(c, "delete_template", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Template deleted successfully"})
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
