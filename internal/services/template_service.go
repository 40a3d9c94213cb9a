package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"gorm.io/gorm"
)

// TemplateService manages the shared catalogue of note templates. Reads are
// open to every signed-in user; writes are an admin concern.
type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

func (s *TemplateService) ListTemplates(ctx context.Context, premiumOnly bool) ([]models.NoteTemplate, error) {
	query := s.db.WithContext(ctx).Order("id ASC")
	if premiumOnly {
		query = query.Where("is_premium = ?", true)
	}

	templates := make([]models.NoteTemplate, 0)
	if err := query.Find(&templates).Error; err != nil {
		return nil, storageError(err, ErrNotFound)
	}
	return templates, nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*models.NoteTemplate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.TemplateContent) == "" {
		return nil, validationError("name and template content are required")
	}

	tmpl := models.NoteTemplate{
		Name:            truncate(name, models.MaxTitleLength),
		Description:     req.Description,
		TemplateContent: req.TemplateContent,
		Category:        normalizeCategory(req.Category),
		IsPremium:       req.IsPremium,
	}
	if err := s.db.WithContext(ctx).Create(&tmpl).Error; err != nil {
		return nil, storageError(err, ErrNotFound)
	}
	return &tmpl, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id uint, req *dto.UpdateTemplateRequest) (*models.NoteTemplate, error) {
	var tmpl models.NoteTemplate
	if err := s.db.WithContext(ctx).First(&tmpl, "id = ?", id).Error; err != nil {
		return nil, templateError(err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError("name must not be empty")
		}
		tmpl.Name = truncate(name, models.MaxTitleLength)
	}
	if req.Description != nil {
		tmpl.Description = *req.Description
	}
	if req.TemplateContent != nil {
		if strings.TrimSpace(*req.TemplateContent) == "" {
			return nil, validationError("template content must not be empty")
		}
		tmpl.TemplateContent = *req.TemplateContent
	}
	if req.Category != nil {
		tmpl.Category = normalizeCategory(*req.Category)
	}
	if req.IsPremium != nil {
		tmpl.IsPremium = *req.IsPremium
	}

	if err := s.db.WithContext(ctx).Save(&tmpl).Error; err != nil {
		return nil, templateError(err)
	}
	return &tmpl, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.NoteTemplate{}, id)
	if result.Error != nil {
		return templateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: template %d", ErrNotFound, id)
	}
	return nil
}

func templateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return storageError(err, ErrNotFound)
}
