package dto

type CreateTemplateRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Description     string `json:"description"`
	TemplateContent string `json:"templateContent" validate:"required"`
	Category        string `json:"category"`
	IsPremium       bool   `json:"isPremium"`
}

type UpdateTemplateRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description     *string `json:"description"`
	TemplateContent *string `json:"templateContent" validate:"omitempty,min=1"`
	Category        *string `json:"category"`
	IsPremium       *bool   `json:"isPremium"`
}
