package models

import "time"

type NoteTemplate struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	TemplateContent string    `gorm:"type:text;not null" json:"templateContent"`
	Category        string    `gorm:"size:50;default:'personal'" json:"category"`
	IsPremium       bool      `gorm:"default:false;index" json:"isPremium"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
