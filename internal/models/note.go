package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CategoryPersonal = "personal"
	CategoryWork     = "work"
	CategoryIdeas    = "ideas"
)

// Categories is the fixed set a note's category is drawn from.
var Categories = []string{CategoryPersonal, CategoryWork, CategoryIdeas}

const (
	MaxTitleLength   = 100
	MaxContentLength = 10000
	MaxTags          = 5
	MaxTagLength     = 20
)

// Note is exclusively owned by UserID; ownership is never reassigned.
// Tags are stored as JSON text so a corrupt value can still be read back.
type Note struct {
	ID         uint           `gorm:"primaryKey"`
	Title      string         `gorm:"size:100;not null"`
	Content    string         `gorm:"type:text"`
	Category   string         `gorm:"size:50;not null;default:'personal';index"`
	Tags       datatypes.JSON `gorm:"type:text"`
	Favorite   bool           `gorm:"not null;default:false"`
	UserID     uint           `gorm:"not null;index"`
	CreatedAt  time.Time      `gorm:"not null"`
	ModifiedAt time.Time      `gorm:"not null;index"`

	Author    *User          `gorm:"foreignKey:UserID"`
	Revisions []NoteRevision `gorm:"foreignKey:NoteID"`
}

func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
