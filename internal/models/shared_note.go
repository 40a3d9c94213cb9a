package models

import "time"

const (
	PermissionView = "view"
	PermissionEdit = "edit"
)

// SharedNote grants a non-owner visibility of one note. At most one grant
// exists per (note, user).
type SharedNote struct {
	ID         uint      `gorm:"primaryKey"`
	NoteID     uint      `gorm:"not null;uniqueIndex:idx_shared_notes_note_user,priority:1"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_shared_notes_note_user,priority:2;index"`
	Permission string    `gorm:"size:10;not null;default:'view'"`
	SharedAt   time.Time `gorm:"not null"`

	Note *Note `gorm:"foreignKey:NoteID"`
	User *User `gorm:"foreignKey:UserID"`
}

func IsPermission(s string) bool {
	return s == PermissionView || s == PermissionEdit
}
