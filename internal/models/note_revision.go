package models

import "time"

// NoteRevision is an immutable snapshot of a note's title and content taken
// before an update that changed either of them.
type NoteRevision struct {
	ID             uint      `gorm:"primaryKey"`
	NoteID         uint      `gorm:"not null;uniqueIndex:idx_note_revisions_note_number,priority:1"`
	Title          string    `gorm:"size:100;not null"`
	Content        string    `gorm:"type:text"`
	RevisionNumber int       `gorm:"not null;uniqueIndex:idx_note_revisions_note_number,priority:2"`
	CreatedAt      time.Time `gorm:"not null"`
}
