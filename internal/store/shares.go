package store

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) HasGrant(ctx context.Context, noteID, userID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.SharedNote{}).
		Where("note_id = ? AND user_id = ?", noteID, userID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (s *Store) Grant(ctx context.Context, noteID, userID uint) (*models.SharedNote, error) {
	var grant models.SharedNote
	err := s.conn(ctx).Where("note_id = ? AND user_id = ?", noteID, userID).First(&grant).Error
	if err != nil {
		return nil, translate(err)
	}
	return &grant, nil
}

// UpsertGrant creates the (note, user) grant or changes the permission of the
// existing one. created is false when a grant was already there.
func (s *Store) UpsertGrant(ctx context.Context, noteID, userID uint, permission string, at time.Time) (created bool, err error) {
	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var grant models.SharedNote
		err := tx.Where("note_id = ? AND user_id = ?", noteID, userID).First(&grant).Error
		switch {
		case err == nil:
			return tx.Model(&grant).Update("permission", permission).Error
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		grant = models.SharedNote{
			NoteID:     noteID,
			UserID:     userID,
			Permission: permission,
			SharedAt:   at,
		}
		if err := tx.Omit(clause.Associations).Create(&grant).Error; err != nil {
			return err
		}
		created = true
		return nil
	})

	if err != nil && isDuplicate(err) {
		// A concurrent share inserted the row first; fall back to updating it.
		created = false
		err = s.conn(ctx).Model(&models.SharedNote{}).
			Where("note_id = ? AND user_id = ?", noteID, userID).
			Update("permission", permission).Error
	}
	return created, translate(err)
}

// SharedWith returns the notes userID holds a grant for, in grant order.
func (s *Store) SharedWith(ctx context.Context, userID uint) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	err := withRelations(s.conn(ctx)).
		Joins("JOIN shared_notes ON shared_notes.note_id = notes.id").
		Where("shared_notes.user_id = ?", userID).
		Order("shared_notes.id ASC").
		Find(&notes).Error
	if err != nil {
		return nil, translate(err)
	}
	return notes, nil
}
