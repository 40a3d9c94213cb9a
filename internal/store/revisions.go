package store

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"gorm.io/gorm"
)

// AppendRevision records the pre-update title and content of a note. It runs
// in its own savepoint when called inside WithTx, so a failure here can be
// dropped without poisoning the caller's transaction. Numbers start at 1.
func (s *Store) AppendRevision(ctx context.Context, noteID uint, title, content string, at time.Time) (*models.NoteRevision, error) {
	var rev *models.NoteRevision
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.NoteRevision{}).Where("note_id = ?", noteID).Count(&count).Error; err != nil {
			return err
		}

		rev = &models.NoteRevision{
			NoteID:         noteID,
			Title:          title,
			Content:        content,
			RevisionNumber: int(count) + 1,
			CreatedAt:      at,
		}
		return tx.Create(rev).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return rev, nil
}

func (s *Store) Revisions(ctx context.Context, noteID uint) ([]models.NoteRevision, error) {
	revs := make([]models.NoteRevision, 0)
	err := s.conn(ctx).
		Where("note_id = ?", noteID).
		Order("revision_number ASC").
		Find(&revs).Error
	if err != nil {
		return nil, translate(err)
	}
	return revs, nil
}
