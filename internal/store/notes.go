package store

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoteFilter narrows an owner's notes. FavoritesOnly wins over Category.
type NoteFilter struct {
	OwnerID       uint
	Category      string
	FavoritesOnly bool
	Search        string
}

// ownedBy limits a query to rows belonging to userID.
func ownedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Revisions", func(db *gorm.DB) *gorm.DB {
			return db.Order("revision_number ASC")
		})
}

func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(note).Error)
}

// SaveNote writes every column of an existing note.
func (s *Store) SaveNote(ctx context.Context, note *models.Note) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(note).Error)
}

// OwnedNote loads a note only if ownerID owns it. With lock set the row is
// held FOR UPDATE until the surrounding transaction ends (a no-op on SQLite,
// which serializes writers anyway).
func (s *Store) OwnedNote(ctx context.Context, noteID, ownerID uint, lock bool) (*models.Note, error) {
	q := s.conn(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var note models.Note
	if err := q.Scopes(ownedBy(ownerID)).Where("id = ?", noteID).First(&note).Error; err != nil {
		return nil, translate(err)
	}
	return &note, nil
}

// NoteByID loads a note with its author and revisions attached.
func (s *Store) NoteByID(ctx context.Context, noteID uint) (*models.Note, error) {
	var note models.Note
	if err := withRelations(s.conn(ctx)).First(&note, "id = ?", noteID).Error; err != nil {
		return nil, translate(err)
	}
	return &note, nil
}

// ListNotes returns the owner's notes matching f, most recently modified first.
func (s *Store) ListNotes(ctx context.Context, f NoteFilter) ([]models.Note, error) {
	q := s.conn(ctx).Model(&models.Note{}).Scopes(ownedBy(f.OwnerID))

	switch {
	case f.FavoritesOnly:
		q = q.Where("favorite = ?", true)
	case f.Category != "":
		q = q.Where("category = ?", f.Category)
	}

	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	notes := make([]models.Note, 0)
	err := withRelations(q).
		Order("modified_at DESC").
		Order("id DESC").
		Find(&notes).Error
	if err != nil {
		return nil, translate(err)
	}
	return notes, nil
}

// DeleteNoteCascade removes a note with its grants and revisions atomically.
func (s *Store) DeleteNoteCascade(ctx context.Context, noteID uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", noteID).Delete(&models.SharedNote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteRevision{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Note{}, noteID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translate(err)
}

// likePattern builds a case-insensitive substring pattern with LIKE
// metacharacters in term escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
