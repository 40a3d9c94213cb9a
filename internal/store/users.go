package store

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(user).Error)
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(user).Error)
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) UserByAppleID(ctx context.Context, appleUserID, email string) (*models.User, error) {
	var user models.User
	err := s.conn(ctx).
		Where("apple_user_id = ? OR email = ?", appleUserID, email).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// EmailTaken reports whether another user (not exceptID) uses email.
func (s *Store) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return s.taken(ctx, "email = ?", email, exceptID)
}

// UsernameTaken reports whether another user (not exceptID) uses username.
func (s *Store) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	return s.taken(ctx, "username = ?", username, exceptID)
}

func (s *Store) taken(ctx context.Context, cond, value string, exceptID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.User{}).
		Where(cond, value).
		Where("id <> ?", exceptID).
		Count(&count).Error
	return count > 0, translate(err)
}

// DeleteUserCascade removes a user together with their notes (and those
// notes' grants and revisions), the grants they hold, and their refresh tokens.
func (s *Store) DeleteUserCascade(ctx context.Context, userID uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var noteIDs []uint
		if err := tx.Model(&models.Note{}).Where("user_id = ?", userID).Pluck("id", &noteIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.SharedNote{}).Error; err != nil {
			return err
		}
		if len(noteIDs) > 0 {
			if err := tx.Where("note_id IN ?", noteIDs).Delete(&models.SharedNote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("note_id IN ?", noteIDs).Delete(&models.NoteRevision{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", noteIDs).Delete(&models.Note{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, userID)
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

func (s *Store) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(token).Error)
}

// ActiveRefreshToken finds an unrevoked token by hash; expiry is the caller's check.
func (s *Store) ActiveRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := s.conn(ctx).Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

func (s *Store) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	return translate(s.conn(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error)
}
