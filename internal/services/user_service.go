package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/store"
)

type UserService struct {
	store *store.Store
}

func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, storageError(err, ErrNotFound)
	}
	return toProfileResponse(user), nil
}

// UpdateProfile changes the fields present in req. Username and email stay
// unique across users.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	var user *models.User
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		var err error
		if user, err = tx.UserByID(ctx, userID); err != nil {
			return storageError(err, ErrNotFound)
		}

		if req.Username != nil {
			username := strings.TrimSpace(*req.Username)
			if username == "" {
				return validationError("username must not be empty")
			}
			taken, err := tx.UsernameTaken(ctx, username, userID)
			if err != nil {
				return err
			}
			if taken {
				return ErrUsernameTaken
			}
			user.Username = username
		}
		if req.Email != nil {
			email := normalizeEmail(*req.Email)
			if !strings.Contains(email, "@") {
				return validationError("invalid email")
			}
			taken, err := tx.EmailTaken(ctx, email, userID)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
			user.Email = email
		}
		if req.Bio != nil {
			user.Bio = req.Bio
		}
		if req.Avatar != nil {
			user.Avatar = req.Avatar
		}

		return tx.SaveUser(ctx, user)
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, txError(err)
	}
	return toProfileResponse(user), nil
}

func toProfileResponse(u *models.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Bio:      u.Bio,
		Provider: u.Provider,
	}
}
