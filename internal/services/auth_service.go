package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type appleVerifier interface {
	VerifyToken(ctx context.Context, identityToken, audience string) (*AppleClaims, error)
}

type AuthService struct {
	store *store.Store
	cfg   *config.Config
	apple appleVerifier
	now   func() time.Time
}

func NewAuthService(st *store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store: st,
		cfg:   cfg,
		apple: NewAppleJWKSClient(),
		now:   time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if !strings.Contains(email, "@") || len(req.Password) < 8 {
		return nil, validationError("valid email required and password must be at least 8 characters")
	}

	taken, err := s.store.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, storageError(err, ErrNotFound)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	username := strings.TrimSpace(req.Username)
	if username != "" {
		taken, err := s.store.UsernameTaken(ctx, username, 0)
		if err != nil {
			return nil, storageError(err, ErrNotFound)
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	} else if username, err = s.freeUsername(ctx, localPart(email)); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %w", ErrInternal, err)
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Provider: models.ProviderEmail,
		Role:     "user",
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, storageError(err, ErrNotFound)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID, "provider", user.Provider)
	return s.generateTokenPair(ctx, s.store, &user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.store.UserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, storageError(err, ErrInvalidCredentials)
	}

	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(ctx, s.store, user)
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked whether or not it was still valid.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var resp *dto.AuthResponse
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		stored, err := tx.ActiveRefreshToken(ctx, tokenHash)
		if err != nil {
			return storageError(err, ErrInvalidToken)
		}
		if err := tx.RevokeRefreshToken(ctx, tokenHash); err != nil {
			return err
		}
		if s.now().After(stored.ExpiresAt) {
			return nil
		}

		user, err := tx.UserByID(ctx, stored.UserID)
		if err != nil {
			return storageError(err, ErrInvalidToken)
		}
		resp, err = s.generateTokenPair(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, txError(err)
	}
	if resp == nil {
		return nil, ErrInvalidToken
	}
	return resp, nil
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return storageError(s.store.RevokeRefreshToken(ctx, hashToken(req.RefreshToken)), ErrNotFound)
}

// DeleteAccount removes the user and everything they own. Email users must
// confirm with their password.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint, password string) error {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return storageError(err, ErrNotFound)
	}

	if user.Provider != models.ProviderApple {
		if password == "" {
			return validationError("password is required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
	}

	if err := s.store.DeleteUserCascade(ctx, userID); err != nil {
		return storageError(err, ErrNotFound)
	}
	slog.InfoContext(ctx, "account deleted", "user_id", userID)
	return nil
}

func (s *AuthService) AppleSignIn(ctx context.Context, req *dto.AppleSignInRequest) (*dto.AuthResponse, error) {
	if req.IdentityToken == "" {
		return nil, validationError("identity token is required")
	}
	if s.cfg.AppleClientID == "" {
		return nil, fmt.Errorf("%w: sign in with apple is not configured", ErrInvalidOperation)
	}

	claims, err := s.apple.VerifyToken(ctx, req.IdentityToken, s.cfg.AppleClientID)
	if err != nil {
		slog.WarnContext(ctx, "apple token verification failed", "error", err)
		return nil, fmt.Errorf("%w: failed to verify Apple identity token", ErrUnauthorized)
	}

	appleUserID := claims.Subject
	email := normalizeEmail(claims.Email)
	if email == "" {
		email = normalizeEmail(req.Email)
	}
	if email == "" {
		email = appleUserID + "@privaterelay.appleid.com"
	}

	user, err := s.store.UserByAppleID(ctx, appleUserID, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		base := strings.TrimSpace(req.FullName)
		if base == "" {
			base = localPart(email)
		}
		username, err := s.freeUsername(ctx, base)
		if err != nil {
			return nil, err
		}
		user = &models.User{
			Username:    username,
			Email:       email,
			AppleUserID: &appleUserID,
			Provider:    models.ProviderApple,
			Role:        "user",
		}
		if err := s.store.CreateUser(ctx, user); err != nil {
			return nil, storageError(err, ErrNotFound)
		}
	case err != nil:
		return nil, storageError(err, ErrNotFound)
	case user.AppleUserID == nil:
		user.AppleUserID = &appleUserID
		user.Provider = models.ProviderApple
		if err := s.store.SaveUser(ctx, user); err != nil {
			return nil, storageError(err, ErrNotFound)
		}
	}

	return s.generateTokenPair(ctx, s.store, user)
}

// freeUsername returns base, or base with a short random suffix when base
// is already in use.
func (s *AuthService) freeUsername(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "user"
	}
	if len(base) > 90 {
		base = base[:90]
	}

	candidate := base
	for i := 0; i < 5; i++ {
		taken, err := s.store.UsernameTaken(ctx, candidate, 0)
		if err != nil {
			return "", storageError(err, ErrNotFound)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:6]
	}
	return "", ErrUsernameTaken
}

func (s *AuthService) generateTokenPair(ctx context.Context, st *store.Store, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, st, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			IsAppleUser: user.Provider == models.ProviderApple,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("%w: failed to sign access token: %w", ErrInternal, err)
	}
	return signed, nil
}

func (s *AuthService) generateRefreshToken(ctx context.Context, st *store.Store, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("%w: failed to generate random bytes: %w", ErrInternal, err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := st.CreateRefreshToken(ctx, &record); err != nil {
		return "", storageError(err, ErrNotFound)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
