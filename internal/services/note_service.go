package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/store"
	"github.com/sethvargo/go-retry"
	"gorm.io/datatypes"
)

const (
	CategoryAll       = "all"
	CategoryFavorites = "favorites"
)

type NoteService struct {
	store         *store.Store
	retryAttempts int
	retryBase     time.Duration
	now           func() time.Time
}

func NewNoteService(st *store.Store, cfg *config.Config) *NoteService {
	attempts := cfg.ListRetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	// go-retry rejects a non-positive base.
	base := cfg.ListRetryBase
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	return &NoteService{
		store:         st,
		retryAttempts: attempts,
		retryBase:     base,
		now:           time.Now,
	}
}

// ListNotes returns the owner's notes, most recently modified first.
// category is one of all, favorites or a note category; empty means all.
func (s *NoteService) ListNotes(ctx context.Context, ownerID uint, category, search string) ([]dto.NoteResponse, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}

	filter := store.NoteFilter{OwnerID: ownerID, Search: search}
	switch {
	case category == "" || category == CategoryAll:
	case category == CategoryFavorites:
		filter.FavoritesOnly = true
	case models.IsCategory(category):
		filter.Category = category
	default:
		return nil, validationError("invalid category")
	}

	var notes []models.Note
	err := s.readWithRetry(ctx, func(ctx context.Context) error {
		var err error
		notes, err = s.store.ListNotes(ctx, filter)
		return err
	})
	if err != nil {
		return nil, storageError(err, ErrNotFound)
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i], false))
	}
	return out, nil
}

// GetNote returns a note its owner or a grantee may read. Anyone else gets
// ErrNotFound, same as for a note that does not exist.
func (s *NoteService) GetNote(ctx context.Context, requesterID, noteID uint) (*dto.NoteResponse, error) {
	if requesterID == 0 {
		return nil, ErrUnauthorized
	}

	note, shared, err := s.visibleNote(ctx, requesterID, noteID)
	if err != nil {
		return nil, err
	}
	resp := toNoteResponse(note, shared)
	return &resp, nil
}

func (s *NoteService) CreateNote(ctx context.Context, ownerID uint, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationError("title is required")
	}

	tags, err := encodeTags(normalizeTags(req.Tags))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	now := s.now().UTC()
	note := &models.Note{
		Title:      truncate(title, models.MaxTitleLength),
		Content:    truncate(req.Content, models.MaxContentLength),
		Category:   normalizeCategory(req.Category),
		Tags:       tags,
		Favorite:   req.Favorite,
		UserID:     ownerID,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, storageError(err, ErrNotFound)
	}

	created, err := s.store.NoteByID(ctx, note.ID)
	if err != nil {
		return nil, storageError(err, ErrNotFound)
	}
	resp := toNoteResponse(created, false)
	return &resp, nil
}

// UpdateNote applies the fields present in req. When title or content
// changes, the previous pair is appended to the revision log first; a
// failure there is logged and the update still goes through.
func (s *NoteService) UpdateNote(ctx context.Context, ownerID, noteID uint, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}

	var title string
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, validationError("title must not be empty")
		}
	}

	var tags datatypes.JSON
	if req.Tags != nil {
		var err error
		if tags, err = encodeTags(normalizeTags(*req.Tags)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	var updated *models.Note
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		note, err := tx.OwnedNote(ctx, noteID, ownerID, true)
		if err != nil {
			return storageError(err, ErrNotFound)
		}

		oldTitle, oldContent := note.Title, note.Content
		if req.Title != nil {
			note.Title = truncate(title, models.MaxTitleLength)
		}
		if req.Content != nil {
			note.Content = truncate(*req.Content, models.MaxContentLength)
		}
		if req.Category != nil {
			note.Category = normalizeCategory(*req.Category)
		}
		if req.Tags != nil {
			note.Tags = tags
		}
		if req.Favorite != nil {
			note.Favorite = *req.Favorite
		}

		now := s.now().UTC()
		if note.Title != oldTitle || note.Content != oldContent {
			if _, err := tx.AppendRevision(ctx, note.ID, oldTitle, oldContent, now); err != nil {
				slog.ErrorContext(ctx, "note revision not recorded",
					"action", "update_note",
					"note_id", note.ID,
					"user_id", ownerID,
					"error", err,
				)
			}
		}

		note.ModifiedAt = now
		if err := tx.SaveNote(ctx, note); err != nil {
			return err
		}

		updated, err = tx.NoteByID(ctx, note.ID)
		return err
	})
	if err != nil {
		return nil, txError(err)
	}

	resp := toNoteResponse(updated, false)
	return &resp, nil
}

// DeleteNote removes an owned note together with its grants and revisions.
func (s *NoteService) DeleteNote(ctx context.Context, ownerID, noteID uint) error {
	if ownerID == 0 {
		return ErrUnauthorized
	}

	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.OwnedNote(ctx, noteID, ownerID, true); err != nil {
			return storageError(err, ErrNotFound)
		}
		return tx.DeleteNoteCascade(ctx, noteID)
	})
	return txError(err)
}

// ShareNote grants the user registered under req.Email access to an owned
// note. created is false when an existing grant had its permission changed.
func (s *NoteService) ShareNote(ctx context.Context, ownerID, noteID uint, req *dto.ShareNoteRequest) (created bool, err error) {
	if ownerID == 0 {
		return false, ErrUnauthorized
	}

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.OwnedNote(ctx, noteID, ownerID, true); err != nil {
			return storageError(err, ErrNotFound)
		}

		recipient, err := tx.UserByEmail(ctx, normalizeEmail(req.Email))
		if err != nil {
			return storageError(err, ErrRecipientNotFound)
		}
		if recipient.ID == ownerID {
			return fmt.Errorf("%w: cannot share a note with yourself", ErrInvalidOperation)
		}

		permission := req.Permission
		if !models.IsPermission(permission) {
			permission = models.PermissionView
		}

		created, err = tx.UpsertGrant(ctx, noteID, recipient.ID, permission, s.now().UTC())
		return err
	})
	if err != nil {
		return false, txError(err)
	}
	return created, nil
}

// ListSharedWithMe returns every note userID holds a grant for.
func (s *NoteService) ListSharedWithMe(ctx context.Context, userID uint) ([]dto.NoteResponse, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	var notes []models.Note
	err := s.readWithRetry(ctx, func(ctx context.Context) error {
		var err error
		notes, err = s.store.SharedWith(ctx, userID)
		return err
	})
	if err != nil {
		return nil, storageError(err, ErrNotFound)
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i], true))
	}
	return out, nil
}

// ListRevisions returns a note's revision log, oldest first, under the same
// visibility rule as GetNote.
func (s *NoteService) ListRevisions(ctx context.Context, requesterID, noteID uint) ([]dto.RevisionResponse, error) {
	if requesterID == 0 {
		return nil, ErrUnauthorized
	}

	note, _, err := s.visibleNote(ctx, requesterID, noteID)
	if err != nil {
		return nil, err
	}
	return toRevisionResponses(note.Revisions), nil
}

func (s *NoteService) visibleNote(ctx context.Context, requesterID, noteID uint) (*models.Note, bool, error) {
	note, err := s.store.NoteByID(ctx, noteID)
	if err != nil {
		return nil, false, storageError(err, ErrNotFound)
	}
	if note.UserID == requesterID {
		return note, false, nil
	}

	ok, err := s.store.HasGrant(ctx, noteID, requesterID)
	if err != nil {
		return nil, false, storageError(err, ErrNotFound)
	}
	if !ok {
		return nil, false, ErrNotFound
	}
	return note, true, nil
}

// readWithRetry retries fn with exponential backoff while it fails with a
// transient storage error.
func (s *NoteService) readWithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(uint64(s.retryAttempts-1), retry.NewExponential(s.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if store.IsTransient(err) {
			slog.WarnContext(ctx, "transient storage error, retrying", "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

func normalizeCategory(c string) string {
	if models.IsCategory(c) {
		return c
	}
	return models.CategoryPersonal
}

func normalizeTags(in []string) []string {
	tags := make([]string, 0, min(len(in), models.MaxTags))
	for _, t := range in {
		if len(tags) == models.MaxTags {
			break
		}
		tags = append(tags, truncate(strings.TrimSpace(t), models.MaxTagLength))
	}
	return tags
}

func encodeTags(tags []string) (datatypes.JSON, error) {
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
