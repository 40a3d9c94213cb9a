package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"pgregory.net/rapid"
)

// stepClock advances by one minute on every reading.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

type noteFixture struct {
	db  *gorm.DB
	st  *store.Store
	svc *NoteService
}

func newNoteFixture(t *testing.T) *noteFixture {
	t.Helper()
	db := dbtest.Open(t)
	st := store.New(db)
	svc := NewNoteService(st, &config.Config{ListRetryAttempts: 3, ListRetryBase: time.Millisecond})
	clock := &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc.now = clock.Now
	return &noteFixture{db: db, st: st, svc: svc}
}

func (f *noteFixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@x.com", Provider: models.ProviderEmail}
	require.NoError(t, f.st.CreateUser(context.Background(), u))
	return u
}

func (f *noteFixture) note(t *testing.T, owner uint, req dto.CreateNoteRequest) *dto.NoteResponse {
	t.Helper()
	n, err := f.svc.CreateNote(context.Background(), owner, &req)
	require.NoError(t, err)
	return n
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool     { return &b }

func TestCreateNoteNormalizesInput(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	n, err := f.svc.CreateNote(ctx, alice.ID, &dto.CreateNoteRequest{
		Title:    "  " + strings.Repeat("t", 120) + "  ",
		Content:  strings.Repeat("c", 10050),
		Category: "recipes",
		Tags:     dto.TagList{" one ", strings.Repeat("x", 30), "3", "4", "5", "6", "7"},
		Favorite: true,
	})
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("t", 100), n.Title)
	assert.Len(t, n.Content, 10000)
	assert.Equal(t, models.CategoryPersonal, n.Category)
	assert.Equal(t, []string{"one", strings.Repeat("x", 20), "3", "4", "5"}, n.Tags)
	assert.True(t, n.Favorite)
	require.NotNil(t, n.Author)
	assert.Equal(t, "alice", *n.Author)
	assert.False(t, n.Shared)
	assert.Empty(t, n.Revisions)
	assert.Equal(t, n.CreatedAt, n.ModifiedAt)
}

func TestCreateNoteDefaults(t *testing.T) {
	f := newNoteFixture(t)
	alice := f.user(t, "alice")

	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A"})
	assert.Equal(t, models.CategoryPersonal, n.Category)
	assert.Equal(t, []string{}, n.Tags)
	assert.Equal(t, "", n.Content)
	assert.False(t, n.Favorite)
}

func TestCreateNoteRejects(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	_, err := f.svc.CreateNote(ctx, alice.ID, &dto.CreateNoteRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.CreateNote(ctx, 0, &dto.CreateNoteRequest{Title: "A"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateNoteBoundsProperty(t *testing.T) {
	f := newNoteFixture(t)
	alice := f.user(t, "alice")

	rapid.Check(t, func(rt *rapid.T) {
		req := dto.CreateNoteRequest{
			Title:    rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 ]{0,149}`).Draw(rt, "title"),
			Content:  rapid.StringN(0, 10200, -1).Draw(rt, "content"),
			Category: rapid.SampledFrom([]string{"personal", "work", "ideas", "", "other"}).Draw(rt, "category"),
			Tags:     rapid.SliceOfN(rapid.StringN(0, 40, -1), 0, 9).Draw(rt, "tags"),
		}

		n, err := f.svc.CreateNote(context.Background(), alice.ID, &req)
		if err != nil {
			rt.Fatalf("create: %v", err)
		}
		if utf8.RuneCountInString(n.Title) > models.MaxTitleLength {
			rt.Fatalf("title has %d characters", utf8.RuneCountInString(n.Title))
		}
		if utf8.RuneCountInString(n.Content) > models.MaxContentLength {
			rt.Fatalf("content has %d characters", utf8.RuneCountInString(n.Content))
		}
		if len(n.Tags) > models.MaxTags {
			rt.Fatalf("%d tags", len(n.Tags))
		}
		for _, tag := range n.Tags {
			if utf8.RuneCountInString(tag) > models.MaxTagLength {
				rt.Fatalf("tag %q too long", tag)
			}
		}
		if !models.IsCategory(n.Category) {
			rt.Fatalf("category %q", n.Category)
		}
	})
}

func TestNormalizeTagsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.SliceOf(rapid.String()).Draw(rt, "tags")
		out := normalizeTags(in)

		if len(out) > models.MaxTags || len(out) != min(len(in), models.MaxTags) {
			rt.Fatalf("got %d tags from %d", len(out), len(in))
		}
		for i, tag := range out {
			want := strings.TrimSpace(in[i])
			if !strings.HasPrefix(want, tag) || utf8.RuneCountInString(tag) > models.MaxTagLength {
				rt.Fatalf("tag %d: %q from %q", i, tag, in[i])
			}
		}
	})
}

func TestUpdateNoteRevisionHistory(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A", Content: "x"})

	updated, err := f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{Content: strPtr("y")})
	require.NoError(t, err)
	assert.Equal(t, "y", updated.Content)
	require.Len(t, updated.Revisions, 1)
	assert.Equal(t, "x", updated.Revisions[0].Content)
	assert.Equal(t, "A", updated.Revisions[0].Title)
	assert.Equal(t, 1, updated.Revisions[0].RevisionNumber)
	assert.Equal(t, n.ID, updated.Revisions[0].NoteID)

	updated, err = f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{Content: strPtr("z")})
	require.NoError(t, err)
	require.Len(t, updated.Revisions, 2)
	assert.Equal(t, 2, updated.Revisions[1].RevisionNumber)
	assert.Equal(t, "y", updated.Revisions[1].Content)

	updated, err = f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{Title: strPtr("B")})
	require.NoError(t, err)
	require.Len(t, updated.Revisions, 3)
	assert.Equal(t, "A", updated.Revisions[2].Title)
	assert.Equal(t, "z", updated.Revisions[2].Content)

	revs, err := f.svc.ListRevisions(ctx, alice.ID, n.ID)
	require.NoError(t, err)
	assert.Len(t, revs, 3)
}

func TestUpdateNoteWithoutContentChangeSkipsRevision(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A", Content: "x", Category: "work"})

	updated, err := f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{
		Favorite: boolPtr(true),
		Category: strPtr("ideas"),
		Tags:     &dto.TagList{"t"},
	})
	require.NoError(t, err)
	assert.True(t, updated.Favorite)
	assert.Equal(t, "ideas", updated.Category)
	assert.Equal(t, []string{"t"}, updated.Tags)
	assert.Empty(t, updated.Revisions)
	assert.NotEqual(t, n.ModifiedAt, updated.ModifiedAt)
	assert.Equal(t, n.CreatedAt, updated.CreatedAt)

	// Same values still refresh modified_at.
	again, err := f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{Title: strPtr(" A "), Content: strPtr("x")})
	require.NoError(t, err)
	assert.Empty(t, again.Revisions)
	assert.NotEqual(t, updated.ModifiedAt, again.ModifiedAt)

	coerced, err := f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{Category: strPtr("bogus")})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryPersonal, coerced.Category)
}

func TestUpdateNoteRejects(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A"})

	_, err := f.svc.UpdateNote(ctx, bob.ID, n.ID, &dto.UpdateNoteRequest{Title: strPtr("mine now")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.UpdateNote(ctx, alice.ID, n.ID+100, &dto.UpdateNoteRequest{Title: strPtr("B")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{Title: strPtr("  ")})
	assert.ErrorIs(t, err, ErrValidation)

	// An edit grant does not allow updates.
	_, err = f.svc.ShareNote(ctx, alice.ID, n.ID, &dto.ShareNoteRequest{Email: "bob@x.com", Permission: "edit"})
	require.NoError(t, err)
	_, err = f.svc.UpdateNote(ctx, bob.ID, n.ID, &dto.UpdateNoteRequest{Content: strPtr("edited")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteNote(ctx, bob.ID, n.ID), ErrNotFound)
}

func TestUpdateNoteSurvivesRevisionFailure(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A", Content: "x"})

	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_revision", func(tx *gorm.DB) {
		if tx.Statement.Table == "note_revisions" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	updated, err := f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{Content: strPtr("y")})
	require.NoError(t, err)
	assert.Equal(t, "y", updated.Content)
	assert.Empty(t, updated.Revisions)
}

func TestUpdateNoteFailureRollsBack(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A", Content: "x"})

	require.NoError(t, f.db.Callback().Update().Before("gorm:update").Register("test:fail_note_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "notes" {
			_ = tx.AddError(errors.New("constraint violated"))
		}
	}))

	_, err := f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{Content: strPtr("y")})
	require.Error(t, err)
	assert.ErrorIs(t, Kind(err), ErrInternal)

	got, err := f.svc.GetNote(ctx, alice.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Content)
	assert.Empty(t, got.Revisions)
}

func TestDeleteNote(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A", Content: "x"})

	_, err := f.svc.ShareNote(ctx, alice.ID, n.ID, &dto.ShareNoteRequest{Email: "bob@x.com"})
	require.NoError(t, err)
	_, err = f.svc.UpdateNote(ctx, alice.ID, n.ID, &dto.UpdateNoteRequest{Content: strPtr("y")})
	require.NoError(t, err)

	_, err = f.svc.GetNote(ctx, bob.ID, n.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteNote(ctx, bob.ID, n.ID), ErrNotFound)
	require.NoError(t, f.svc.DeleteNote(ctx, alice.ID, n.ID))

	_, err = f.svc.GetNote(ctx, bob.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.GetNote(ctx, alice.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var grants int64
	require.NoError(t, f.db.Model(&models.SharedNote{}).Where("note_id = ?", n.ID).Count(&grants).Error)
	assert.Zero(t, grants)

	assert.ErrorIs(t, f.svc.DeleteNote(ctx, alice.ID, n.ID), ErrNotFound)
}

func TestDeleteNoteRollsBackOnFailure(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A"})
	_, err := f.svc.ShareNote(ctx, alice.ID, n.ID, &dto.ShareNoteRequest{Email: "bob@x.com"})
	require.NoError(t, err)

	require.NoError(t, f.db.Callback().Delete().Before("gorm:delete").Register("test:fail_note_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "notes" {
			_ = tx.AddError(errors.New("lock timeout"))
		}
	}))

	require.Error(t, f.svc.DeleteNote(ctx, alice.ID, n.ID))

	got, err := f.svc.GetNote(ctx, bob.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, got.Shared)
}

func TestShareNote(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	u2 := f.user(t, "u2")
	n := f.note(t, owner.ID, dto.CreateNoteRequest{Title: "A"})

	created, err := f.svc.ShareNote(ctx, owner.ID, n.ID, &dto.ShareNoteRequest{Email: "u2@x.com", Permission: "edit"})
	require.NoError(t, err)
	assert.True(t, created)

	grant, err := f.st.Grant(ctx, n.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionEdit, grant.Permission)

	created, err = f.svc.ShareNote(ctx, owner.ID, n.ID, &dto.ShareNoteRequest{Email: "U2@x.com ", Permission: "admin"})
	require.NoError(t, err)
	assert.False(t, created)

	var rows []models.SharedNote
	require.NoError(t, f.db.Where("note_id = ?", n.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, u2.ID, rows[0].UserID)
	assert.Equal(t, models.PermissionView, rows[0].Permission)
}

func TestShareNoteRejects(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	other := f.user(t, "other")
	n := f.note(t, owner.ID, dto.CreateNoteRequest{Title: "A"})

	_, err := f.svc.ShareNote(ctx, other.ID, n.ID, &dto.ShareNoteRequest{Email: "owner@x.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.ShareNote(ctx, owner.ID, n.ID, &dto.ShareNoteRequest{Email: "ghost@x.com"})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = f.svc.ShareNote(ctx, owner.ID, n.ID, &dto.ShareNoteRequest{Email: "owner@x.com"})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = f.svc.ShareNote(ctx, 0, n.ID, &dto.ShareNoteRequest{Email: "other@x.com"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetNoteVisibility(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A"})

	got, err := f.svc.GetNote(ctx, alice.ID, n.ID)
	require.NoError(t, err)
	assert.False(t, got.Shared)

	_, err = f.svc.GetNote(ctx, bob.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.ListRevisions(ctx, bob.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.ShareNote(ctx, alice.ID, n.ID, &dto.ShareNoteRequest{Email: "bob@x.com"})
	require.NoError(t, err)

	got, err = f.svc.GetNote(ctx, bob.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, got.Shared)
	require.NotNil(t, got.Author)
	assert.Equal(t, "alice", *got.Author)

	_, err = f.svc.GetNote(ctx, carol.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.GetNote(ctx, carol.ID, n.ID+999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNotesFilters(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	work := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "Quarterly plan", Category: "work", Favorite: true})
	ideas := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "App idea", Content: "a PLANNER for cats", Category: "ideas"})
	personal := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "Groceries", Favorite: true})
	f.note(t, bob.ID, dto.CreateNoteRequest{Title: "Bob's plan", Favorite: true})

	all, err := f.svc.ListNotes(ctx, alice.ID, "all", "")
	require.NoError(t, err)
	assert.Equal(t, []uint{personal.ID, ideas.ID, work.ID}, noteIDs(all))

	def, err := f.svc.ListNotes(ctx, alice.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, noteIDs(all), noteIDs(def))

	favs, err := f.svc.ListNotes(ctx, alice.ID, "favorites", "")
	require.NoError(t, err)
	assert.Equal(t, []uint{personal.ID, work.ID}, noteIDs(favs))

	// Touching the older favorite moves it to the front.
	_, err = f.svc.UpdateNote(ctx, alice.ID, work.ID, &dto.UpdateNoteRequest{Favorite: boolPtr(true)})
	require.NoError(t, err)
	favs, err = f.svc.ListNotes(ctx, alice.ID, "favorites", "")
	require.NoError(t, err)
	assert.Equal(t, []uint{work.ID, personal.ID}, noteIDs(favs))

	byCat, err := f.svc.ListNotes(ctx, alice.ID, "ideas", "")
	require.NoError(t, err)
	assert.Equal(t, []uint{ideas.ID}, noteIDs(byCat))

	search, err := f.svc.ListNotes(ctx, alice.ID, "all", "plan")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{work.ID, ideas.ID}, noteIDs(search))

	none, err := f.svc.ListNotes(ctx, alice.ID, "work", "groceries")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = f.svc.ListNotes(ctx, alice.ID, "archived", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.ListNotes(ctx, 0, "all", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListNotesRetriesTransientErrors(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A"})

	var calls, failures atomic.Int32
	failures.Store(2)
	require.NoError(t, f.db.Callback().Query().Before("gorm:query").Register("test:flaky_notes", func(tx *gorm.DB) {
		if tx.Statement.Table != "notes" {
			return
		}
		calls.Add(1)
		if failures.Add(-1) >= 0 {
			_ = tx.AddError(driver.ErrBadConn)
		}
	}))

	notes, err := f.svc.ListNotes(ctx, alice.ID, "all", "")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.EqualValues(t, 3, calls.Load())

	calls.Store(0)
	failures.Store(10)
	_, err = f.svc.ListNotes(ctx, alice.ID, "all", "")
	assert.ErrorIs(t, err, ErrTransientStorage)
	assert.EqualValues(t, 3, calls.Load())

	calls.Store(0)
	_, err = f.svc.ListNotes(ctx, alice.ID, "nope", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, calls.Load())
}

func TestListNotesDoesNotRetryPermanentErrors(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	var calls atomic.Int32
	require.NoError(t, f.db.Callback().Query().Before("gorm:query").Register("test:broken_notes", func(tx *gorm.DB) {
		if tx.Statement.Table == "notes" {
			calls.Add(1)
			_ = tx.AddError(errors.New("no such column: favorite"))
		}
	}))

	_, err := f.svc.ListNotes(ctx, alice.ID, "favorites", "")
	require.Error(t, err)
	assert.ErrorIs(t, Kind(err), ErrInternal)
	assert.EqualValues(t, 1, calls.Load())
}

func TestCorruptTagsDegradeGracefully(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	n := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "A", Content: "x", Tags: dto.TagList{"ok"}})

	require.NoError(t, f.db.Exec("UPDATE notes SET tags = ? WHERE id = ?", "{not json", n.ID).Error)

	got, err := f.svc.GetNote(ctx, alice.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Tags)
	assert.Nil(t, got.Author)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "x", got.Content)
	assert.NotEmpty(t, got.CreatedAt)

	list, err := f.svc.ListNotes(ctx, alice.ID, "all", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{}, list[0].Tags)
}

func TestListSharedWithMe(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	first := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "first"})
	second := f.note(t, alice.ID, dto.CreateNoteRequest{Title: "second"})
	f.note(t, alice.ID, dto.CreateNoteRequest{Title: "private"})

	_, err := f.svc.ShareNote(ctx, alice.ID, first.ID, &dto.ShareNoteRequest{Email: "bob@x.com"})
	require.NoError(t, err)
	_, err = f.svc.ShareNote(ctx, alice.ID, second.ID, &dto.ShareNoteRequest{Email: "bob@x.com", Permission: "edit"})
	require.NoError(t, err)
	_, err = f.svc.UpdateNote(ctx, alice.ID, second.ID, &dto.UpdateNoteRequest{Content: strPtr("v2")})
	require.NoError(t, err)

	shared, err := f.svc.ListSharedWithMe(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, shared, 2)
	assert.Equal(t, []uint{first.ID, second.ID}, noteIDs(shared))
	for _, n := range shared {
		assert.True(t, n.Shared)
	}
	assert.Len(t, shared[1].Revisions, 1)

	mine, err := f.svc.ListSharedWithMe(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func noteIDs(notes []dto.NoteResponse) []uint {
	ids := make([]uint, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}
