package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/models"
	"gorm.io/datatypes"
)

// toNoteResponse renders a note with its author and revisions attached.
// Tags that no longer decode yield an empty tag list and a null author;
// every other field is still returned.
func toNoteResponse(n *models.Note, shared bool) dto.NoteResponse {
	resp := dto.NoteResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Category:   n.Category,
		Tags:       []string{},
		Favorite:   n.Favorite,
		CreatedAt:  isoTime(n.CreatedAt),
		ModifiedAt: isoTime(n.ModifiedAt),
		Shared:     shared,
		Revisions:  toRevisionResponses(n.Revisions),
	}

	tags, err := decodeTags(n.Tags)
	if err != nil {
		slog.Error("stored note tags are corrupt", "note_id", n.ID, "error", err)
		return resp
	}
	resp.Tags = tags

	if n.Author != nil {
		author := n.Author.Username
		resp.Author = &author
	}
	return resp
}

func toRevisionResponses(revs []models.NoteRevision) []dto.RevisionResponse {
	out := make([]dto.RevisionResponse, 0, len(revs))
	for _, r := range revs {
		out = append(out, dto.RevisionResponse{
			ID:             r.ID,
			NoteID:         r.NoteID,
			Title:          r.Title,
			Content:        r.Content,
			RevisionNumber: r.RevisionNumber,
			CreatedAt:      isoTime(r.CreatedAt),
		})
	}
	return out
}

func decodeTags(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
