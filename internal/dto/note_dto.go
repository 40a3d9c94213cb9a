package dto

import (
	"encoding/json"
	"fmt"
)

// TagList accepts whatever the client sent under "tags". Anything other
// than a JSON array decodes to an empty list; array elements that are not
// strings are kept in their JSON text form.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = TagList{}
		return nil
	}

	tags := make(TagList, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			tags = append(tags, s)
			continue
		}
		var v interface{}
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		tags = append(tags, fmt.Sprint(v))
	}
	*t = tags
	return nil
}

type CreateNoteRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Tags     TagList `json:"tags"`
	Favorite bool    `json:"favorite"`
}

// UpdateNoteRequest carries only the fields present in the body; nil means
// leave unchanged.
type UpdateNoteRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Category *string  `json:"category"`
	Tags     *TagList `json:"tags"`
	Favorite *bool    `json:"favorite"`
}

type ShareNoteRequest struct {
	Email      string `json:"email"`
	Permission string `json:"permission"`
}

type ShareNoteResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type NoteResponse struct {
	ID         uint               `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Category   string             `json:"category"`
	Tags       []string           `json:"tags"`
	Favorite   bool               `json:"favorite"`
	CreatedAt  string             `json:"created_at"`
	ModifiedAt string             `json:"modified_at"`
	Author     *string            `json:"author"`
	Shared     bool               `json:"shared"`
	Revisions  []RevisionResponse `json:"revisions"`
}

type RevisionResponse struct {
	ID             uint   `json:"id"`
	NoteID         uint   `json:"noteId"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	RevisionNumber int    `json:"revisionNumber"`
	CreatedAt      string `json:"createdAt"`
}
