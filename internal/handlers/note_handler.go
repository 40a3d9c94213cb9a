package handlers

import (
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// List handles GET /api/notes?category=&search=
func (h *NoteHandler) List(c *fiber.Ctx) error {
	notes, err := h.noteService.ListNotes(c.UserContext(), identity.UserID(c),
		c.Query("category", services.CategoryAll), c.Query("search"))
	if err != nil {
		return respondError(c, "list_notes", err)
	}
	return c.JSON(notes)
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	note, err := h.noteService.CreateNote(c.UserContext(), identity.UserID(c), &req)
	if err != nil {
		return respondError(c, "create_note", err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *NoteHandler) Get(c *fiber.Ctx) error {
	id, ok := noteID(c)
	if !ok {
		return noteNotFound(c)
	}

	note, err := h.noteService.GetNote(c.UserContext(), identity.UserID(c), id)
	if err != nil {
		return respondError(c, "get_note", err)
	}
	return c.JSON(note)
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	id, ok := noteID(c)
	if !ok {
		return noteNotFound(c)
	}

	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	note, err := h.noteService.UpdateNote(c.UserContext(), identity.UserID(c), id, &req)
	if err != nil {
		return respondError(c, "update_note", err)
	}
	return c.JSON(note)
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	id, ok := noteID(c)
	if !ok {
		return noteNotFound(c)
	}

	if err := h.noteService.DeleteNote(c.UserContext(), identity.UserID(c), id); err != nil {
		return respondError(c, "delete_note", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Note deleted successfully"})
}

func (h *NoteHandler) Share(c *fiber.Ctx) error {
	id, ok := noteID(c)
	if !ok {
		return noteNotFound(c)
	}

	var req dto.ShareNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, err := h.noteService.ShareNote(c.UserContext(), identity.UserID(c), id, &req)
	if err != nil {
		return respondError(c, "share_note", err)
	}
	if created {
		return c.JSON(dto.ShareNoteResponse{Message: "Note shared successfully", Status: "created"})
	}
	return c.JSON(dto.ShareNoteResponse{Message: "Share permission updated", Status: "updated"})
}

func (h *NoteHandler) SharedWithMe(c *fiber.Ctx) error {
	notes, err := h.noteService.ListSharedWithMe(c.UserContext(), identity.UserID(c))
	if err != nil {
		return respondError(c, "list_shared_notes", err)
	}
	return c.JSON(notes)
}

func (h *NoteHandler) Revisions(c *fiber.Ctx) error {
	id, ok := noteID(c)
	if !ok {
		return noteNotFound(c)
	}

	revisions, err := h.noteService.ListRevisions(c.UserContext(), identity.UserID(c), id)
	if err != nil {
		return respondError(c, "list_revisions", err)
	}
	return c.JSON(revisions)
}
