package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/internal/application"
	"github.com/oksasatya/multitenant-notes/pkg/response"
)

type NoteHandler struct {
	Svc    *application.NoteService
	Logger *logrus.Logger
}

func NewNoteHandler(svc *application.NoteService, logger *logrus.Logger) *NoteHandler {
	return &NoteHandler{Svc: svc, Logger: logger}
}

// List GET /notes
func (h *NoteHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	list, err := h.Svc.List(c.Request.Context(), p)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	notes := make([]noteDTO, 0, len(list.Notes))
	for _, n := range list.Notes {
		notes = append(notes, toNoteDTO(n))
	}
	response.Success(c, http.StatusOK, gin.H{
		"notes":  notes,
		"count":  len(notes),
		"tenant": toTenantDTO(list.Tenant),
		"usage":  toUsageDTO(list.Usage),
	}, "notes", nil)
}

// Get GET /notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var uri noteURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "Invalid note ID", err)
		return
	}
	n, err := h.Svc.Get(c.Request.Context(), p, uri.ID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"note": toNoteDTO(n)}, "note", nil)
}

// Create POST /notes {title, content}
func (h *NoteHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input data", err)
		return
	}
	n, err := h.Svc.Create(c.Request.Context(), p, req.Title, req.Content)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"note": toNoteDTO(n)}, "Note created successfully", nil)
}

// Update PUT /notes/:id {title?, content?}
func (h *NoteHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var uri noteURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "Invalid note ID", err)
		return
	}
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input data", err)
		return
	}
	n, err := h.Svc.Update(c.Request.Context(), p, uri.ID, req.Title, req.Content)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"note": toNoteDTO(n)}, "Note updated successfully", nil)
}

// Delete DELETE /notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var uri noteURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "Invalid note ID", err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), p, uri.ID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true, "id": uri.ID}, "Note deleted successfully", nil)
}
