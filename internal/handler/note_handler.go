package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
	"github.com/jengzang/pawtrack-backend-go/pkg/response"
)

// NoteHandler handles HTTP requests for saved notes
type NoteHandler struct {
	service *service.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

type noteRequest struct {
	Text string `json:"text" form:"text"`
}

// ListNotes handles GET /api/v1/notes
func (h *NoteHandler) ListNotes(c *gin.Context) {
	notes, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, notes)
}

// AddNote handles POST /api/v1/notes
func (h *NoteHandler) AddNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	notes, err := h.service.Add(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, notes)
}

// RemoveNote handles DELETE /api/v1/notes?text=...
func (h *NoteHandler) RemoveNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindQuery(&req); err != nil || req.Text == "" {
		response.BadRequest(c, "text is required")
		return
	}

	notes, err := h.service.Remove(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, notes)
}
