package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
	"github.com/jengzang/pawtrack-backend-go/pkg/response"
)

// ProfileHandler handles HTTP requests for the dog profile
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// UpdateProfile handles PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var p models.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	saved, err := h.service.Save(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, saved)
}

// GetReminders handles GET /api/v1/profile/reminders
func (h *ProfileHandler) GetReminders(c *gin.Context) {
	reminders, err := h.service.UrgentReminders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	overdue := 0
	for _, r := range reminders {
		if r.IsOverdue {
			overdue++
		}
	}
	response.Success(c, gin.H{
		"reminders": reminders,
		"overdue":   overdue,
	})
}
