package handler

import (
	"crypto/subtle"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pawtrack-backend-go/internal/middleware"
	"github.com/jengzang/pawtrack-backend-go/pkg/response"
)

// TokenTTL is the lifetime of issued access tokens
const TokenTTL = 24 * time.Hour

// AuthHandler exchanges the configured access key for a bearer token
type AuthHandler struct {
	secret    string
	accessKey string
	now       func() time.Time
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(secret, accessKey string, now func() time.Time) *AuthHandler {
	if now == nil {
		now = time.Now
	}
	return &AuthHandler{secret: secret, accessKey: accessKey, now: now}
}

// IssueToken handles POST /api/v1/auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req struct {
		AccessKey string `json:"access_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "access_key is required")
		return
	}

	if h.accessKey == "" || subtle.ConstantTimeCompare([]byte(req.AccessKey), []byte(h.accessKey)) != 1 {
		response.Unauthorized(c, "Invalid access key")
		return
	}

	token, expires, err := middleware.IssueToken(h.secret, "owner", TokenTTL, h.now())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_at": expires,
	})
}
