package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
	"github.com/jengzang/pawtrack-backend-go/pkg/response"
)

// Backup transfer settings
const (
	MaxBackupSize  = 32 << 20
	BackupFilename = "pawtrack-backup.json"
)

// BackupHandler handles HTTP requests for export and restore
type BackupHandler struct {
	service *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(service *service.BackupService) *BackupHandler {
	return &BackupHandler{service: service}
}

// ExportBackup handles GET /api/v1/backup. The body is the raw backup
// document, not the response envelope, so it can be saved and re-imported.
func (h *BackupHandler) ExportBackup(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), &buf); err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", BackupFilename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

// ImportBackup handles POST /api/v1/backup
func (h *BackupHandler) ImportBackup(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, MaxBackupSize)

	result, err := h.service.Import(c.Request.Context(), body)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, result)
}
