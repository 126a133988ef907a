package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
	"github.com/jengzang/pawtrack-backend-go/internal/stats"
	"github.com/jengzang/pawtrack-backend-go/pkg/response"
)

// MaxRecentLimit caps GET /entries/recent
const MaxRecentLimit = 100

// EntryHandler handles HTTP requests for entries
type EntryHandler struct {
	entries *service.EntryService
	stats   *service.StatsService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entries *service.EntryService, stats *service.StatsService) *EntryHandler {
	return &EntryHandler{entries: entries, stats: stats}
}

// ListEntries handles GET /api/v1/entries
func (h *EntryHandler) ListEntries(c *gin.Context) {
	spec, ok := bindFilter(c)
	if !ok {
		return
	}

	entries, err := h.stats.Filtered(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}
	total, err := h.entries.Count(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"entries": entries,
		"count":   len(entries),
		"total":   total,
		"filter":  spec,
	})
}

// CreateEntry handles POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req models.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.entries.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, result)
}

// GetEntry handles GET /api/v1/entries/:id
func (h *EntryHandler) GetEntry(c *gin.Context) {
	entry, err := h.entries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, entry)
}

// DeleteEntry handles DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id := c.Param("id")
	if err := h.entries.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// ClearEntries handles DELETE /api/v1/entries
func (h *EntryHandler) ClearEntries(c *gin.Context) {
	n, err := h.entries.Clear(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": n})
}

// RecentEntries handles GET /api/v1/entries/recent
func (h *EntryHandler) RecentEntries(c *gin.Context) {
	limit, ok := intQuery(c, "limit", stats.DefaultRecentLimit, 1, MaxRecentLimit)
	if !ok {
		return
	}
	spec, ok := bindFilter(c)
	if !ok {
		return
	}

	entries, err := h.stats.Recent(c.Request.Context(), limit, spec)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// ListFoods handles GET /api/v1/foods
func (h *EntryHandler) ListFoods(c *gin.Context) {
	foods, err := h.entries.FoodLabels(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, foods)
}
