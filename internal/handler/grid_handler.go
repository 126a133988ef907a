package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
	"github.com/jengzang/pawtrack-backend-go/pkg/response"
)

// GridHandler handles HTTP requests for grid cells and achievements
type GridHandler struct {
	service *service.AchievementService
}

// NewGridHandler creates a new grid handler
func NewGridHandler(service *service.AchievementService) *GridHandler {
	return &GridHandler{service: service}
}

// GetGridCells handles GET /api/v1/grid
func (h *GridHandler) GetGridCells(c *gin.Context) {
	var q struct {
		Entries bool `form:"entries"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	cells, err := h.service.Grid(c.Request.Context(), q.Entries)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"cells": cells,
		"count": len(cells),
	})
}

// GetGridCell handles GET /api/v1/grid/cells/:id
func (h *GridHandler) GetGridCell(c *gin.Context) {
	cell, err := h.service.Cell(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, cell)
}

// GetAchievements handles GET /api/v1/achievements
func (h *GridHandler) GetAchievements(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, summary)
}

// FindPlacement handles POST /api/v1/grid/placement
func (h *GridHandler) FindPlacement(c *gin.Context) {
	var req struct {
		Lat *float64 `json:"lat" binding:"required"`
		Lng *float64 `json:"lng" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "lat and lng are required")
		return
	}

	placement, err := h.service.Placement(c.Request.Context(), models.Position{Lat: *req.Lat, Lng: *req.Lng})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, placement)
}
