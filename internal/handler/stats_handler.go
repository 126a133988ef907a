package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
	"github.com/jengzang/pawtrack-backend-go/pkg/response"
)

// Query parameter defaults and bounds
const (
	DefaultSeriesDays   = 7
	MaxSeriesDays       = 366
	DefaultCorrelations = 5
	MaxCorrelations     = 50
)

// StatsHandler handles HTTP requests for statistics
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStatistics handles GET /api/v1/stats
func (h *StatsHandler) GetStatistics(c *gin.Context) {
	spec, ok := bindFilter(c)
	if !ok {
		return
	}

	st, err := h.service.Query(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, st)
}

// GetTimeSeries handles GET /api/v1/stats/timeseries
func (h *StatsHandler) GetTimeSeries(c *gin.Context) {
	days, ok := intQuery(c, "days", DefaultSeriesDays, 1, MaxSeriesDays)
	if !ok {
		return
	}
	spec, ok := bindFilter(c)
	if !ok {
		return
	}

	series, err := h.service.TimeSeries(c.Request.Context(), days, spec)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"days":    days,
		"buckets": series,
	})
}

// GetCorrelations handles GET /api/v1/stats/correlations
func (h *StatsHandler) GetCorrelations(c *gin.Context) {
	top, ok := intQuery(c, "top", DefaultCorrelations, 1, MaxCorrelations)
	if !ok {
		return
	}
	spec, ok := bindFilter(c)
	if !ok {
		return
	}

	corr, err := h.service.Correlations(c.Request.Context(), top, spec)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, corr)
}

// GetReport handles GET /api/v1/stats/report
func (h *StatsHandler) GetReport(c *gin.Context) {
	spec, ok := bindFilter(c)
	if !ok {
		return
	}

	report, err := h.service.Report(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, report)
}
