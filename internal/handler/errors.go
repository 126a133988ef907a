package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/repository"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
	"github.com/jengzang/pawtrack-backend-go/pkg/response"
)

var badRequestErrors = []error{
	models.ErrInvalidCoordinate,
	models.ErrInvalidEntry,
	models.ErrInvalidFoodLabel,
	models.ErrInvalidFilter,
	models.ErrInvalidProfile,
	models.ErrInvalidCellID,
	service.ErrInvalidBackup,
}

// writeError maps domain errors to status codes. Anything unrecognized is a
// 500 whose detail is attached to the context for the request logger only.
func writeError(c *gin.Context, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			response.BadRequest(c, err.Error())
			return
		}
	}
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, "Not found")
		return
	}

	c.Error(err)
	response.InternalError(c, "Internal server error")
}

// bindFilter reads the period/category/food query parameters
func bindFilter(c *gin.Context) (models.FilterSpec, bool) {
	var q models.EntryFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return models.FilterSpec{}, false
	}
	spec, err := q.ToSpec()
	if err != nil {
		writeError(c, err)
		return models.FilterSpec{}, false
	}
	return spec, true
}

// intQuery reads an integer query parameter, falling back to def when absent
// and clamping to [min, max]
func intQuery(c *gin.Context, key string, def, min, max int) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+key+" parameter")
		return 0, false
	}
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n, true
}
