package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybcn/internal/app/dto"
	"staybcn/internal/domain/catalog"
	"staybcn/internal/domain/shared/daterange"
)

const (
	queryDateLayout     = "2006-01-02"
	defaultCalendarDays = 90
)

type UnitHandler struct {
	Catalog catalog.Catalog
	Now     func() time.Time
}

func (h UnitHandler) List(c *gin.Context) {
	units, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MapUnitCollection(units, c.Query("lang")))
}

func (h UnitHandler) Get(c *gin.Context) {
	unit, err := h.Catalog.ByID(c.Request.Context(), catalog.UnitID(c.Param("id")))
	if errors.Is(err, catalog.ErrUnitNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MapUnit(unit, c.Query("lang")))
}

// Calendar renders per-day availability for a window, defaulting to the next
// 90 days when no bounds are given.
func (h UnitHandler) Calendar(c *gin.Context) {
	unit, err := h.Catalog.ByID(c.Request.Context(), catalog.UnitID(c.Param("id")))
	if errors.Is(err, catalog.ErrUnitNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	from := daterange.Day(h.now())
	to := from.AddDate(0, 0, defaultCalendarDays)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		from = daterange.Day(parsed)
		to = from.AddDate(0, 0, defaultCalendarDays)
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		to = daterange.Day(parsed)
	}
	if !to.After(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be after from"})
		return
	}

	c.JSON(http.StatusOK, dto.MapCalendar(unit, from, to))
}

func (h UnitHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ UnitHTTP = UnitHandler{}
