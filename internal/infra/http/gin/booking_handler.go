package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybcn/internal/app/bookingflow"
	"staybcn/internal/app/dto"
)

type BookingHandler struct {
	Flow *bookingflow.Service
}

type createBookingRequest struct {
	UnitID        string  `json:"unit_id" binding:"required"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Adults        int     `json:"adults"`
	Children      int     `json:"children"`
	CityTaxRate   float64 `json:"city_tax_rate"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Notes         string  `json:"notes"`
	RulesAccepted bool    `json:"rules_accepted"`
}

// Create is the one-shot booking surface: a full request either confirms with
// 201 or fails with 422 listing every violated condition.
func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CityTaxRate < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city_tax_rate cannot be negative"})
		return
	}

	input := bookingflow.BookingInput{
		UnitID:        req.UnitID,
		Adults:        req.Adults,
		Children:      req.Children,
		CityTaxRate:   req.CityTaxRate,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Notes:         req.Notes,
		RulesAccepted: req.RulesAccepted,
	}
	if req.CheckIn != "" {
		parsed, err := time.Parse(queryDateLayout, req.CheckIn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in date"})
			return
		}
		input.CheckIn = parsed
	}
	if req.CheckOut != "" {
		parsed, err := time.Parse(queryDateLayout, req.CheckOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out date"})
			return
		}
		input.CheckOut = parsed
	}

	conf, err := h.Flow.Book(c.Request.Context(), input)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapConfirmation(conf))
}

var _ BookingHTTP = BookingHandler{}
