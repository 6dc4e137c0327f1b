package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybcn/internal/app/bookingflow"
	"staybcn/internal/app/dto"
	"staybcn/internal/domain/booking"
	"staybcn/internal/domain/catalog"
)

type SessionHandler struct {
	Flow *bookingflow.Service
}

type updateSessionRequest struct {
	UnitID        *string  `json:"unit_id"`
	CheckIn       *string  `json:"check_in"`
	CheckOut      *string  `json:"check_out"`
	Adults        *int     `json:"adults"`
	Children      *int     `json:"children"`
	CityTaxRate   *float64 `json:"city_tax_rate"`
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	Phone         *string  `json:"phone"`
	Notes         *string  `json:"notes"`
	RulesAccepted *bool    `json:"rules_accepted"`
}

func (h SessionHandler) Create(c *gin.Context) {
	view, err := h.Flow.OpenSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, mapSessionView(view))
}

func (h SessionHandler) Get(c *gin.Context) {
	view, err := h.Flow.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionView(view))
}

func (h SessionHandler) Update(c *gin.Context) {
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CityTaxRate != nil && *req.CityTaxRate < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city_tax_rate cannot be negative"})
		return
	}

	input := bookingflow.SelectionInput{
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
	var err error
	if input.CheckIn, err = parseOptionalDate(req.CheckIn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in date"})
		return
	}
	if input.CheckOut, err = parseOptionalDate(req.CheckOut); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out date"})
		return
	}

	view, err := h.Flow.UpdateSelection(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionView(view))
}

func (h SessionHandler) Confirm(c *gin.Context) {
	conf, err := h.Flow.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapConfirmation(conf))
}

func (h SessionHandler) Reset(c *gin.Context) {
	view, err := h.Flow.ResetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSessionView(view))
}

// parseOptionalDate maps an absent field to nil and an empty string to the zero
// time, which the draft treats as "date unset".
func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw == "" {
		return &time.Time{}, nil
	}
	parsed, err := time.Parse(queryDateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func mapSessionView(view bookingflow.SessionView) dto.Session {
	return dto.MapSession(view.ID, view.State, view.Draft, view.Derived, view.Confirmation)
}

func writeSessionError(c *gin.Context, err error) {
	var validation *booking.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"violations": mapViolations(validation.Violations)})
	case errors.Is(err, bookingflow.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrUnitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrSessionConfirmed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func mapViolations(violations []booking.Violation) []dto.Violation {
	mapped := make([]dto.Violation, 0, len(violations))
	for _, v := range violations {
		mapped = append(mapped, dto.Violation{Code: string(v), Class: v.Class()})
	}
	return mapped
}

var _ SessionHTTP = SessionHandler{}
