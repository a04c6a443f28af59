package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/response"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/setting"
)

type Handler struct {
	service setting.Service
}

func NewHandler(service setting.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.service.GetOrDefault(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSettingsResponse(res.Settings, res.Source))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	s, err := h.service.Create(c.Request.Context(), setting.Settings{
		MinBookingLength:    body.MinBookingLength,
		MaxBookingLength:    body.MaxBookingLength,
		MaxGuestsPerBooking: body.MaxGuestsPerBooking,
		BreakfastPrice:      *body.BreakfastPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewSettingsResponse(s, setting.SourcePersisted))
}

func (h *Handler) Update(c *gin.Context) {
	var body UpdateSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	s, err := h.service.Update(c.Request.Context(), setting.UpdateRequest{
		MinBookingLength:    body.MinBookingLength,
		MaxBookingLength:    body.MaxBookingLength,
		MaxGuestsPerBooking: body.MaxGuestsPerBooking,
		BreakfastPrice:      body.BreakfastPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSettingsResponse(s, setting.SourcePersisted))
}

func (h *Handler) Reset(c *gin.Context) {
	s, err := h.service.Reset(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSettingsResponse(s, setting.SourcePersisted))
}
