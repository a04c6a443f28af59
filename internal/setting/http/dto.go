package http

import (
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/setting"
)

type SettingsResponse struct {
	MinBookingLength    int       `json:"minBookingLength"`
	MaxBookingLength    int       `json:"maxBookingLength"`
	MaxGuestsPerBooking int       `json:"maxGuestsPerBooking"`
	BreakfastPrice      float64   `json:"breakfastPrice"`
	Source              string    `json:"source"`
	CreatedAt           time.Time `json:"createdAt,omitzero"`
	UpdatedAt           time.Time `json:"updatedAt,omitzero"`
}

func NewSettingsResponse(s *setting.Settings, source setting.Source) SettingsResponse {
	return SettingsResponse{
		MinBookingLength:    s.MinBookingLength,
		MaxBookingLength:    s.MaxBookingLength,
		MaxGuestsPerBooking: s.MaxGuestsPerBooking,
		BreakfastPrice:      s.BreakfastPrice,
		Source:              string(source),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

type CreateSettingsRequest struct {
	MinBookingLength    int      `json:"minBookingLength" binding:"required,min=1"`
	MaxBookingLength    int      `json:"maxBookingLength" binding:"required,min=1"`
	MaxGuestsPerBooking int      `json:"maxGuestsPerBooking" binding:"required,min=1"`
	BreakfastPrice      *float64 `json:"breakfastPrice" binding:"required,min=0"`
}

type UpdateSettingsRequest struct {
	MinBookingLength    *int     `json:"minBookingLength" binding:"omitempty,min=1"`
	MaxBookingLength    *int     `json:"maxBookingLength" binding:"omitempty,min=1"`
	MaxGuestsPerBooking *int     `json:"maxGuestsPerBooking" binding:"omitempty,min=1"`
	BreakfastPrice      *float64 `json:"breakfastPrice" binding:"omitempty,min=0"`
}
