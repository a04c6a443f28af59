package setting

import (
	"net/http"
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "settings not found")
	ErrAlreadyExists = apperror.New(http.StatusConflict, "settings already exist")
	ErrInvalidLimits = apperror.New(http.StatusBadRequest, "booking length and guest limits must be at least 1")
	ErrMinAboveMax   = apperror.New(http.StatusBadRequest, "minBookingLength cannot exceed maxBookingLength")
	ErrInvalidPrice  = apperror.New(http.StatusBadRequest, "breakfastPrice cannot be negative")
)

// Source tells whether settings were read from storage or synthesized.
type Source string

const (
	SourcePersisted Source = "persisted"
	SourceDefault   Source = "default"
)

// Settings is the single business configuration record.
type Settings struct {
	MinBookingLength    int
	MaxBookingLength    int
	MaxGuestsPerBooking int
	BreakfastPrice      float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Result pairs the effective settings with where they came from.
type Result struct {
	Settings *Settings
	Source   Source
}

// Defaults returns the values used when nothing has been persisted.
func Defaults() *Settings {
	return &Settings{
		MinBookingLength:    1,
		MaxBookingLength:    30,
		MaxGuestsPerBooking: 10,
		BreakfastPrice:      15,
	}
}

// Validate checks the record as a whole.
func (s *Settings) Validate() error {
	if s.MinBookingLength < 1 || s.MaxBookingLength < 1 || s.MaxGuestsPerBooking < 1 {
		return ErrInvalidLimits
	}
	if s.MinBookingLength > s.MaxBookingLength {
		return ErrMinAboveMax
	}
	if s.BreakfastPrice < 0 {
		return ErrInvalidPrice
	}
	return nil
}
