package booking

import (
	"net/http"
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrCabinNotFound    = apperror.New(http.StatusNotFound, "cabin not found")
	ErrGuestNotFound    = apperror.New(http.StatusNotFound, "guest not found")
	ErrInvalidID        = apperror.New(http.StatusBadRequest, "invalid cabin or guest id format")
	ErrCapacityExceeded = apperror.New(http.StatusUnprocessableEntity, "number of guests exceeds the maximum capacity of the cabin")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "startDate and endDate are required and endDate must be after startDate")
	ErrInvalidQuantity  = apperror.New(http.StatusBadRequest, "numNights and numGuests must be at least 1 and prices cannot be negative")
	ErrPricingRequired  = apperror.New(http.StatusBadRequest, "numNights, cabinPrice and totalPrice are required")
	ErrStayTooShort     = apperror.New(http.StatusBadRequest, "stay is shorter than the minimum booking length")
	ErrStayTooLong      = apperror.New(http.StatusBadRequest, "stay is longer than the maximum booking length")
	ErrTooManyGuests    = apperror.New(http.StatusBadRequest, "number of guests exceeds the maximum guests per booking")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "status must be one of unconfirmed, confirmed, checked-in, checked-out")
	ErrTransition       = apperror.New(http.StatusConflict, "status change is not allowed from the current status")
	ErrOverlap          = apperror.New(http.StatusConflict, "cabin is already booked for an overlapping date range")
)

// Booking is a reservation of one cabin by one guest over a date range.
type Booking struct {
	ID              string
	CabinID         string
	GuestID         string
	StartDate       time.Time
	EndDate         time.Time
	NumNights       int
	NumGuests       int
	CabinPrice      float64
	ExtrasPrice     float64
	TotalPrice      float64
	Status          Status
	HasBreakfast    bool
	IsPaid          bool
	PaymentIntentID string
	Observations    string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined on reads.
	Cabin *CabinInfo
	Guest *GuestInfo
}

// CabinInfo is the part of a cabin shown alongside a booking.
type CabinInfo struct {
	ID           string
	Name         string
	Image        string
	MaxCapacity  int
	RegularPrice float64
	Discount     float64
}

// GuestInfo is the part of a guest shown alongside a booking.
type GuestInfo struct {
	ID          string
	FullName    string
	Email       string
	Nationality string
	NationalID  string
	CountryFlag string
	PhoneNumber string
}

// DateRange is the occupied span of one booking.
type DateRange struct {
	BookingID string
	StartDate time.Time
	EndDate   time.Time
	Status    Status
}

// Patch lists the columns a narrow update writes; nil fields are left alone.
type Patch struct {
	Status          *Status
	IsPaid          *bool
	PaymentIntentID *string
}

func (p Patch) empty() bool {
	return p.Status == nil && p.IsPaid == nil && p.PaymentIntentID == nil
}

type Filter struct {
	Status    Status
	CabinID   string
	GuestID   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
