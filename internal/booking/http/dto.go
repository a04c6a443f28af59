package http

import (
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/booking"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Status  string `form:"status" binding:"omitempty,oneof=unconfirmed confirmed checked-in checked-out"`
	CabinID string `form:"cabinId" binding:"omitempty,uuid"`
	GuestID string `form:"guestId" binding:"omitempty,uuid"`
	SortBy  string `form:"sortBy" binding:"omitempty,oneof=startDate endDate createdAt totalPrice numGuests numNights status"`
}

// SortDirection keeps the dashboard convention: an explicit sortBy sorts ascending unless asked otherwise.
func (r ListBookingsRequest) SortDirection() string {
	if r.SortBy != "" && r.SortOrder == "" {
		return "ASC"
	}
	return r.Direction()
}

// DateQuery is the ?date= parameter of the temporal endpoints.
type DateQuery struct {
	Date string `form:"date" binding:"required"`
}

type CabinTag struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	MaxCapacity  int     `json:"maxCapacity"`
	RegularPrice float64 `json:"regularPrice"`
	Discount     float64 `json:"discount"`
}

type GuestTag struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Nationality string `json:"nationality"`
	NationalID  string `json:"nationalID"`
	CountryFlag string `json:"countryFlag"`
	PhoneNumber string `json:"phoneNumber"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	CabinID         string    `json:"cabinId"`
	GuestID         string    `json:"guestId"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	NumNights       int       `json:"numNights"`
	NumGuests       int       `json:"numGuests"`
	CabinPrice      float64   `json:"cabinPrice"`
	ExtrasPrice     float64   `json:"extrasPrice"`
	TotalPrice      float64   `json:"totalPrice"`
	Status          string    `json:"status"`
	HasBreakfast    bool      `json:"hasBreakfast"`
	IsPaid          bool      `json:"isPaid"`
	PaymentIntentID string    `json:"paymentIntentId"`
	Observations    string    `json:"observations"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Cabin           *CabinTag `json:"cabin,omitempty"`
	Guest           *GuestTag `json:"guest,omitempty"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		CabinID:         b.CabinID,
		GuestID:         b.GuestID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		NumNights:       b.NumNights,
		NumGuests:       b.NumGuests,
		CabinPrice:      b.CabinPrice,
		ExtrasPrice:     b.ExtrasPrice,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		HasBreakfast:    b.HasBreakfast,
		IsPaid:          b.IsPaid,
		PaymentIntentID: b.PaymentIntentID,
		Observations:    b.Observations,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if c := b.Cabin; c != nil {
		resp.Cabin = &CabinTag{
			ID: c.ID, Name: c.Name, Image: c.Image,
			MaxCapacity: c.MaxCapacity, RegularPrice: c.RegularPrice, Discount: c.Discount,
		}
	}
	if g := b.Guest; g != nil {
		resp.Guest = &GuestTag{
			ID: g.ID, FullName: g.FullName, Email: g.Email, Nationality: g.Nationality,
			NationalID: g.NationalID, CountryFlag: g.CountryFlag, PhoneNumber: g.PhoneNumber,
		}
	}
	return resp
}

func newBookingResponses(list []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(list))
	for i, b := range list {
		items[i] = NewBookingResponse(b)
	}
	return items
}

type DateRangeResponse struct {
	BookingID string    `json:"bookingId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
}

// CreateBookingRequest leaves numeric checks to the booking service so
// they surface with the domain error codes. NumNights, CabinPrice and
// TotalPrice may be left out only when the server derives prices.
type CreateBookingRequest struct {
	CabinID         string   `json:"cabinId" binding:"required,uuid"`
	GuestID         string   `json:"guestId" binding:"required,uuid"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	NumNights       *int     `json:"numNights"`
	NumGuests       int      `json:"numGuests"`
	CabinPrice      *float64 `json:"cabinPrice"`
	ExtrasPrice     float64  `json:"extrasPrice"`
	TotalPrice      *float64 `json:"totalPrice"`
	Status          string   `json:"status"`
	HasBreakfast    bool     `json:"hasBreakfast"`
	IsPaid          bool     `json:"isPaid"`
	PaymentIntentID string   `json:"paymentIntentId"`
	Observations    string   `json:"observations"`
}

func (r CreateBookingRequest) unpriced() bool {
	return r.NumNights == nil || r.CabinPrice == nil || r.TotalPrice == nil
}

func valueOf[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

type UpdateBookingRequest struct {
	CabinID         *string  `json:"cabinId"`
	GuestID         *string  `json:"guestId"`
	StartDate       *string  `json:"startDate"`
	EndDate         *string  `json:"endDate"`
	NumNights       *int     `json:"numNights"`
	NumGuests       *int     `json:"numGuests"`
	CabinPrice      *float64 `json:"cabinPrice"`
	ExtrasPrice     *float64 `json:"extrasPrice"`
	TotalPrice      *float64 `json:"totalPrice"`
	Status          *string  `json:"status"`
	HasBreakfast    *bool    `json:"hasBreakfast"`
	IsPaid          *bool    `json:"isPaid"`
	PaymentIntentID *string  `json:"paymentIntentId"`
	Observations    *string  `json:"observations"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	IsPaid          *bool   `json:"isPaid"`
	PaymentIntentID *string `json:"paymentIntentId"`
	Status          *string `json:"status"`
}

type QuoteBookingRequest struct {
	CabinID      string `json:"cabinId" binding:"required,uuid"`
	GuestID      string `json:"guestId" binding:"omitempty,uuid"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	NumGuests    int    `json:"numGuests" binding:"required,min=1"`
	HasBreakfast bool   `json:"hasBreakfast"`
}

type QuoteResponse struct {
	CabinID        string    `json:"cabinId"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	NumNights      int       `json:"numNights"`
	NumGuests      int       `json:"numGuests"`
	HasBreakfast   bool      `json:"hasBreakfast"`
	BreakfastRate  float64   `json:"breakfastRate"`
	CabinPrice     float64   `json:"cabinPrice"`
	ExtrasPrice    float64   `json:"extrasPrice"`
	TotalPrice     float64   `json:"totalPrice"`
	SettingsSource string    `json:"settingsSource"`
}

func NewQuoteResponse(q *booking.Quote) QuoteResponse {
	return QuoteResponse{
		CabinID:        q.CabinID,
		StartDate:      q.StartDate,
		EndDate:        q.EndDate,
		NumNights:      q.NumNights,
		NumGuests:      q.NumGuests,
		HasBreakfast:   q.HasBreakfast,
		BreakfastRate:  q.BreakfastRate,
		CabinPrice:     q.CabinPrice,
		ExtrasPrice:    q.ExtrasPrice,
		TotalPrice:     q.TotalPrice,
		SettingsSource: string(q.Source),
	}
}
