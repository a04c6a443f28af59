package booking

import (
	"math"
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/cabin"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/guest"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/setting"
)

// PricingMode selects who is responsible for numNights and the prices.
type PricingMode string

const (
	// PricingTrust keeps caller supplied nights and prices, checking only their ranges.
	PricingTrust PricingMode = "trust"
	// PricingDerive computes nights and prices from the dates and the cabin.
	PricingDerive PricingMode = "derive"
)

// DefaultBreakfastRate is the per guest, per night breakfast price used
// unless the caller passes the settings value.
const DefaultBreakfastRate = 15.0

// Candidate is a booking before it is stored.
type Candidate struct {
	CabinID      string
	GuestID      string
	StartDate    time.Time
	EndDate      time.Time
	NumNights    int
	NumGuests    int
	CabinPrice   float64
	ExtrasPrice  float64
	TotalPrice   float64
	HasBreakfast bool
}

type PricingOptions struct {
	Mode          PricingMode
	BreakfastRate float64
	// Limits are enforced in derive mode when set.
	Limits *setting.Settings
}

// NightsBetween counts UTC calendar days from start to end, so a 15:00
// check-in and an 11:00 checkout the next day is one night.
func NightsBetween(start, end time.Time) int {
	s, _ := DayBounds(start)
	e, _ := DayBounds(end)
	return int(e.Sub(s).Hours() / 24)
}

// ValidateAndPrice checks c against the cabin and guest and returns the
// normalized candidate. It has no side effects.
func ValidateAndPrice(c Candidate, cb *cabin.Cabin, g *guest.Guest, opts PricingOptions) (Candidate, error) {
	if cb == nil {
		return c, ErrCabinNotFound
	}
	if c.NumGuests > cb.MaxCapacity {
		return c, ErrCapacityExceeded
	}
	if g == nil {
		return c, ErrGuestNotFound
	}
	return price(c, cb, opts)
}

func price(c Candidate, cb *cabin.Cabin, opts PricingOptions) (Candidate, error) {
	if c.StartDate.IsZero() || c.EndDate.IsZero() || !c.EndDate.After(c.StartDate) {
		return c, ErrInvalidDateRange
	}

	if opts.Mode == PricingDerive {
		c.NumNights = NightsBetween(c.StartDate, c.EndDate)
		// both ends on the same UTC day
		if c.NumNights < 1 {
			return c, ErrInvalidDateRange
		}
		if err := checkQuantities(c); err != nil {
			return c, err
		}
		if err := checkLimits(c, opts.Limits); err != nil {
			return c, err
		}

		c.CabinPrice = round2(float64(c.NumNights) * cb.NightlyRate())
		c.ExtrasPrice = 0
		if c.HasBreakfast {
			c.ExtrasPrice = round2(float64(c.NumNights) * opts.BreakfastRate * float64(c.NumGuests))
		}
		c.TotalPrice = round2(c.CabinPrice + c.ExtrasPrice)
	}

	if err := checkQuantities(c); err != nil {
		return c, err
	}
	return c, nil
}

func checkQuantities(c Candidate) error {
	if c.NumNights < 1 || c.NumGuests < 1 ||
		c.CabinPrice < 0 || c.ExtrasPrice < 0 || c.TotalPrice < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

func checkLimits(c Candidate, limits *setting.Settings) error {
	if limits == nil {
		return nil
	}
	switch {
	case c.NumNights < limits.MinBookingLength:
		return ErrStayTooShort
	case c.NumNights > limits.MaxBookingLength:
		return ErrStayTooLong
	case c.NumGuests > limits.MaxGuestsPerBooking:
		return ErrTooManyGuests
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
