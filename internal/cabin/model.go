package cabin

import (
	"net/http"
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "cabin not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name is required")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
	ErrImageRequired       = apperror.New(http.StatusBadRequest, "image is required")
	ErrInvalidPrice        = apperror.New(http.StatusBadRequest, "regularPrice cannot be negative")
	ErrInvalidCapacity     = apperror.New(http.StatusBadRequest, "maxCapacity must be at least 1")
	ErrInvalidDiscount     = apperror.New(http.StatusBadRequest, "discount cannot be negative")
)

// Cabin is a rentable unit.
type Cabin struct {
	ID           string
	Name         string
	Description  string
	RegularPrice float64
	MaxCapacity  int
	Discount     float64
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NightlyRate is the regular price with the discount applied.
func (c *Cabin) NightlyRate() float64 {
	return c.RegularPrice - c.Discount
}

// Validate checks a complete cabin record.
func (c *Cabin) Validate() error {
	switch {
	case c.Name == "":
		return ErrNameRequired
	case c.Description == "":
		return ErrDescriptionRequired
	case c.Image == "":
		return ErrImageRequired
	case c.RegularPrice < 0:
		return ErrInvalidPrice
	case c.MaxCapacity < 1:
		return ErrInvalidCapacity
	case c.Discount < 0:
		return ErrInvalidDiscount
	}
	return nil
}

// Discount filters for List.
const (
	DiscountAll  = ""
	DiscountWith = "with-discount"
	DiscountNone = "no-discount"
)

// Filter defines parameters for listing cabins.
type Filter struct {
	Discount  string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
