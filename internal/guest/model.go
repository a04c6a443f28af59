package guest

import (
	"net/http"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "guest not found")
	ErrEmailTaken       = apperror.New(http.StatusConflict, "a guest with this email already exists")
	ErrFullNameRequired = apperror.New(http.StatusBadRequest, "fullName is required")
	ErrEmailRequired    = apperror.New(http.StatusBadRequest, "email is required")
	ErrInvalidEmail     = apperror.New(http.StatusBadRequest, "invalid email format")
	ErrInvalidPhone     = apperror.New(http.StatusBadRequest, "invalid phone number format: at least 8 digits, may include +, spaces or hyphens")
)

var (
	validate     = validator.New()
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{8,}$`)
)

// Guest is a person who stays in a cabin.
type Guest struct {
	ID          string
	FullName    string
	Email       string
	Nationality string
	NationalID  string
	CountryFlag string
	PhoneNumber string
	Address     string
	Image       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks a complete guest record.
func (g *Guest) Validate() error {
	if g.FullName == "" {
		return ErrFullNameRequired
	}
	if g.Email == "" {
		return ErrEmailRequired
	}
	if validate.Var(g.Email, "email") != nil {
		return ErrInvalidEmail
	}
	if g.PhoneNumber != "" && !phonePattern.MatchString(g.PhoneNumber) {
		return ErrInvalidPhone
	}
	return nil
}

// Filter defines parameters for listing guests.
type Filter struct {
	// Search matches full name or email, case-insensitively.
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
