package http

import (
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/guest"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/request"
)

type GuestResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Nationality string    `json:"nationality"`
	NationalID  string    `json:"nationalID"`
	CountryFlag string    `json:"countryFlag"`
	PhoneNumber string    `json:"phoneNumber"`
	Address     string    `json:"address"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewGuestResponse(g *guest.Guest) GuestResponse {
	return GuestResponse{
		ID:          g.ID,
		FullName:    g.FullName,
		Email:       g.Email,
		Nationality: g.Nationality,
		NationalID:  g.NationalID,
		CountryFlag: g.CountryFlag,
		PhoneNumber: g.PhoneNumber,
		Address:     g.Address,
		Image:       g.Image,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

type ListGuestsRequest struct {
	request.ListParams
	Search string `form:"search"`
	SortBy string `form:"sortBy" binding:"omitempty,oneof=fullName email nationality createdAt"`
}

type ByEmailRequest struct {
	Email string `uri:"email" binding:"required"`
}

type CreateGuestRequest struct {
	FullName    string  `json:"fullName" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	Nationality string  `json:"nationality"`
	NationalID  string  `json:"nationalID"`
	CountryFlag string  `json:"countryFlag"`
	PhoneNumber string  `json:"phoneNumber"`
	Address     string  `json:"address"`
	Image       *string `json:"image"`
}

type UpdateGuestRequest struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	Nationality *string `json:"nationality"`
	NationalID  *string `json:"nationalID"`
	CountryFlag *string `json:"countryFlag"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	Image       *string `json:"image"`
}
