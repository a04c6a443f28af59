package http

import (
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/cabin"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/request"
)

type CabinResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	RegularPrice float64   `json:"regularPrice"`
	MaxCapacity  int       `json:"maxCapacity"`
	Discount     float64   `json:"discount"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewCabinResponse(c *cabin.Cabin) CabinResponse {
	return CabinResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		RegularPrice: c.RegularPrice,
		MaxCapacity:  c.MaxCapacity,
		Discount:     c.Discount,
		Image:        c.Image,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type ListCabinsRequest struct {
	request.ListParams
	Discount string `form:"discount" binding:"omitempty,oneof=with-discount no-discount"`
	SortBy   string `form:"sortBy" binding:"omitempty,oneof=name regularPrice maxCapacity discount createdAt"`
}

type CreateCabinRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	RegularPrice *float64 `json:"regularPrice" binding:"required,min=0"`
	MaxCapacity  int      `json:"maxCapacity" binding:"required,min=1"`
	Discount     float64  `json:"discount" binding:"min=0"`
	Image        string   `json:"image" binding:"required"`
}

type UpdateCabinRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	RegularPrice *float64 `json:"regularPrice" binding:"omitempty,min=0"`
	MaxCapacity  *int     `json:"maxCapacity" binding:"omitempty,min=1"`
	Discount     *float64 `json:"discount" binding:"omitempty,min=0"`
	Image        *string  `json:"image"`
}
