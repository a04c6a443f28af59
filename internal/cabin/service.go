package cabin

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name         string
	Description  string
	RegularPrice float64
	MaxCapacity  int
	Discount     float64
	Image        string
}

type UpdateRequest struct {
	Name         *string
	Description  *string
	RegularPrice *float64
	MaxCapacity  *int
	Discount     *float64
	Image        *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Cabin, error)
	GetByID(ctx context.Context, id string) (*Cabin, error)
	List(ctx context.Context, filter Filter) ([]*Cabin, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Cabin, error)
	UpdateImage(ctx context.Context, id, image string) error
	// Delete removes the cabin together with every booking of it.
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Cabin, error) {
	c := &Cabin{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		RegularPrice: req.RegularPrice,
		MaxCapacity:  req.MaxCapacity,
		Discount:     req.Discount,
		Image:        strings.TrimSpace(req.Image),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Cabin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Cabin, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Cabin, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.RegularPrice != nil {
		c.RegularPrice = *req.RegularPrice
	}
	if req.MaxCapacity != nil {
		c.MaxCapacity = *req.MaxCapacity
	}
	if req.Discount != nil {
		c.Discount = *req.Discount
	}
	if req.Image != nil {
		c.Image = strings.TrimSpace(*req.Image)
	}

	// validate the merged record, not just the patch
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateImage(ctx context.Context, id, image string) error {
	return s.repo.UpdateImage(ctx, id, image)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteWithBookings(ctx, id)
}
