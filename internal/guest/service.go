package guest

import (
	"context"
	"errors"
	"strings"
)

type CreateRequest struct {
	FullName    string
	Email       string
	Nationality string
	NationalID  string
	CountryFlag string
	PhoneNumber string
	Address     string
	Image       *string
}

type UpdateRequest struct {
	FullName    *string
	Email       *string
	Nationality *string
	NationalID  *string
	CountryFlag *string
	PhoneNumber *string
	Address     *string
	Image       *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Guest, error)
	GetByID(ctx context.Context, id string) (*Guest, error)
	GetByEmail(ctx context.Context, email string) (*Guest, error)
	List(ctx context.Context, filter Filter) ([]*Guest, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Guest, error)
	UpdateImage(ctx context.Context, id, image string) error
	// Delete removes the guest together with all of their bookings.
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Guest, error) {
	g := &Guest{
		FullName:    strings.TrimSpace(req.FullName),
		Email:       normalizeEmail(req.Email),
		Nationality: strings.TrimSpace(req.Nationality),
		NationalID:  strings.TrimSpace(req.NationalID),
		CountryFlag: strings.TrimSpace(req.CountryFlag),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Address:     strings.TrimSpace(req.Address),
		Image:       req.Image,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, g.Email, ""); err != nil {
		return nil, err
	}

	// the unique index still catches a concurrent insert
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Guest, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*Guest, error) {
	email = normalizeEmail(email)
	if validate.Var(email, "email") != nil {
		return nil, ErrInvalidEmail
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Guest, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Guest, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	emailChanged := false
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		emailChanged = !strings.EqualFold(email, g.Email)
		g.Email = email
	}
	setTrimmed(&g.FullName, req.FullName)
	setTrimmed(&g.Nationality, req.Nationality)
	setTrimmed(&g.NationalID, req.NationalID)
	setTrimmed(&g.CountryFlag, req.CountryFlag)
	setTrimmed(&g.PhoneNumber, req.PhoneNumber)
	setTrimmed(&g.Address, req.Address)
	if req.Image != nil {
		g.Image = req.Image
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	if emailChanged {
		if err := s.ensureEmailFree(ctx, g.Email, g.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) UpdateImage(ctx context.Context, id, image string) error {
	return s.repo.UpdateImage(ctx, id, image)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteWithBookings(ctx, id)
}

// ensureEmailFree fails with ErrEmailTaken when another guest owns email.
func (s *service) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return ErrEmailTaken
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
