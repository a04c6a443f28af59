package setting

import (
	"context"
	"errors"
	"log"
)

// UpdateRequest carries the fields a partial update may change.
type UpdateRequest struct {
	MinBookingLength    *int
	MaxBookingLength    *int
	MaxGuestsPerBooking *int
	BreakfastPrice      *float64
}

type Service interface {
	// GetOrDefault never fails with ErrNotFound; it falls back to Defaults.
	GetOrDefault(ctx context.Context) (*Result, error)
	Create(ctx context.Context, s Settings) (*Settings, error)
	Update(ctx context.Context, req UpdateRequest) (*Settings, error)
	Reset(ctx context.Context) (*Settings, error)
}

type service struct {
	repo  Repository
	cache Cache
}

// NewService builds the settings service. cache may be nil.
func NewService(repo Repository, cache Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) GetOrDefault(ctx context.Context) (*Result, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("settings cache: %v", err)
		} else if ok {
			return &Result{Settings: cached, Source: SourcePersisted}, nil
		}
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Result{Settings: Defaults(), Source: SourceDefault}, nil
		}
		return nil, err
	}

	s.remember(ctx, stored)
	return &Result{Settings: stored, Source: SourcePersisted}, nil
}

func (s *service) Create(ctx context.Context, in Settings) (*Settings, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created := &Settings{
		MinBookingLength:    in.MinBookingLength,
		MaxBookingLength:    in.MaxBookingLength,
		MaxGuestsPerBooking: in.MaxGuestsPerBooking,
		BreakfastPrice:      in.BreakfastPrice,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	s.remember(ctx, created)
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*Settings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.MinBookingLength != nil {
		current.MinBookingLength = *req.MinBookingLength
	}
	if req.MaxBookingLength != nil {
		current.MaxBookingLength = *req.MaxBookingLength
	}
	if req.MaxGuestsPerBooking != nil {
		current.MaxGuestsPerBooking = *req.MaxGuestsPerBooking
	}
	if req.BreakfastPrice != nil {
		current.BreakfastPrice = *req.BreakfastPrice
	}

	if err := current.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	s.remember(ctx, current)
	return current, nil
}

func (s *service) Reset(ctx context.Context) (*Settings, error) {
	d := Defaults()
	if err := s.repo.Upsert(ctx, d); err != nil {
		return nil, err
	}

	s.remember(ctx, d)
	return d, nil
}

// remember refreshes the cache. A failing cache is dropped rather than left stale.
func (s *service) remember(ctx context.Context, v *Settings) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, v); err != nil {
		log.Printf("settings cache: %v", err)
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("settings cache: %v", err)
		}
	}
}
