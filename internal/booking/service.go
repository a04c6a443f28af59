package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/cabin"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/guest"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/setting"
)

// CabinFinder is satisfied by cabin.Service.
type CabinFinder interface {
	GetByID(ctx context.Context, id string) (*cabin.Cabin, error)
}

// GuestFinder is satisfied by guest.Service.
type GuestFinder interface {
	GetByID(ctx context.Context, id string) (*guest.Guest, error)
}

// SettingsReader is satisfied by setting.Service.
type SettingsReader interface {
	GetOrDefault(ctx context.Context) (*setting.Result, error)
}

type Options struct {
	PricingMode PricingMode
	// PreventOverlap rejects a cabin booked twice for intersecting dates.
	PreventOverlap bool
	Transitions    TransitionPolicy
	// SettingsBreakfast prices breakfast from settings instead of DefaultBreakfastRate.
	SettingsBreakfast bool
}

type CreateRequest struct {
	Candidate
	// Unpriced marks a request that left out numNights, cabinPrice or
	// totalPrice. Only derive mode fills them in.
	Unpriced        bool
	Status          string
	IsPaid          bool
	PaymentIntentID string
	Observations    string
}

type UpdateRequest struct {
	CabinID         *string
	GuestID         *string
	StartDate       *time.Time
	EndDate         *time.Time
	NumNights       *int
	NumGuests       *int
	CabinPrice      *float64
	ExtrasPrice     *float64
	TotalPrice      *float64
	Status          *string
	HasBreakfast    *bool
	IsPaid          *bool
	PaymentIntentID *string
	Observations    *string
}

type PaymentUpdate struct {
	IsPaid          *bool
	PaymentIntentID *string
	Status          *string
}

type QuoteRequest struct {
	CabinID      string
	GuestID      string // optional
	StartDate    time.Time
	EndDate      time.Time
	NumGuests    int
	HasBreakfast bool
}

// Quote is a derived price that was not stored.
type Quote struct {
	Candidate
	BreakfastRate float64
	Source        setting.Source
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Booking, error)
	UpdatePaymentStatus(ctx context.Context, id string, req PaymentUpdate) (*Booking, error)
	Delete(ctx context.Context, id string) error

	CreatedAfter(ctx context.Context, date time.Time) ([]*Booking, error)
	StaysAfter(ctx context.Context, date time.Time) ([]*Booking, error)
	TodayActivity(ctx context.Context) ([]*Booking, error)
	ReservationsForGuest(ctx context.Context, guestID string) ([]*Booking, error)
	BookingsForGuest(ctx context.Context, guestID string) ([]*Booking, error)
	DatesForCabin(ctx context.Context, cabinID string) ([]DateRange, error)
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

type service struct {
	repo     Repository
	cabins   CabinFinder
	guests   GuestFinder
	settings SettingsReader
	opts     Options
	now      func() time.Time
}

func NewService(repo Repository, cabins CabinFinder, guests GuestFinder, settings SettingsReader, opts Options) Service {
	if opts.PricingMode == "" {
		opts.PricingMode = PricingTrust
	}
	if opts.Transitions == nil {
		opts.Transitions = PermissiveTransitions{}
	}
	return &service{
		repo:     repo,
		cabins:   cabins,
		guests:   guests,
		settings: settings,
		opts:     opts,
		now:      time.Now,
	}
}

// findCabin returns nil, nil when the cabin does not exist.
func (s *service) findCabin(ctx context.Context, id string) (*cabin.Cabin, error) {
	cb, err := s.cabins.GetByID(ctx, id)
	if errors.Is(err, cabin.ErrNotFound) {
		return nil, nil
	}
	return cb, err
}

// findGuest returns nil, nil when the guest does not exist.
func (s *service) findGuest(ctx context.Context, id string) (*guest.Guest, error) {
	g, err := s.guests.GetByID(ctx, id)
	if errors.Is(err, guest.ErrNotFound) {
		return nil, nil
	}
	return g, err
}

// pricingOptions resolves the breakfast rate and, in derive mode, the limits.
func (s *service) pricingOptions(ctx context.Context, mode PricingMode) (PricingOptions, setting.Source, error) {
	opts := PricingOptions{Mode: mode, BreakfastRate: DefaultBreakfastRate}
	if mode != PricingDerive && !s.opts.SettingsBreakfast {
		return opts, "", nil
	}

	res, err := s.settings.GetOrDefault(ctx)
	if err != nil {
		return opts, "", err
	}
	if s.opts.SettingsBreakfast {
		opts.BreakfastRate = res.Settings.BreakfastPrice
	}
	if mode == PricingDerive {
		opts.Limits = res.Settings
	}
	return opts, res.Source, nil
}

func (s *service) checkOverlap(ctx context.Context, cabinID string, start, end time.Time, selfID string) error {
	if !s.opts.PreventOverlap {
		return nil
	}
	overlap, err := s.repo.HasOverlap(ctx, cabinID, start, end, selfID)
	if err != nil {
		return err
	}
	if overlap {
		return ErrOverlap
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	status := StatusUnconfirmed
	if req.Status != "" {
		parsed, err := ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	if req.Unpriced && s.opts.PricingMode != PricingDerive {
		return nil, ErrPricingRequired
	}

	cb, err := s.findCabin(ctx, req.CabinID)
	if err != nil {
		return nil, err
	}
	g, err := s.findGuest(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}

	opts, _, err := s.pricingOptions(ctx, s.opts.PricingMode)
	if err != nil {
		return nil, err
	}

	c, err := ValidateAndPrice(req.Candidate, cb, g, opts)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, c.CabinID, c.StartDate, c.EndDate, ""); err != nil {
		return nil, err
	}

	b := &Booking{
		CabinID:         c.CabinID,
		GuestID:         c.GuestID,
		StartDate:       c.StartDate.UTC(),
		EndDate:         c.EndDate.UTC(),
		NumNights:       c.NumNights,
		NumGuests:       c.NumGuests,
		CabinPrice:      c.CabinPrice,
		ExtrasPrice:     c.ExtrasPrice,
		TotalPrice:      c.TotalPrice,
		Status:          status,
		HasBreakfast:    c.HasBreakfast,
		IsPaid:          req.IsPaid,
		PaymentIntentID: req.PaymentIntentID,
		Observations:    req.Observations,
		Cabin:           cabinInfo(cb),
		Guest:           guestInfo(g),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" {
		if _, err := ParseStatus(string(filter.Status)); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var cb *cabin.Cabin
	cabinChanged := req.CabinID != nil && *req.CabinID != b.CabinID
	if req.CabinID != nil {
		if err := uuid.Validate(*req.CabinID); err != nil {
			return nil, ErrInvalidID
		}
	}
	if cabinChanged {
		if cb, err = s.findCabin(ctx, *req.CabinID); err != nil {
			return nil, err
		}
		if cb == nil {
			return nil, ErrCabinNotFound
		}
		b.CabinID = cb.ID
	}

	var g *guest.Guest
	if req.GuestID != nil {
		if err := uuid.Validate(*req.GuestID); err != nil {
			return nil, ErrInvalidID
		}
		if *req.GuestID != b.GuestID {
			if g, err = s.findGuest(ctx, *req.GuestID); err != nil {
				return nil, err
			}
			if g == nil {
				return nil, ErrGuestNotFound
			}
			b.GuestID = g.ID
		}
	}

	if req.Status != nil {
		next, err := ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if !s.opts.Transitions.Allow(b.Status, next) {
			return nil, ErrTransition
		}
		b.Status = next
	}

	datesChanged := req.StartDate != nil || req.EndDate != nil
	if req.StartDate != nil {
		b.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		b.EndDate = req.EndDate.UTC()
	}
	guestsChanged := req.NumGuests != nil && *req.NumGuests != b.NumGuests
	setIf(&b.NumGuests, req.NumGuests)
	setIf(&b.NumNights, req.NumNights)
	setIf(&b.CabinPrice, req.CabinPrice)
	setIf(&b.ExtrasPrice, req.ExtrasPrice)
	setIf(&b.TotalPrice, req.TotalPrice)
	setIf(&b.HasBreakfast, req.HasBreakfast)
	setIf(&b.IsPaid, req.IsPaid)
	setIf(&b.PaymentIntentID, req.PaymentIntentID)
	setIf(&b.Observations, req.Observations)

	pricingChanged := cabinChanged || datesChanged || guestsChanged || req.HasBreakfast != nil
	if cb == nil && (guestsChanged || (pricingChanged && s.opts.PricingMode == PricingDerive)) {
		// capacity and derived prices need the current cabin
		if cb, err = s.findCabin(ctx, b.CabinID); err != nil {
			return nil, err
		}
		if cb == nil {
			return nil, ErrCabinNotFound
		}
	}
	if cb != nil && b.NumGuests > cb.MaxCapacity {
		return nil, ErrCapacityExceeded
	}

	c := candidateOf(b)
	if pricingChanged && s.opts.PricingMode == PricingDerive {
		opts, _, err := s.pricingOptions(ctx, PricingDerive)
		if err != nil {
			return nil, err
		}
		if c, err = price(c, cb, opts); err != nil {
			return nil, err
		}
		b.NumNights, b.CabinPrice, b.ExtrasPrice, b.TotalPrice = c.NumNights, c.CabinPrice, c.ExtrasPrice, c.TotalPrice
	} else {
		// the stored record is re-validated as a whole
		if !b.EndDate.After(b.StartDate) {
			return nil, ErrInvalidDateRange
		}
		if err := checkQuantities(c); err != nil {
			return nil, err
		}
	}

	if cabinChanged || datesChanged {
		if err := s.checkOverlap(ctx, b.CabinID, b.StartDate, b.EndDate, b.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status string) (*Booking, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.patch(ctx, id, Patch{Status: &next})
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id string, req PaymentUpdate) (*Booking, error) {
	p := Patch{IsPaid: req.IsPaid, PaymentIntentID: req.PaymentIntentID}
	if req.Status != nil {
		next, err := ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		p.Status = &next
	}
	return s.patch(ctx, id, p)
}

// patch applies p after checking the status transition, then re-reads the booking.
func (s *service) patch(ctx context.Context, id string, p Patch) (*Booking, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.empty() {
		return current, nil
	}
	if p.Status != nil && !s.opts.Transitions.Allow(current.Status, *p.Status) {
		return nil, ErrTransition
	}

	if err := s.repo.Patch(ctx, id, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) CreatedAfter(ctx context.Context, date time.Time) ([]*Booking, error) {
	_, todayEnd := DayBounds(s.now())
	return s.repo.ListCreatedBetween(ctx, date.UTC(), todayEnd)
}

func (s *service) StaysAfter(ctx context.Context, date time.Time) ([]*Booking, error) {
	todayStart, _ := DayBounds(s.now())
	return s.repo.ListStays(ctx, date.UTC(), todayStart)
}

func (s *service) TodayActivity(ctx context.Context) ([]*Booking, error) {
	dayStart, dayEnd := DayBounds(s.now())

	candidates, err := s.repo.ListActivityCandidates(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	activity := make([]*Booking, 0, len(candidates))
	for _, b := range candidates {
		if IsArrival(b, dayStart, dayEnd) || IsDeparture(b, dayStart, dayEnd) {
			activity = append(activity, b)
		}
	}
	return activity, nil
}

func (s *service) requireGuest(ctx context.Context, guestID string) error {
	g, err := s.findGuest(ctx, guestID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGuestNotFound
	}
	return nil
}

func (s *service) ReservationsForGuest(ctx context.Context, guestID string) ([]*Booking, error) {
	if err := s.requireGuest(ctx, guestID); err != nil {
		return nil, err
	}
	return s.repo.ListByGuest(ctx, guestID, []Status{StatusUnconfirmed})
}

func (s *service) BookingsForGuest(ctx context.Context, guestID string) ([]*Booking, error) {
	if err := s.requireGuest(ctx, guestID); err != nil {
		return nil, err
	}
	return s.repo.ListByGuest(ctx, guestID, nil)
}

func (s *service) DatesForCabin(ctx context.Context, cabinID string) ([]DateRange, error) {
	if err := uuid.Validate(cabinID); err != nil {
		return nil, ErrInvalidID
	}
	return s.repo.ListDatesByCabin(ctx, cabinID)
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	cb, err := s.findCabin(ctx, req.CabinID)
	if err != nil {
		return nil, err
	}
	if cb == nil {
		return nil, ErrCabinNotFound
	}
	if req.NumGuests > cb.MaxCapacity {
		return nil, ErrCapacityExceeded
	}
	if req.GuestID != "" {
		if err := s.requireGuest(ctx, req.GuestID); err != nil {
			return nil, err
		}
	}

	opts, source, err := s.pricingOptions(ctx, PricingDerive)
	if err != nil {
		return nil, err
	}

	c, err := price(Candidate{
		CabinID:      req.CabinID,
		GuestID:      req.GuestID,
		StartDate:    req.StartDate.UTC(),
		EndDate:      req.EndDate.UTC(),
		NumGuests:    req.NumGuests,
		HasBreakfast: req.HasBreakfast,
	}, cb, opts)
	if err != nil {
		return nil, err
	}
	return &Quote{Candidate: c, BreakfastRate: opts.BreakfastRate, Source: source}, nil
}

func candidateOf(b *Booking) Candidate {
	return Candidate{
		CabinID:      b.CabinID,
		GuestID:      b.GuestID,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		NumNights:    b.NumNights,
		NumGuests:    b.NumGuests,
		CabinPrice:   b.CabinPrice,
		ExtrasPrice:  b.ExtrasPrice,
		TotalPrice:   b.TotalPrice,
		HasBreakfast: b.HasBreakfast,
	}
}

func cabinInfo(c *cabin.Cabin) *CabinInfo {
	return &CabinInfo{
		ID:           c.ID,
		Name:         c.Name,
		Image:        c.Image,
		MaxCapacity:  c.MaxCapacity,
		RegularPrice: c.RegularPrice,
		Discount:     c.Discount,
	}
}

func guestInfo(g *guest.Guest) *GuestInfo {
	return &GuestInfo{
		ID:          g.ID,
		FullName:    g.FullName,
		Email:       g.Email,
		Nationality: g.Nationality,
		NationalID:  g.NationalID,
		CountryFlag: g.CountryFlag,
		PhoneNumber: g.PhoneNumber,
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
