package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/booking"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/request"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// bodyDate parses a date field of a request body. An empty value stays
// zero so the booking service reports it as a bad date range.
func bodyDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := request.ParseDate(v)
	if err != nil {
		return time.Time{}, booking.ErrInvalidDateRange
	}
	return t, nil
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, "invalid query parameters", err)
		return
	}

	bookings, total, err := h.service.List(c.Request.Context(), booking.Filter{
		Status:    booking.Status(req.Status),
		CabinID:   req.CabinID,
		GuestID:   req.GuestID,
		Page:      req.Page,
		PageSize:  req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.SortDirection(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newBookingResponses(bookings), req.Page, req.Limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid booking id", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	start, err := bodyDate(body.StartDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := bodyDate(body.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		Candidate: booking.Candidate{
			CabinID:      body.CabinID,
			GuestID:      body.GuestID,
			StartDate:    start,
			EndDate:      end,
			NumNights:    valueOf(body.NumNights),
			NumGuests:    body.NumGuests,
			CabinPrice:   valueOf(body.CabinPrice),
			ExtrasPrice:  body.ExtrasPrice,
			TotalPrice:   valueOf(body.TotalPrice),
			HasBreakfast: body.HasBreakfast,
		},
		Unpriced:        body.unpriced(),
		Status:          body.Status,
		IsPaid:          body.IsPaid,
		PaymentIntentID: body.PaymentIntentID,
		Observations:    body.Observations,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Quote(c *gin.Context) {
	var body QuoteBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	start, err := bodyDate(body.StartDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := bodyDate(body.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	q, err := h.service.Quote(c.Request.Context(), booking.QuoteRequest{
		CabinID:      body.CabinID,
		GuestID:      body.GuestID,
		StartDate:    start,
		EndDate:      end,
		NumGuests:    body.NumGuests,
		HasBreakfast: body.HasBreakfast,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewQuoteResponse(q))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid booking id", err)
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	req := booking.UpdateRequest{
		CabinID:         body.CabinID,
		GuestID:         body.GuestID,
		NumNights:       body.NumNights,
		NumGuests:       body.NumGuests,
		CabinPrice:      body.CabinPrice,
		ExtrasPrice:     body.ExtrasPrice,
		TotalPrice:      body.TotalPrice,
		Status:          body.Status,
		HasBreakfast:    body.HasBreakfast,
		IsPaid:          body.IsPaid,
		PaymentIntentID: body.PaymentIntentID,
		Observations:    body.Observations,
	}
	for _, f := range []struct {
		in  *string
		out **time.Time
	}{{body.StartDate, &req.StartDate}, {body.EndDate, &req.EndDate}} {
		if f.in == nil {
			continue
		}
		t, err := request.ParseDate(*f.in)
		if err != nil {
			response.Error(c, booking.ErrInvalidDateRange)
			return
		}
		*f.out = &t
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid booking id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid booking id", err)
		return
	}

	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, booking.ErrInvalidStatus)
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid booking id", err)
		return
	}

	var body UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	b, err := h.service.UpdatePaymentStatus(c.Request.Context(), uri.ID, booking.PaymentUpdate{
		IsPaid:          body.IsPaid,
		PaymentIntentID: body.PaymentIntentID,
		Status:          body.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func bindDate(c *gin.Context) (time.Time, bool) {
	var q DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, request.ErrInvalidDate)
		return time.Time{}, false
	}
	t, err := request.ParseDate(q.Date)
	if err != nil {
		response.Error(c, err)
		return time.Time{}, false
	}
	return t, true
}

// CreatedAfter lists bookings created between ?date and the end of today.
func (h *Handler) CreatedAfter(c *gin.Context) {
	date, ok := bindDate(c)
	if !ok {
		return
	}

	list, err := h.service.CreatedAfter(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(newBookingResponses(list)))
}

// StaysAfter lists stays that started between ?date and the start of today.
func (h *Handler) StaysAfter(c *gin.Context) {
	date, ok := bindDate(c)
	if !ok {
		return
	}

	list, err := h.service.StaysAfter(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(newBookingResponses(list)))
}

func (h *Handler) TodayActivity(c *gin.Context) {
	list, err := h.service.TodayActivity(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(newBookingResponses(list)))
}

// CabinDates lists the occupied date ranges of the cabin in the path.
func (h *Handler) CabinDates(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid cabin id", err)
		return
	}

	ranges, err := h.service.DatesForCabin(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]DateRangeResponse, len(ranges))
	for i, d := range ranges {
		items[i] = DateRangeResponse{
			BookingID: d.BookingID,
			StartDate: d.StartDate,
			EndDate:   d.EndDate,
			Status:    string(d.Status),
		}
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) GuestReservations(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid guest id", err)
		return
	}

	list, err := h.service.ReservationsForGuest(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(newBookingResponses(list)))
}

func (h *Handler) GuestBookings(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid guest id", err)
		return
	}

	list, err := h.service.BookingsForGuest(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewListResponse(newBookingResponses(list)))
}
