package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/booking"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/response"
)

const (
	bookingID = "0b3c9a6e-5d1f-4f7a-8e2b-6c4d3a2b1f00"
	cabinID   = "4a1f5c1e-2b7d-4c11-9a53-0d9e3f6a7b10"
	guestID   = "9c0e2d44-8f1b-4e6a-a2c3-5b7d1e9f0a21"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) bookingResult(args mock.Arguments) (*booking.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *mockService) listResult(args mock.Arguments) ([]*booking.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *mockService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	return m.bookingResult(m.Called(ctx, req))
}

func (m *mockService) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	return m.bookingResult(m.Called(ctx, id))
}

func (m *mockService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*booking.Booking), args.Int(1), args.Error(2)
}

func (m *mockService) Update(ctx context.Context, id string, req booking.UpdateRequest) (*booking.Booking, error) {
	return m.bookingResult(m.Called(ctx, id, req))
}

func (m *mockService) UpdateStatus(ctx context.Context, id string, status string) (*booking.Booking, error) {
	return m.bookingResult(m.Called(ctx, id, status))
}

func (m *mockService) UpdatePaymentStatus(ctx context.Context, id string, req booking.PaymentUpdate) (*booking.Booking, error) {
	return m.bookingResult(m.Called(ctx, id, req))
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) CreatedAfter(ctx context.Context, date time.Time) ([]*booking.Booking, error) {
	return m.listResult(m.Called(ctx, date))
}

func (m *mockService) StaysAfter(ctx context.Context, date time.Time) ([]*booking.Booking, error) {
	return m.listResult(m.Called(ctx, date))
}

func (m *mockService) TodayActivity(ctx context.Context) ([]*booking.Booking, error) {
	return m.listResult(m.Called(ctx))
}

func (m *mockService) ReservationsForGuest(ctx context.Context, guestID string) ([]*booking.Booking, error) {
	return m.listResult(m.Called(ctx, guestID))
}

func (m *mockService) BookingsForGuest(ctx context.Context, guestID string) ([]*booking.Booking, error) {
	return m.listResult(m.Called(ctx, guestID))
}

func (m *mockService) DatesForCabin(ctx context.Context, cabinID string) ([]booking.DateRange, error) {
	args := m.Called(ctx, cabinID)
	return args.Get(0).([]booking.DateRange), args.Error(1)
}

func (m *mockService) Quote(ctx context.Context, req booking.QuoteRequest) (*booking.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Quote), args.Error(1)
}

func setupRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), func(c *gin.Context) { c.Next() })
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func sample(status booking.Status) *booking.Booking {
	return &booking.Booking{
		ID: bookingID, CabinID: cabinID, GuestID: guestID,
		StartDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		NumNights: 5, NumGuests: 2, CabinPrice: 900, TotalPrice: 900,
		Status: status,
		Cabin:  &booking.CabinInfo{ID: cabinID, Name: "001"},
	}
}

func TestGet(t *testing.T) {
	t.Run("InvalidID", func(t *testing.T) {
		svc := new(mockService)
		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetByID", mock.Anything, bookingID).Return(nil, booking.ErrNotFound)

		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings/"+bookingID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "booking not found", errorOf(t, w))
	})

	t.Run("Found", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetByID", mock.Anything, bookingID).Return(sample(booking.StatusConfirmed), nil)

		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings/"+bookingID, "")
		require.Equal(t, http.StatusOK, w.Code)

		var got BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "confirmed", got.Status)
		require.NotNil(t, got.Cabin)
		assert.Equal(t, "001", got.Cabin.Name)
		assert.Nil(t, got.Guest)
	})
}

func TestCreate(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req booking.CreateRequest) bool {
			return req.NumGuests == 2 && !req.Unpriced && req.StartDate.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
		})).Return(sample(booking.StatusUnconfirmed), nil)

		body := `{"cabinId":"` + cabinID + `","guestId":"` + guestID + `","startDate":"2025-01-10","endDate":"2025-01-15T00:00:00Z","numNights":5,"numGuests":2,"cabinPrice":900,"totalPrice":900}`
		w := do(setupRouter(svc), http.MethodPost, "/v1/bookings", body)
		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("CapacityExceeded", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, booking.ErrCapacityExceeded)

		body := `{"cabinId":"` + cabinID + `","guestId":"` + guestID + `","startDate":"2025-01-10","endDate":"2025-01-15","numNights":5,"numGuests":5}`
		w := do(setupRouter(svc), http.MethodPost, "/v1/bookings", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("PricesLeftOut", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req booking.CreateRequest) bool {
			return req.Unpriced && req.NumNights == 5 && req.CabinPrice == 0
		})).Return(nil, booking.ErrPricingRequired)

		body := `{"cabinId":"` + cabinID + `","guestId":"` + guestID + `","startDate":"2025-01-10","endDate":"2025-01-15","numNights":5,"numGuests":2}`
		w := do(setupRouter(svc), http.MethodPost, "/v1/bookings", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, booking.ErrPricingRequired.Message, errorOf(t, w))
		svc.AssertExpectations(t)
	})

	t.Run("ZeroPricesAreSupplied", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req booking.CreateRequest) bool {
			return !req.Unpriced && req.TotalPrice == 0
		})).Return(sample(booking.StatusUnconfirmed), nil)

		body := `{"cabinId":"` + cabinID + `","guestId":"` + guestID + `","startDate":"2025-01-10","endDate":"2025-01-15","numNights":5,"numGuests":2,"cabinPrice":0,"totalPrice":0}`
		w := do(setupRouter(svc), http.MethodPost, "/v1/bookings", body)
		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("MalformedCabinID", func(t *testing.T) {
		svc := new(mockService)
		body := `{"cabinId":"123","guestId":"` + guestID + `","startDate":"2025-01-10","endDate":"2025-01-15"}`
		w := do(setupRouter(svc), http.MethodPost, "/v1/bookings", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UnparseableDate", func(t *testing.T) {
		svc := new(mockService)
		body := `{"cabinId":"` + cabinID + `","guestId":"` + guestID + `","startDate":"10/01/2025","endDate":"2025-01-15"}`
		w := do(setupRouter(svc), http.MethodPost, "/v1/bookings", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, booking.ErrInvalidDateRange.Message, errorOf(t, w))
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("MissingBody", func(t *testing.T) {
		svc := new(mockService)
		w := do(setupRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"/status", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, booking.ErrInvalidStatus.Message, errorOf(t, w))
	})

	t.Run("Transition", func(t *testing.T) {
		svc := new(mockService)
		svc.On("UpdateStatus", mock.Anything, bookingID, "checked-in").Return(nil, booking.ErrTransition)

		w := do(setupRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"/status", `{"status":"checked-in"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Updated", func(t *testing.T) {
		svc := new(mockService)
		svc.On("UpdateStatus", mock.Anything, bookingID, "checked-in").Return(sample(booking.StatusCheckedIn), nil)

		w := do(setupRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"/status", `{"status":"checked-in"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"checked-in"`)
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	svc := new(mockService)
	svc.On("UpdatePaymentStatus", mock.Anything, bookingID, mock.MatchedBy(func(p booking.PaymentUpdate) bool {
		return p.IsPaid != nil && *p.IsPaid && p.PaymentIntentID != nil && *p.PaymentIntentID == "pi_1" && p.Status == nil
	})).Return(sample(booking.StatusConfirmed), nil)

	w := do(setupRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"/payment-status", `{"isPaid":true,"paymentIntentId":"pi_1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	svc := new(mockService)
	svc.On("Delete", mock.Anything, bookingID).Return(nil)

	w := do(setupRouter(svc), http.MethodDelete, "/v1/bookings/"+bookingID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestList(t *testing.T) {
	t.Run("SortByDefaultsAscending", func(t *testing.T) {
		svc := new(mockService)
		svc.On("List", mock.Anything, booking.Filter{
			Status: booking.StatusConfirmed, Page: 2, PageSize: 5, SortBy: "startDate", SortOrder: "ASC",
		}).Return([]*booking.Booking{sample(booking.StatusConfirmed)}, 6, nil)

		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings?status=confirmed&page=2&limit=5&sortBy=startDate", "")
		require.Equal(t, http.StatusOK, w.Code)

		var page response.PageResponse[BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 6, page.Total)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Items, 1)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		svc := new(mockService)
		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings?status=archived", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTemporalEndpoints(t *testing.T) {
	t.Run("MissingDate", func(t *testing.T) {
		svc := new(mockService)
		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings/after-date", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidDate", func(t *testing.T) {
		svc := new(mockService)
		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings/stays-after-date?date=yesterday", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CreatedAfter", func(t *testing.T) {
		svc := new(mockService)
		since := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		svc.On("CreatedAfter", mock.Anything, since).Return([]*booking.Booking{sample(booking.StatusUnconfirmed)}, nil)

		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings/after-date?date=2025-10-01T00:00:00Z", "")
		require.Equal(t, http.StatusOK, w.Code)

		var list response.ListResponse[BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Equal(t, 1, list.Count)
	})

	t.Run("TodayActivityEmpty", func(t *testing.T) {
		svc := new(mockService)
		svc.On("TodayActivity", mock.Anything).Return([]*booking.Booking{}, nil)

		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings/stays-today-activity", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"items":[],"count":0}`, w.Body.String())
	})
}

func TestGuestRoutes(t *testing.T) {
	t.Run("Reservations", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ReservationsForGuest", mock.Anything, guestID).Return([]*booking.Booking{sample(booking.StatusUnconfirmed)}, nil)

		w := do(setupRouter(svc), http.MethodGet, "/v1/bookings/guest/"+guestID+"/reservations", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UnknownGuest", func(t *testing.T) {
		svc := new(mockService)
		svc.On("BookingsForGuest", mock.Anything, guestID).Return(nil, booking.ErrGuestNotFound)

		w := do(setupRouter(svc), http.MethodGet, "/v1/guests/"+guestID+"/bookings", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
