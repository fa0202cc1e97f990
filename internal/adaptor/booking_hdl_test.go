package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinema-reservation/internal/apperr"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reservationServiceStub struct {
	reserveResp *response.BookingResponse
	reserveErr  error
	cancelErr   error
}

func (s *reservationServiceStub) ReserveSeats(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.reserveResp, s.reserveErr
}

func (s *reservationServiceStub) GetBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID string) (*response.BookingDetailResponse, error) {
	return nil, apperr.NotFound("booking")
}

func (s *reservationServiceStub) GetUserBookings(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return response.NewPaginatedResponse([]response.BookingResponse{}, 1, 10, 0), nil
}

func (s *reservationServiceStub) ConfirmBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	return nil, apperr.Conflict("only pending bookings can be confirmed")
}

func (s *reservationServiceStub) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) error {
	return s.cancelErr
}

func newBookingRouter(stub *reservationServiceStub) *chi.Mux {
	h := NewBookingHandler(stub, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/bookings", h.CreateBooking)
	r.Get("/api/bookings/{id}", h.GetBooking)
	r.Post("/api/bookings/{id}/confirm", h.ConfirmBooking)
	r.Delete("/api/bookings/{id}", h.CancelBooking)
	return r
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := utils.SetUserContext(req.Context(), uuid.New(), "customer")
	return req.WithContext(ctx)
}

func TestCreateBookingCreated(t *testing.T) {
	stub := &reservationServiceStub{
		reserveResp: &response.BookingResponse{
			ID:      uuid.NewString(),
			OrderID: "BOOK-20260831-120000-0001",
			Status:  "pending",
			Seats:   []string{"A1"},
		},
	}
	router := newBookingRouter(stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings",
		`{"screening_id":"`+uuid.NewString()+`","seats":["A1"]}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateBookingSeatConflictIs409(t *testing.T) {
	stub := &reservationServiceStub{
		reserveErr: apperr.SeatConflict("seat A1 is already taken for this screening", "A1"),
	}
	router := newBookingRouter(stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings",
		`{"screening_id":"`+uuid.NewString()+`","seats":["A1"]}`))

	require.Equal(t, http.StatusConflict, rec.Code)

	// Label kursi yang konflik ikut di payload errors
	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Status)
	errs, ok := body.Errors.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs["seats"], "A1")
}

func TestCreateBookingInvalidSeatIs400(t *testing.T) {
	stub := &reservationServiceStub{
		reserveErr: apperr.InvalidSeat("seat does not exist in this hall", "Z9"),
	}
	router := newBookingRouter(stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings",
		`{"screening_id":"`+uuid.NewString()+`","seats":["Z9"]}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingTransientIs503(t *testing.T) {
	stub := &reservationServiceStub{
		reserveErr: apperr.Transient("failed to reserve seats", assert.AnError),
	}
	router := newBookingRouter(stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings",
		`{"screening_id":"`+uuid.NewString()+`","seats":["A1"]}`))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	router := newBookingRouter(&reservationServiceStub{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetBookingNotFoundIs404(t *testing.T) {
	router := newBookingRouter(&reservationServiceStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/bookings/"+uuid.NewString(), ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirmBookingConflictIs409(t *testing.T) {
	router := newBookingRouter(&reservationServiceStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings/"+uuid.NewString()+"/confirm", ""))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelBookingSuccess(t *testing.T) {
	router := newBookingRouter(&reservationServiceStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/bookings/"+uuid.NewString(), ""))

	assert.Equal(t, http.StatusOK, rec.Code)
}
