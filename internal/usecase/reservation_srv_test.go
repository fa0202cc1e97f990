package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/apperr"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== STUBS ====================

type txRunnerStub struct {
	commitErr error
	calls     int
}

func (t *txRunnerStub) WithinTx(ctx context.Context, fn func(tx database.Queryer) error) error {
	t.calls++
	if err := fn(nil); err != nil {
		return err
	}
	return t.commitErr
}

type screeningRepoStub struct {
	repository.ScreeningRepository
	screening *entity.Screening
	err       error
}

func (s *screeningRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	return s.screening, s.err
}

type seatRepoStub struct {
	repository.SeatRepository
	seats []*entity.Seat
	err   error
}

func (s *seatRepoStub) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	return s.seats, s.err
}

type movieRepoStub struct {
	repository.MovieRepository
	movie *entity.Movie
}

func (s *movieRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	return s.movie, nil
}

type theaterRepoStub struct {
	repository.TheaterRepository
	theater *entity.Theater
}

func (s *theaterRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error) {
	return s.theater, nil
}

type hallRepoStub struct {
	repository.HallRepository
	hall *entity.Hall
}

func (s *hallRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	return s.hall, nil
}

type bookingRepoStub struct {
	repository.BookingRepository
	created    *entity.Booking
	createErr  error
	booking    *entity.Booking
	findErr    error
	updateRows int64
	updateErr  error
	updatedTo  entity.BookingStatus
}

func (s *bookingRepoStub) CreateTx(ctx context.Context, q database.Queryer, booking *entity.Booking) error {
	s.created = booking
	return s.createErr
}

func (s *bookingRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return s.booking, s.findErr
}

func (s *bookingRepoStub) UpdateStatusTx(ctx context.Context, q database.Queryer, bookingID uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus) (int64, error) {
	s.updatedTo = to
	return s.updateRows, s.updateErr
}

type seatBookingRepoStub struct {
	repository.SeatBookingRepository
	reservedSeats []*entity.Seat
	reserveErr    error
	deleted       bool
	labels        []string
	labelsErr     error
	countErr      error
	takenIDs      []uuid.UUID
}

func (s *seatBookingRepoStub) ReserveTx(ctx context.Context, q database.Queryer, bookingID, screeningID uuid.UUID, seats []*entity.Seat) error {
	s.reservedSeats = seats
	return s.reserveErr
}

func (s *seatBookingRepoStub) DeleteByBookingIDTx(ctx context.Context, q database.Queryer, bookingID uuid.UUID) error {
	s.deleted = true
	return nil
}

func (s *seatBookingRepoStub) FindLabelsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]string, error) {
	return s.labels, s.labelsErr
}

// Default count mengikuti jumlah label supaya fixture tetap konsisten.
func (s *seatBookingRepoStub) CountByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.labels)), nil
}

func (s *seatBookingRepoStub) FindTakenSeatIDs(ctx context.Context, screeningID uuid.UUID) ([]uuid.UUID, error) {
	return s.takenIDs, nil
}

// ==================== FIXTURE ====================

type reservationFixture struct {
	service   ReservationService
	tx        *txRunnerStub
	screening *screeningRepoStub
	seats     *seatRepoStub
	bookings  *bookingRepoStub
	ledger    *seatBookingRepoStub
	repos     *repository.Repository
	userID    uuid.UUID
}

func (f *reservationFixture) repo() *repository.Repository {
	return f.repos
}

func newReservationFixture() *reservationFixture {
	hallID := uuid.New()
	screening := &entity.Screening{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		MovieID:   uuid.New(),
		TheaterID: uuid.New(),
		HallID:    hallID,
		StartsAt:  time.Now().Add(2 * time.Hour),
		Price:     50000,
		Quality:   entity.Quality2D,
	}

	var seats []*entity.Seat
	for _, row := range []string{"A", "B"} {
		for col := 1; col <= 4; col++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
				HallID:     hallID,
				Label:      row + string(rune('0'+col)),
				SeatRow:    row,
				SeatColumn: col,
			})
		}
	}

	f := &reservationFixture{
		tx:        &txRunnerStub{},
		screening: &screeningRepoStub{screening: screening},
		seats:     &seatRepoStub{seats: seats},
		bookings:  &bookingRepoStub{},
		ledger:    &seatBookingRepoStub{},
		userID:    uuid.New(),
	}

	repo := &repository.Repository{
		Movie:       &movieRepoStub{movie: &entity.Movie{Base: entity.Base{ID: screening.MovieID}, Title: "Interstellar"}},
		Theater:     &theaterRepoStub{theater: &entity.Theater{Base: entity.Base{ID: screening.TheaterID}, Name: "Grand City XXI"}},
		Hall:        &hallRepoStub{hall: &entity.Hall{Base: entity.Base{ID: hallID}, TheaterID: screening.TheaterID, HallNumber: 3, TotalSeats: 8}},
		Screening:   f.screening,
		Seat:        f.seats,
		Booking:     f.bookings,
		SeatBooking: f.ledger,
	}

	f.repos = repo
	f.service = NewReservationService(repo, f.tx, nil, nil, zap.NewNop())
	return f
}

func (f *reservationFixture) reserveRequest(seats ...string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ScreeningID: f.screening.screening.ID.String(),
		Seats:       seats,
	}
}

// ==================== RESERVE ====================

func TestReserveSeatsSuccess(t *testing.T) {
	f := newReservationFixture()

	resp, err := f.service.ReserveSeats(context.Background(), f.userID, f.reserveRequest("A1", "A2"))

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, 2, resp.TotalSeats)
	assert.Equal(t, float64(100000), resp.TotalPrice)
	assert.Equal(t, []string{"A1", "A2"}, resp.Seats)
	assert.NotEmpty(t, resp.OrderID)

	// Booking dan ledger dibuat dalam satu scope transaksi
	assert.Equal(t, 1, f.tx.calls)
	require.NotNil(t, f.bookings.created)
	assert.Equal(t, f.userID, f.bookings.created.UserID)
	assert.Len(t, f.ledger.reservedSeats, 2)
	assert.Equal(t, "A1", f.ledger.reservedSeats[0].Label)
}

func TestReserveSeatsConflictAbortsBooking(t *testing.T) {
	f := newReservationFixture()
	f.ledger.reserveErr = apperr.SeatConflict("seat A1 is already taken for this screening", "A1")

	resp, err := f.service.ReserveSeats(context.Background(), f.userID, f.reserveRequest("A1", "A2"))

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, apperr.KindSeatConflict, apperr.KindOf(err))
	assert.Equal(t, []string{"A1"}, apperr.SeatsOf(err))
}

func TestReserveSeatsEmptySet(t *testing.T) {
	f := newReservationFixture()

	_, err := f.service.ReserveSeats(context.Background(), f.userID, f.reserveRequest())

	assert.Equal(t, apperr.KindInvalidSeat, apperr.KindOf(err))
	assert.Equal(t, 0, f.tx.calls)
}

func TestReserveSeatsUnknownLabels(t *testing.T) {
	f := newReservationFixture()

	_, err := f.service.ReserveSeats(context.Background(), f.userID, f.reserveRequest("A1", "Z9", "Z10"))

	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidSeat, apperr.KindOf(err))

	// Semua label tak dikenal disebut, bukan cuma yang pertama
	assert.Equal(t, []string{"Z9", "Z10"}, apperr.SeatsOf(err))
	assert.Equal(t, 0, f.tx.calls)
}

func TestReserveSeatsDuplicateLabels(t *testing.T) {
	f := newReservationFixture()

	_, err := f.service.ReserveSeats(context.Background(), f.userID, f.reserveRequest("A1", "A1"))

	assert.Equal(t, apperr.KindInvalidSeat, apperr.KindOf(err))
	assert.Equal(t, []string{"A1"}, apperr.SeatsOf(err))
}

func TestReserveSeatsScreeningNotFound(t *testing.T) {
	f := newReservationFixture()
	f.screening.screening = nil

	req := &request.CreateBookingRequest{ScreeningID: uuid.NewString(), Seats: []string{"A1"}}
	_, err := f.service.ReserveSeats(context.Background(), f.userID, req)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReserveSeatsScreeningStarted(t *testing.T) {
	f := newReservationFixture()
	f.screening.screening.StartsAt = time.Now().Add(-10 * time.Minute)

	_, err := f.service.ReserveSeats(context.Background(), f.userID, f.reserveRequest("A1"))

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestReserveSeatsStorageFailureIsTransient(t *testing.T) {
	f := newReservationFixture()
	f.tx.commitErr = errors.New("connection reset by peer")

	_, err := f.service.ReserveSeats(context.Background(), f.userID, f.reserveRequest("A1"))

	require.Error(t, err)
	assert.Equal(t, apperr.KindTransient, apperr.KindOf(err))
}

// ==================== GET ====================

func newOwnedBooking(f *reservationFixture, status entity.BookingStatus, totalSeats int) *entity.Booking {
	return &entity.Booking{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		OrderID:     "BOOK-20260831-120000-0001",
		UserID:      f.userID,
		ScreeningID: f.screening.screening.ID,
		TotalSeats:  totalSeats,
		TotalPrice:  50000 * float64(totalSeats),
		Status:      status,
	}
}

func TestGetBookingOwnership(t *testing.T) {
	f := newReservationFixture()
	booking := newOwnedBooking(f, entity.BookingStatusPending, 1)
	booking.UserID = uuid.New() // milik user lain
	f.bookings.booking = booking
	f.ledger.labels = []string{"A1"}

	_, err := f.service.GetBooking(context.Background(), f.userID, false, booking.ID.String())

	// Keberadaan booking orang lain tidak boleh bocor
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// Admin boleh lihat semua booking
	resp, err := f.service.GetBooking(context.Background(), f.userID, true, booking.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, resp.Seats)
}

func TestGetBookingSeatCountMismatchIsConsistency(t *testing.T) {
	f := newReservationFixture()
	f.bookings.booking = newOwnedBooking(f, entity.BookingStatusPending, 2)
	f.ledger.labels = []string{"A1"} // satu baris hilang

	_, err := f.service.GetBooking(context.Background(), f.userID, false, f.bookings.booking.ID.String())

	assert.Equal(t, apperr.KindConsistency, apperr.KindOf(err))
}

func TestGetBookingCountFailureIsTransient(t *testing.T) {
	// Kegagalan baca bukan data rusak; harus retryable, bukan Consistency.
	f := newReservationFixture()
	f.bookings.booking = newOwnedBooking(f, entity.BookingStatusPending, 2)
	f.ledger.countErr = errors.New("unexpected EOF on connection")

	_, err := f.service.GetBooking(context.Background(), f.userID, false, f.bookings.booking.ID.String())

	assert.Equal(t, apperr.KindTransient, apperr.KindOf(err))
}

func TestGetBookingCancelledSkipsCountCheck(t *testing.T) {
	f := newReservationFixture()
	f.bookings.booking = newOwnedBooking(f, entity.BookingStatusCancelled, 2)
	f.ledger.labels = nil // kursi sudah dilepas

	resp, err := f.service.GetBooking(context.Background(), f.userID, false, f.bookings.booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
}

// ==================== CONFIRM ====================

func TestConfirmBookingSuccess(t *testing.T) {
	f := newReservationFixture()
	f.bookings.booking = newOwnedBooking(f, entity.BookingStatusPending, 1)
	f.bookings.updateRows = 1
	f.ledger.labels = []string{"A1"}

	resp, err := f.service.ConfirmBooking(context.Background(), f.userID, f.bookings.booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, entity.BookingStatusConfirmed, f.bookings.updatedTo)
}

func TestConfirmBookingAlreadyConfirmed(t *testing.T) {
	f := newReservationFixture()
	f.bookings.booking = newOwnedBooking(f, entity.BookingStatusConfirmed, 1)

	_, err := f.service.ConfirmBooking(context.Background(), f.userID, f.bookings.booking.ID.String())

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, 0, f.tx.calls)
}

func TestConfirmBookingLostRace(t *testing.T) {
	f := newReservationFixture()
	f.bookings.booking = newOwnedBooking(f, entity.BookingStatusPending, 1)
	f.bookings.updateRows = 0 // status berubah setelah find

	_, err := f.service.ConfirmBooking(context.Background(), f.userID, f.bookings.booking.ID.String())

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

// ==================== CANCEL ====================

func TestCancelBookingReleasesSeats(t *testing.T) {
	f := newReservationFixture()
	f.bookings.booking = newOwnedBooking(f, entity.BookingStatusConfirmed, 2)
	f.bookings.updateRows = 1
	f.ledger.labels = []string{"A1", "A2"}

	err := f.service.CancelBooking(context.Background(), f.userID, f.bookings.booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, f.bookings.updatedTo)
	assert.True(t, f.ledger.deleted)
	assert.Equal(t, 1, f.tx.calls)
}

func TestCancelBookingTwiceIsConflict(t *testing.T) {
	f := newReservationFixture()
	f.bookings.booking = newOwnedBooking(f, entity.BookingStatusCancelled, 1)

	err := f.service.CancelBooking(context.Background(), f.userID, f.bookings.booking.ID.String())

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.False(t, f.ledger.deleted)
}

func TestCancelBookingLostRace(t *testing.T) {
	f := newReservationFixture()
	f.bookings.booking = newOwnedBooking(f, entity.BookingStatusPending, 1)
	f.bookings.updateRows = 0 // cancel lain menang duluan

	err := f.service.CancelBooking(context.Background(), f.userID, f.bookings.booking.ID.String())

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.False(t, f.ledger.deleted)
}

func TestCancelBookingNotFound(t *testing.T) {
	f := newReservationFixture()
	f.bookings.booking = nil

	err := f.service.CancelBooking(context.Background(), f.userID, uuid.NewString())

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
