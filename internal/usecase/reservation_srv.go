package usecase

import (
	"context"
	"errors"
	"time"

	"cinema-reservation/internal/apperr"
	"cinema-reservation/internal/cache"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/queue"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// ReserveSeats membuat booking pending plus baris ledger kursinya dalam
	// satu transaksi. Kalau satu kursi saja sudah terisi, seluruh booking
	// batal dan tidak ada baris yang tersisa.
	ReserveSeats(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	GetBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID string) (*response.BookingDetailResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ConfirmBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) error
}

type reservationService struct {
	repo      *repository.Repository
	tx        database.TxRunner
	seatCache *cache.SeatCache
	publisher *queue.Publisher
	log       *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	tx database.TxRunner,
	seatCache *cache.SeatCache,
	publisher *queue.Publisher,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:      repo,
		tx:        tx,
		seatCache: seatCache,
		publisher: publisher,
		log:       log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) ReserveSeats(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validasi request
	if len(req.Seats) == 0 {
		return nil, apperr.InvalidSeat("no seats requested")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve validation failed", zap.Any("errors", errs))
		return nil, apperr.Invalid(utils.FormatValidationErrors(errs))
	}

	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		return nil, apperr.Invalid("invalid screening_id")
	}

	// Label duplikat dalam satu request ditolak, bukan di-dedupe diam-diam
	seen := make(map[string]bool, len(req.Seats))
	for _, label := range req.Seats {
		if seen[label] {
			return nil, apperr.InvalidSeat("duplicate seat in request", label)
		}
		seen[label] = true
	}

	// 2. Screening harus ada dan belum mulai
	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		s.log.Error("Failed to find screening", zap.Error(err), zap.String("screening_id", req.ScreeningID))
		return nil, apperr.Transient("failed to find screening", err)
	}
	if screening == nil {
		return nil, apperr.NotFound("screening")
	}
	if screening.StartsAt.Before(time.Now()) {
		return nil, apperr.Conflict("screening already started")
	}

	// 3. Resolve label ke kursi di layout hall
	seats, unknown, err := s.resolveSeats(ctx, screening.HallID, req.Seats)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return nil, apperr.InvalidSeat("seat does not exist in this hall", unknown...)
	}

	// 4. Booking pending + ledger dalam satu transaksi. Kursi terisi memicu
	// pelanggaran constraint unik di ledger; rollback memastikan booking
	// yang kalah tidak pernah tersimpan.
	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:     utils.GenerateOrderID(),
		UserID:      userID,
		ScreeningID: screeningID,
		TotalSeats:  len(seats),
		TotalPrice:  screening.Price * float64(len(seats)),
		Status:      entity.BookingStatusPending,
	}

	err = s.tx.WithinTx(ctx, func(tx database.Queryer) error {
		if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
			return err
		}
		return s.repo.SeatBooking.ReserveTx(ctx, tx, booking.ID, screeningID, seats)
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			if appErr.Kind == apperr.KindSeatConflict {
				s.log.Info("Seat conflict on reserve",
					zap.String("screening_id", req.ScreeningID),
					zap.Strings("seats", appErr.Seats))
			}
			return nil, err
		}
		s.log.Error("Reserve transaction failed", zap.Error(err), zap.String("screening_id", req.ScreeningID))
		return nil, apperr.Transient("failed to reserve seats", err)
	}

	// 5. Efek samping setelah commit; tidak boleh menggagalkan booking
	s.seatCache.Invalidate(ctx, screeningID.String())
	s.publishEvent(queue.EventBookingCreated, booking, req.Seats)

	s.log.Info("Seats reserved",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("screening_id", req.ScreeningID),
		zap.Int("seats", len(seats)))

	resp := response.BookingToResponse(booking, req.Seats)
	return &resp, nil
}

// resolveSeats menerjemahkan label user ke baris kursi hall. Label yang tak
// dikenal dikumpulkan semua supaya error menyebut tiap kursi bermasalah.
func (s *reservationService) resolveSeats(ctx context.Context, hallID uuid.UUID, labels []string) ([]*entity.Seat, []string, error) {
	hallSeats, err := s.repo.Seat.FindByHallID(ctx, hallID)
	if err != nil {
		s.log.Error("Failed to load hall seats", zap.Error(err), zap.String("hall_id", hallID.String()))
		return nil, nil, apperr.Transient("failed to load hall layout", err)
	}

	byLabel := make(map[string]*entity.Seat, len(hallSeats))
	for _, seat := range hallSeats {
		byLabel[seat.Label] = seat
	}

	seats := make([]*entity.Seat, 0, len(labels))
	var unknown []string
	for _, label := range labels {
		seat, ok := byLabel[label]
		if !ok {
			unknown = append(unknown, label)
			continue
		}
		seats = append(seats, seat)
	}

	return seats, unknown, nil
}

func (s *reservationService) GetBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID string) (*response.BookingDetailResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.Invalid("invalid booking id")
	}

	booking, err := s.findOwnedBooking(ctx, userID, isAdmin, id)
	if err != nil {
		return nil, err
	}

	// Jumlah baris ledger harus sama dengan total_seats selama booking belum
	// cancel. Selisih berarti data rusak; dilaporkan, tidak pernah ditambal.
	if booking.Status != entity.BookingStatusCancelled {
		count, err := s.repo.SeatBooking.CountByBookingID(ctx, id)
		if err != nil {
			s.log.Error("Failed to count booking seats", zap.Error(err), zap.String("booking_id", bookingID))
			return nil, apperr.Transient("failed to load booking seats", err)
		}
		if count != int64(booking.TotalSeats) {
			s.log.Error("Booking seat count mismatch",
				zap.String("booking_id", bookingID),
				zap.Int("expected", booking.TotalSeats),
				zap.Int64("actual", count))
			return nil, apperr.Consistency("booking seat records are inconsistent")
		}
	}

	seats, err := s.repo.SeatBooking.FindLabelsByBookingID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load booking seats", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, apperr.Transient("failed to load booking seats", err)
	}

	detail := &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking, seats),
	}

	if summary, err := s.screeningSummary(ctx, booking.ScreeningID); err == nil && summary != nil {
		detail.Screening = *summary
	}

	return detail, nil
}

func (s *reservationService) GetUserBookings(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Transient("failed to list bookings", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Transient("failed to list bookings", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		seats, err := s.repo.SeatBooking.FindLabelsByBookingID(ctx, b.ID)
		if err != nil {
			s.log.Error("Failed to load booking seats", zap.Error(err), zap.String("booking_id", b.ID.String()))
			return nil, apperr.Transient("failed to list bookings", err)
		}
		items = append(items, response.BookingToResponse(b, seats))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *reservationService) ConfirmBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.Invalid("invalid booking id")
	}

	booking, err := s.findOwnedBooking(ctx, userID, false, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanConfirm() {
		return nil, apperr.Conflict("only pending bookings can be confirmed")
	}

	var rows int64
	err = s.tx.WithinTx(ctx, func(tx database.Queryer) error {
		rows, err = s.repo.Booking.UpdateStatusTx(ctx, tx, id,
			[]entity.BookingStatus{entity.BookingStatusPending}, entity.BookingStatusConfirmed)
		return err
	})
	if err != nil {
		s.log.Error("Failed to confirm booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, apperr.Transient("failed to confirm booking", err)
	}
	if rows == 0 {
		// Status berubah di antara find dan update
		return nil, apperr.Conflict("booking can no longer be confirmed")
	}

	booking.Status = entity.BookingStatusConfirmed

	seats, err := s.repo.SeatBooking.FindLabelsByBookingID(ctx, id)
	if err != nil {
		s.log.Warn("Failed to load booking seats", zap.Error(err), zap.String("booking_id", bookingID))
	}

	s.publishEvent(queue.EventBookingConfirmed, booking, seats)

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID))

	resp := response.BookingToResponse(booking, seats)
	return &resp, nil
}

// CancelBooking melepas semua kursi booking dalam transaksi yang sama dengan
// perubahan status. Cancelled final; cancel kedua kali adalah conflict.
func (s *reservationService) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return apperr.Invalid("invalid booking id")
	}

	booking, err := s.findOwnedBooking(ctx, userID, false, id)
	if err != nil {
		return err
	}
	if !booking.CanCancel() {
		return apperr.Conflict("booking already cancelled")
	}

	seats, err := s.repo.SeatBooking.FindLabelsByBookingID(ctx, id)
	if err != nil {
		s.log.Warn("Failed to load booking seats before cancel", zap.Error(err), zap.String("booking_id", bookingID))
	}

	var rows int64
	err = s.tx.WithinTx(ctx, func(tx database.Queryer) error {
		rows, err = s.repo.Booking.UpdateStatusTx(ctx, tx, id,
			[]entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed},
			entity.BookingStatusCancelled)
		if err != nil {
			return err
		}
		if rows == 0 {
			return nil
		}
		return s.repo.SeatBooking.DeleteByBookingIDTx(ctx, tx, id)
	})
	if err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		return apperr.Transient("failed to cancel booking", err)
	}
	if rows == 0 {
		// Cancel lain menang duluan
		return apperr.Conflict("booking already cancelled")
	}

	s.seatCache.Invalidate(ctx, booking.ScreeningID.String())

	booking.Status = entity.BookingStatusCancelled
	s.publishEvent(queue.EventBookingCancelled, booking, seats)

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
		zap.Int("seats_released", len(seats)))

	return nil
}

// findOwnedBooking load booking dan tegakkan kepemilikan. Booking milik user
// lain dijawab not found supaya keberadaannya tidak bocor.
func (s *reservationService) findOwnedBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, apperr.Transient("failed to find booking", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking")
	}
	if !isAdmin && booking.UserID != userID {
		return nil, apperr.NotFound("booking")
	}
	return booking, nil
}

func (s *reservationService) screeningSummary(ctx context.Context, screeningID uuid.UUID) (*response.ScreeningSummary, error) {
	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil || screening == nil {
		return nil, err
	}

	summary := &response.ScreeningSummary{
		StartsAt: screening.StartsAt,
		Quality:  string(screening.Quality),
		Price:    screening.Price,
	}

	if movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID); err == nil && movie != nil {
		summary.MovieTitle = movie.Title
	}
	if theater, err := s.repo.Theater.FindByID(ctx, screening.TheaterID); err == nil && theater != nil {
		summary.TheaterName = theater.Name
	}
	if hall, err := s.repo.Hall.FindByID(ctx, screening.HallID); err == nil && hall != nil {
		summary.HallNumber = hall.HallNumber
	}

	return summary, nil
}

// publishEvent kirim event async dengan timeout sendiri; gagal publish cuma
// dicatat oleh publisher.
func (s *reservationService) publishEvent(event string, booking *entity.Booking, seats []string) {
	if s.publisher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.publisher.Publish(ctx, queue.BookingEvent{
			Event:       event,
			OrderID:     booking.OrderID,
			BookingID:   booking.ID.String(),
			UserID:      booking.UserID.String(),
			ScreeningID: booking.ScreeningID.String(),
			Seats:       seats,
			OccurredAt:  time.Now(),
		})
	}()
}
