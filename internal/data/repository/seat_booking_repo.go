package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/apperr"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// pgUniqueViolation adalah SQLSTATE untuk pelanggaran unique constraint.
const pgUniqueViolation = "23505"

// SeatBookingRepository adalah ledger alokasi kursi: satu baris per kursi
// per screening. Constraint UNIQUE (screening_id, seat_id) di database
// adalah arbiter final; repo ini tidak pernah cek-dulu-baru-insert.
type SeatBookingRepository interface {
	// ReserveTx insert satu baris per kursi di dalam transaksi caller.
	// Pelanggaran unique constraint dikembalikan sebagai SeatConflict yang
	// menyebut label kursinya; transaksi pembungkus yang menjamin all-or-nothing.
	ReserveTx(ctx context.Context, q database.Queryer, bookingID, screeningID uuid.UUID, seats []*entity.Seat) error

	// DeleteByBookingIDTx melepas semua kursi milik satu booking. Idempotent:
	// nol baris terhapus bukan error.
	DeleteByBookingIDTx(ctx context.Context, q database.Queryer, bookingID uuid.UUID) error

	// FindTakenSeatIDs adalah potret sesaat untuk hint UI; kebenaran alokasi
	// tidak pernah bergantung padanya.
	FindTakenSeatIDs(ctx context.Context, screeningID uuid.UUID) ([]uuid.UUID, error)

	FindLabelsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]string, error)
	CountByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

type seatBookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatBookingRepository(db database.PgxIface, log *zap.Logger) SeatBookingRepository {
	return &seatBookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_booking")),
	}
}

func (r *seatBookingRepository) ReserveTx(ctx context.Context, q database.Queryer, bookingID, screeningID uuid.UUID, seats []*entity.Seat) error {
	query := `
		INSERT INTO seat_bookings (id, booking_id, screening_id, seat_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	for _, seat := range seats {
		_, err := q.Exec(ctx, query,
			uuid.New(),
			bookingID,
			screeningID,
			seat.ID,
			now,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				r.log.Warn("Seat already taken",
					zap.String("screening_id", screeningID.String()),
					zap.String("seat_label", seat.Label),
				)
				return apperr.SeatConflict(
					fmt.Sprintf("seat %s is already taken for this screening", seat.Label),
					seat.Label,
				)
			}

			r.log.Error("Failed to reserve seat",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
				zap.String("seat_label", seat.Label),
			)
			return fmt.Errorf("reserve seat %s for booking %s: %w",
				seat.Label, bookingID.String(), err)
		}
	}

	return nil
}

func (r *seatBookingRepository) DeleteByBookingIDTx(ctx context.Context, q database.Queryer, bookingID uuid.UUID) error {
	query := `DELETE FROM seat_bookings WHERE booking_id = $1`

	_, err := q.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to delete seat bookings by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("delete seat bookings by booking ID %s: %w", bookingID.String(), err)
	}

	return nil
}

func (r *seatBookingRepository) FindTakenSeatIDs(ctx context.Context, screeningID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT seat_id
		FROM seat_bookings
		WHERE screening_id = $1
	`

	rows, err := r.db.Query(ctx, query, screeningID)
	if err != nil {
		r.log.Error("Failed to find taken seats",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, fmt.Errorf("find taken seats for screening %s: %w", screeningID.String(), err)
	}
	defer rows.Close()

	var seatIDs []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			r.log.Error("Failed to scan seat ID row", zap.Error(err))
			return nil, fmt.Errorf("scan seat ID row: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate taken seat rows: %w", err)
	}

	return seatIDs, nil
}

func (r *seatBookingRepository) FindLabelsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]string, error) {
	query := `
		SELECT s.label
		FROM seat_bookings sb
		INNER JOIN seats s ON sb.seat_id = s.id
		WHERE sb.booking_id = $1
		ORDER BY s.seat_row, s.seat_column
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find seat labels by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find seat labels by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			r.log.Error("Failed to scan seat label row", zap.Error(err))
			return nil, fmt.Errorf("scan seat label row: %w", err)
		}
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat label rows: %w", err)
	}

	return labels, nil
}

func (r *seatBookingRepository) CountByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM seat_bookings WHERE booking_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, bookingID).Scan(&count); err != nil {
		r.log.Error("Failed to count seat bookings",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return 0, fmt.Errorf("count seat bookings for booking %s: %w", bookingID.String(), err)
	}

	return count, nil
}
