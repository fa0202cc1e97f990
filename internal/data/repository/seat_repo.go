package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `
		INSERT INTO seats (id, hall_id, label, seat_row, seat_column, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, seat := range seats {
		_, err := r.db.Exec(ctx, query,
			seat.ID,
			seat.HallID,
			seat.Label,
			seat.SeatRow,
			seat.SeatColumn,
			seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create seat",
				zap.Error(err),
				zap.String("hall_id", seat.HallID.String()),
				zap.String("label", seat.Label),
			)
			return fmt.Errorf("create seat %s in hall %s: %w",
				seat.Label, seat.HallID.String(), err)
		}
	}

	return nil
}

func (r *seatRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, hall_id, label, seat_row, seat_column, created_at
		FROM seats
		WHERE hall_id = $1
		ORDER BY seat_row, seat_column
	`

	rows, err := r.db.Query(ctx, query, hallID)
	if err != nil {
		r.log.Error("Failed to find seats by hall ID",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("find seats by hall ID %s: %w", hallID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.Label,
			&seat.SeatRow,
			&seat.SeatColumn,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}
