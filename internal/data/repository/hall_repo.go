package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HallRepository interface {
	Create(ctx context.Context, hall *entity.Hall) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
	FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Hall, error)
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.Hall) error {
	query := `
		INSERT INTO halls (id, theater_id, hall_number, total_seats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		hall.ID,
		hall.TheaterID,
		hall.HallNumber,
		hall.TotalSeats,
		hall.CreatedAt,
		hall.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("theater_id", hall.TheaterID.String()),
			zap.Int("hall_number", hall.HallNumber),
		)
		return fmt.Errorf("create hall %d for theater %s: %w",
			hall.HallNumber, hall.TheaterID.String(), err)
	}

	return nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	query := `
		SELECT id, theater_id, hall_number, total_seats, created_at, updated_at
		FROM halls
		WHERE id = $1
	`

	var hall entity.Hall
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.TheaterID,
		&hall.HallNumber,
		&hall.TotalSeats,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by ID",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return nil, fmt.Errorf("find hall by ID %s: %w", id.String(), err)
	}

	return &hall, nil
}

func (r *hallRepository) FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Hall, error) {
	query := `
		SELECT id, theater_id, hall_number, total_seats, created_at, updated_at
		FROM halls
		WHERE theater_id = $1
		ORDER BY hall_number
	`

	rows, err := r.db.Query(ctx, query, theaterID)
	if err != nil {
		r.log.Error("Failed to find halls by theater ID",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
		)
		return nil, fmt.Errorf("find halls by theater ID %s: %w", theaterID.String(), err)
	}
	defer rows.Close()

	var halls []*entity.Hall
	for rows.Next() {
		var hall entity.Hall
		err := rows.Scan(
			&hall.ID,
			&hall.TheaterID,
			&hall.HallNumber,
			&hall.TotalSeats,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan hall row", zap.Error(err))
			return nil, fmt.Errorf("scan hall row: %w", err)
		}
		halls = append(halls, &hall)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate hall rows: %w", err)
	}

	return halls, nil
}
