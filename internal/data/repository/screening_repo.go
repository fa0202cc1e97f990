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

type ScreeningRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	FindUpcoming(ctx context.Context, limit, offset int) ([]*entity.Screening, error)
	CountUpcoming(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	query := `
		INSERT INTO screenings (id, movie_id, theater_id, hall_id, starts_at, price, quality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieID,
		screening.TheaterID,
		screening.HallID,
		screening.StartsAt,
		screening.Price,
		screening.Quality,
		screening.CreatedAt,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("movie_id", screening.MovieID.String()),
			zap.String("hall_id", screening.HallID.String()),
		)
		return fmt.Errorf("create screening for movie %s hall %s: %w",
			screening.MovieID.String(), screening.HallID.String(), err)
	}

	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `
		SELECT id, movie_id, theater_id, hall_id, starts_at, price, quality, created_at, updated_at
		FROM screenings
		WHERE id = $1
	`

	var screening entity.Screening
	err := r.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.TheaterID,
		&screening.HallID,
		&screening.StartsAt,
		&screening.Price,
		&screening.Quality,
		&screening.CreatedAt,
		&screening.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return &screening, nil
}

func (r *screeningRepository) FindUpcoming(ctx context.Context, limit, offset int) ([]*entity.Screening, error) {
	query := `
		SELECT id, movie_id, theater_id, hall_id, starts_at, price, quality, created_at, updated_at
		FROM screenings
		WHERE starts_at > NOW()
		ORDER BY starts_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find upcoming screenings", zap.Error(err))
		return nil, fmt.Errorf("find upcoming screenings: %w", err)
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		var screening entity.Screening
		err := rows.Scan(
			&screening.ID,
			&screening.MovieID,
			&screening.TheaterID,
			&screening.HallID,
			&screening.StartsAt,
			&screening.Price,
			&screening.Quality,
			&screening.CreatedAt,
			&screening.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, &screening)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate screening rows: %w", err)
	}

	return screenings, nil
}

func (r *screeningRepository) CountUpcoming(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM screenings WHERE starts_at > NOW()`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count upcoming screenings", zap.Error(err))
		return 0, fmt.Errorf("count upcoming screenings: %w", err)
	}

	return count, nil
}

// Delete menghapus screening; FK cascade ikut menghapus baris ledger-nya,
// jadi kursi-kursinya langsung bebas.
func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM screenings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("delete screening %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s not found", id.String())
	}

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}
