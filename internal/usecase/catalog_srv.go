package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/apperr"
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	ListMovies(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error)
	ListTheaters(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TheaterResponse], error)
	CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid(utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Rating:          req.Rating,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		return nil, apperr.Transient("failed to create movie", err)
	}

	s.log.Info("Movie created", zap.String("movie_id", movie.ID.String()), zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *catalogService) ListMovies(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err))
		return nil, apperr.Transient("failed to list movies", err)
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, apperr.Transient("failed to list movies", err)
	}

	items := make([]response.MovieResponse, 0, len(movies))
	for _, m := range movies {
		items = append(items, response.MovieToResponse(m))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *catalogService) CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid(utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	theater := &entity.Theater{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
		City: req.City,
	}

	if err := s.repo.Theater.Create(ctx, theater); err != nil {
		s.log.Error("Failed to create theater", zap.Error(err), zap.String("name", req.Name))
		return nil, apperr.Transient("failed to create theater", err)
	}

	s.log.Info("Theater created", zap.String("theater_id", theater.ID.String()))

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *catalogService) ListTheaters(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TheaterResponse], error) {
	theaters, err := s.repo.Theater.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list theaters", zap.Error(err))
		return nil, apperr.Transient("failed to list theaters", err)
	}

	items := make([]response.TheaterResponse, 0, len(theaters))
	for _, t := range theaters {
		resp := response.TheaterToResponse(t)

		halls, err := s.repo.Hall.FindByTheaterID(ctx, t.ID)
		if err != nil {
			s.log.Error("Failed to load halls", zap.Error(err), zap.String("theater_id", t.ID.String()))
			return nil, apperr.Transient("failed to list theaters", err)
		}
		for _, h := range halls {
			resp.Halls = append(resp.Halls, response.HallToResponse(h))
		}

		items = append(items, resp)
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), int64(len(items))), nil
}

// CreateHall membuat hall beserta grid kursinya sekaligus. Layout kursi
// immutable setelah dibuat; booking merujuk seat ID dari grid ini.
func (s *catalogService) CreateHall(ctx context.Context, req *request.CreateHallRequest) (*response.HallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid(utils.FormatValidationErrors(errs))
	}

	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, apperr.Invalid("invalid theater_id")
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		s.log.Error("Failed to find theater", zap.Error(err), zap.String("theater_id", req.TheaterID))
		return nil, apperr.Transient("failed to find theater", err)
	}
	if theater == nil {
		return nil, apperr.NotFound("theater")
	}

	now := time.Now()
	hall := &entity.Hall{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TheaterID:  theaterID,
		HallNumber: req.HallNumber,
		TotalSeats: req.Rows * req.Columns,
	}

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		s.log.Error("Failed to create hall", zap.Error(err), zap.String("theater_id", req.TheaterID))
		return nil, apperr.Transient("failed to create hall", err)
	}

	seats := buildSeatGrid(hall.ID, req.Rows, req.Columns, now)
	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		s.log.Error("Failed to create seats", zap.Error(err), zap.String("hall_id", hall.ID.String()))
		return nil, apperr.Transient("failed to create hall seats", err)
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.Int("hall_number", hall.HallNumber),
		zap.Int("total_seats", hall.TotalSeats))

	resp := response.HallToResponse(hall)
	return &resp, nil
}

// buildSeatGrid generate label A1..A{cols}, B1.., satu baris per huruf.
func buildSeatGrid(hallID uuid.UUID, rows, columns int, createdAt time.Time) []*entity.Seat {
	seats := make([]*entity.Seat, 0, rows*columns)
	for r := 0; r < rows; r++ {
		rowLetter := string(rune('A' + r))
		for c := 1; c <= columns; c++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: createdAt,
				},
				HallID:     hallID,
				Label:      fmt.Sprintf("%s%d", rowLetter, c),
				SeatRow:    rowLetter,
				SeatColumn: c,
			})
		}
	}
	return seats
}
