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
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreeningService interface {
	CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error)
	GetScreening(ctx context.Context, id string) (*response.ScreeningResponse, error)
	ListScreenings(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ScreeningResponse], error)
	SeatMap(ctx context.Context, screeningID string) (*response.SeatMapResponse, error)
	DeleteScreening(ctx context.Context, id string) error
}

type screeningService struct {
	repo      *repository.Repository
	seatCache *cache.SeatCache
	log       *zap.Logger
}

func NewScreeningService(repo *repository.Repository, seatCache *cache.SeatCache, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo:      repo,
		seatCache: seatCache,
		log:       log.With(zap.String("service", "screening")),
	}
}

func (s *screeningService) CreateScreening(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid(utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, apperr.Invalid("invalid movie_id")
	}
	hallID, err := uuid.Parse(req.HallID)
	if err != nil {
		return nil, apperr.Invalid("invalid hall_id")
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, apperr.Invalid("starts_at must be RFC3339")
	}
	if startsAt.Before(time.Now()) {
		return nil, apperr.Invalid("starts_at must be in the future")
	}

	// 2. Referensi harus ada
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, apperr.Transient("failed to find movie", err)
	}
	if movie == nil {
		return nil, apperr.NotFound("movie")
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		s.log.Error("Failed to find hall", zap.Error(err), zap.String("hall_id", req.HallID))
		return nil, apperr.Transient("failed to find hall", err)
	}
	if hall == nil {
		return nil, apperr.NotFound("hall")
	}

	quality := entity.ScreeningQuality(req.Quality)
	if req.Quality == "" {
		quality = entity.Quality2D
	}

	// 3. Create
	now := time.Now()
	screening := &entity.Screening{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieID,
		TheaterID: hall.TheaterID,
		HallID:    hallID,
		StartsAt:  startsAt,
		Price:     req.Price,
		Quality:   quality,
	}

	if err := s.repo.Screening.Create(ctx, screening); err != nil {
		s.log.Error("Failed to create screening", zap.Error(err))
		return nil, apperr.Transient("failed to create screening", err)
	}

	s.log.Info("Screening created",
		zap.String("screening_id", screening.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.Time("starts_at", startsAt))

	resp := response.ScreeningToResponse(screening)
	resp.MovieTitle = movie.Title
	return &resp, nil
}

func (s *screeningService) GetScreening(ctx context.Context, id string) (*response.ScreeningResponse, error) {
	screeningID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Invalid("invalid screening id")
	}

	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		s.log.Error("Failed to find screening", zap.Error(err), zap.String("screening_id", id))
		return nil, apperr.Transient("failed to find screening", err)
	}
	if screening == nil {
		return nil, apperr.NotFound("screening")
	}

	resp := response.ScreeningToResponse(screening)

	if movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID); err == nil && movie != nil {
		resp.MovieTitle = movie.Title
	}

	return &resp, nil
}

func (s *screeningService) ListScreenings(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ScreeningResponse], error) {
	screenings, err := s.repo.Screening.FindUpcoming(ctx, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list screenings", zap.Error(err))
		return nil, apperr.Transient("failed to list screenings", err)
	}

	total, err := s.repo.Screening.CountUpcoming(ctx)
	if err != nil {
		s.log.Error("Failed to count screenings", zap.Error(err))
		return nil, apperr.Transient("failed to list screenings", err)
	}

	// Judul film di-resolve sekali per movie, bukan per screening
	titles := make(map[uuid.UUID]string)
	items := make([]response.ScreeningResponse, 0, len(screenings))
	for _, sc := range screenings {
		resp := response.ScreeningToResponse(sc)

		title, ok := titles[sc.MovieID]
		if !ok {
			if movie, err := s.repo.Movie.FindByID(ctx, sc.MovieID); err == nil && movie != nil {
				title = movie.Title
			}
			titles[sc.MovieID] = title
		}
		resp.MovieTitle = title

		items = append(items, resp)
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

// SeatMap mengembalikan layout hall plus flag taken per kursi. Daftar taken
// boleh basi beberapa detik (cache); arbiter sebenarnya tetap constraint
// unik di ledger saat booking dibuat.
func (s *screeningService) SeatMap(ctx context.Context, screeningID string) (*response.SeatMapResponse, error) {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, apperr.Invalid("invalid screening id")
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find screening", zap.Error(err), zap.String("screening_id", screeningID))
		return nil, apperr.Transient("failed to find screening", err)
	}
	if screening == nil {
		return nil, apperr.NotFound("screening")
	}

	seats, err := s.repo.Seat.FindByHallID(ctx, screening.HallID)
	if err != nil {
		s.log.Error("Failed to load hall seats", zap.Error(err), zap.String("hall_id", screening.HallID.String()))
		return nil, apperr.Transient("failed to load seats", err)
	}

	taken, err := s.takenSeatSet(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &response.SeatMapResponse{
		ScreeningID: id.String(),
		HallID:      screening.HallID.String(),
		Seats:       make([]response.SeatInfo, 0, len(seats)),
	}
	for _, seat := range seats {
		resp.Seats = append(resp.Seats, response.SeatInfo{
			ID:     seat.ID.String(),
			Label:  seat.Label,
			Row:    int(seat.SeatRow[0]-'A') + 1,
			Column: seat.SeatColumn,
			Taken:  taken[seat.ID.String()],
		})
	}

	return resp, nil
}

func (s *screeningService) takenSeatSet(ctx context.Context, screeningID uuid.UUID) (map[string]bool, error) {
	taken := make(map[string]bool)

	cached, err := s.seatCache.GetTakenSeats(ctx, screeningID.String())
	if err == nil {
		for _, id := range cached {
			taken[id] = true
		}
		return taken, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("Seat cache read failed", zap.Error(err), zap.String("screening_id", screeningID.String()))
	}

	ids, err := s.repo.SeatBooking.FindTakenSeatIDs(ctx, screeningID)
	if err != nil {
		s.log.Error("Failed to load taken seats", zap.Error(err), zap.String("screening_id", screeningID.String()))
		return nil, apperr.Transient("failed to load taken seats", err)
	}

	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		taken[id.String()] = true
		strIDs = append(strIDs, id.String())
	}
	s.seatCache.SetTakenSeats(ctx, screeningID.String(), strIDs)

	return taken, nil
}

// DeleteScreening hapus screening; cascade di database ikut melepas semua
// baris ledger screening itu.
func (s *screeningService) DeleteScreening(ctx context.Context, id string) error {
	screeningID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Invalid("invalid screening id")
	}

	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		s.log.Error("Failed to find screening", zap.Error(err), zap.String("screening_id", id))
		return apperr.Transient("failed to find screening", err)
	}
	if screening == nil {
		return apperr.NotFound("screening")
	}

	if err := s.repo.Screening.Delete(ctx, screeningID); err != nil {
		s.log.Error("Failed to delete screening", zap.Error(err), zap.String("screening_id", id))
		return apperr.Transient("failed to delete screening", err)
	}

	s.seatCache.Invalidate(ctx, id)

	s.log.Info("Screening deleted", zap.String("screening_id", id))
	return nil
}
