package usecase

import (
	"cinema-reservation/internal/cache"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/queue"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Catalog     CatalogService
	Screening   ScreeningService
	Reservation ReservationService
}

func NewService(
	repo *repository.Repository,
	tx database.TxRunner,
	seatCache *cache.SeatCache,
	publisher *queue.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Catalog:     NewCatalogService(repo, log),
		Screening:   NewScreeningService(repo, seatCache, log),
		Reservation: NewReservationService(repo, tx, seatCache, publisher, log),
	}
}
