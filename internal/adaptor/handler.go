package adaptor

import (
	"cinema-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Screening *ScreeningHandler
	Booking   *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Catalog:   NewCatalogHandler(service.Catalog, log),
		Screening: NewScreeningHandler(service.Screening, log),
		Booking:   NewBookingHandler(service.Reservation, log),
	}
}
