package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireScreening(
	r chi.Router,
	screeningHandler *adaptor.ScreeningHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Seat map bisa dilihat tanpa login supaya user lihat kursi sebelum daftar
	r.Get("/api/screenings", screeningHandler.ListScreenings)
	r.Get("/api/screenings/{id}", screeningHandler.GetScreening)
	r.Get("/api/screenings/{id}/seats", screeningHandler.SeatMap)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/api/admin/screenings", screeningHandler.CreateScreening)
		r.Delete("/api/admin/screenings/{id}", screeningHandler.DeleteScreening)
	})
}
