package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/movies", catalogHandler.ListMovies)
	r.Get("/api/theaters", catalogHandler.ListTheaters)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/api/admin/movies", catalogHandler.CreateMovie)
		r.Post("/api/admin/theaters", catalogHandler.CreateTheater)
		r.Post("/api/admin/halls", catalogHandler.CreateHall)
	})
}
