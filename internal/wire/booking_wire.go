package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Reserve seats (creates pending booking)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - Booking history milik user sendiri
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id} - Booking detail (owner atau admin)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// POST /api/bookings/{id}/confirm - Naikkan pending ke confirmed
		r.Post("/api/bookings/{id}/confirm", bookingHandler.ConfirmBooking)

		// DELETE /api/bookings/{id} - Cancel booking dan lepas kursinya
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)
	})
}
