package response

import (
	"cinema-reservation/internal/data/entity"
	"time"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	OrderID     string               `json:"order_id"`
	UserID      string               `json:"user_id"`
	ScreeningID string               `json:"screening_id"`
	TotalSeats  int                  `json:"total_seats"`
	TotalPrice  float64              `json:"total_price"`
	Status      entity.BookingStatus `json:"status"`
	Seats       []string             `json:"seats,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	Screening ScreeningSummary `json:"screening"`
}

type ScreeningSummary struct {
	MovieTitle  string    `json:"movie_title"`
	TheaterName string    `json:"theater_name"`
	HallNumber  int       `json:"hall_number"`
	StartsAt    time.Time `json:"starts_at"`
	Quality     string    `json:"quality"`
	Price       float64   `json:"price"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, seats []string) BookingResponse {
	return BookingResponse{
		ID:          booking.ID.String(),
		OrderID:     booking.OrderID,
		UserID:      booking.UserID.String(),
		ScreeningID: booking.ScreeningID.String(),
		TotalSeats:  booking.TotalSeats,
		TotalPrice:  booking.TotalPrice,
		Status:      booking.Status,
		Seats:       seats,
		CreatedAt:   booking.CreatedAt,
	}
}
