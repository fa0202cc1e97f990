package response

import (
	"cinema-reservation/internal/data/entity"
	"time"
)

type ScreeningResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	TheaterID  string    `json:"theater_id"`
	HallID     string    `json:"hall_id"`
	StartsAt   time.Time `json:"starts_at"`
	Price      float64   `json:"price"`
	Quality    string    `json:"quality"`
}

// SeatMapResponse: potret layout hall plus kursi yang sudah terisi.
// Daftar taken bisa basi beberapa detik; kebenaran final ada di booking.
type SeatMapResponse struct {
	ScreeningID string     `json:"screening_id"`
	HallID      string     `json:"hall_id"`
	Seats       []SeatInfo `json:"seats"`
}

type SeatInfo struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Taken  bool   `json:"taken"`
}

// Helper converters
func ScreeningToResponse(s *entity.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID:        s.ID.String(),
		MovieID:   s.MovieID.String(),
		TheaterID: s.TheaterID.String(),
		HallID:    s.HallID.String(),
		StartsAt:  s.StartsAt,
		Price:     s.Price,
		Quality:   string(s.Quality),
	}
}
