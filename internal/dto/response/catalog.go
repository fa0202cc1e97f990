package response

import (
	"cinema-reservation/internal/data/entity"
)

type MovieResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	DurationMinutes int     `json:"duration_minutes"`
	Rating          *string `json:"rating,omitempty"`
}

type TheaterResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	City  string         `json:"city"`
	Halls []HallResponse `json:"halls,omitempty"`
}

type HallResponse struct {
	ID         string `json:"id"`
	TheaterID  string `json:"theater_id"`
	HallNumber int    `json:"hall_number"`
	TotalSeats int    `json:"total_seats"`
}

// Helper converters
func MovieToResponse(m *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:              m.ID.String(),
		Title:           m.Title,
		DurationMinutes: m.DurationMinutes,
		Rating:          m.Rating,
	}
}

func TheaterToResponse(t *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:   t.ID.String(),
		Name: t.Name,
		City: t.City,
	}
}

func HallToResponse(h *entity.Hall) HallResponse {
	return HallResponse{
		ID:         h.ID.String(),
		TheaterID:  h.TheaterID.String(),
		HallNumber: h.HallNumber,
		TotalSeats: h.TotalSeats,
	}
}
