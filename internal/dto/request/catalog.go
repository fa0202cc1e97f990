package request

type CreateMovieRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=255"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1"`
	Rating          *string `json:"rating,omitempty" validate:"omitempty,max=10"`
}

type CreateTheaterRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	City string `json:"city" validate:"required,min=1,max=100"`
}

// CreateHallRequest: grid kursi di-generate otomatis dari rows x columns,
// label baris A..Z.
type CreateHallRequest struct {
	TheaterID  string `json:"theater_id" validate:"required,uuid4"`
	HallNumber int    `json:"hall_number" validate:"required,min=1"`
	Rows       int    `json:"rows" validate:"required,min=1,max=26"`
	Columns    int    `json:"columns" validate:"required,min=1,max=50"`
}
