package request

type CreateScreeningRequest struct {
	MovieID  string  `json:"movie_id" validate:"required,uuid4"`
	HallID   string  `json:"hall_id" validate:"required,uuid4"`
	StartsAt string  `json:"starts_at" validate:"required"`
	Price    float64 `json:"price" validate:"min=0"`
	Quality  string  `json:"quality" validate:"omitempty,oneof=2D 3D IMAX 4DX"`
}
