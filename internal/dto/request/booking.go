package request

// CreateBookingRequest membawa kursi sebagai label ("A1", "B7") seperti yang
// dilihat user; service yang menerjemahkan ke seat ID lewat layout hall.
type CreateBookingRequest struct {
	ScreeningID string   `json:"screening_id" validate:"required,uuid4"`
	Seats       []string `json:"seats" validate:"required,min=1,max=10,dive,required"`
}
