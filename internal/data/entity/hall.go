package entity

import "github.com/google/uuid"

type Hall struct {
	Base
	TheaterID  uuid.UUID `db:"theater_id"`
	HallNumber int       `db:"hall_number"`
	TotalSeats int       `db:"total_seats"`
}
