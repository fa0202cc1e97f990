package entity

import "github.com/google/uuid"

// Seat adalah satu posisi di layout hall. Label unik per hall (A1, A2, B1).
type Seat struct {
	BaseSimple
	HallID     uuid.UUID `db:"hall_id"`
	Label      string    `db:"label"`
	SeatRow    string    `db:"seat_row"`    // A, B, C, etc.
	SeatColumn int       `db:"seat_column"` // 1, 2, 3, etc.
}
