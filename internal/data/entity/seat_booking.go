package entity

import "github.com/google/uuid"

// SeatBooking adalah baris ledger: satu kursi di satu screening milik satu
// booking. Identitas logisnya komposit (screening_id, seat_id); constraint
// UNIQUE di pasangan itu yang menjamin kursi tidak terjual dua kali.
type SeatBooking struct {
	BaseSimple
	BookingID   uuid.UUID `db:"booking_id"`
	ScreeningID uuid.UUID `db:"screening_id"`
	SeatID      uuid.UUID `db:"seat_id"`
}
