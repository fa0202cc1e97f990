package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking dibuat bersama baris SeatBooking-nya dalam satu transaksi dan
// memiliki lifecycle mereka: cancel booking melepas semua kursinya.
type Booking struct {
	Base
	OrderID     string        `db:"order_id"`
	UserID      uuid.UUID     `db:"user_id"`
	ScreeningID uuid.UUID     `db:"screening_id"`
	TotalSeats  int           `db:"total_seats"`
	TotalPrice  float64       `db:"total_price"`
	Status      BookingStatus `db:"status"`
}

// CanConfirm: hanya pending yang boleh naik ke confirmed.
func (b *Booking) CanConfirm() bool {
	return b.Status == BookingStatusPending
}

// CanCancel: cancelled bersifat final, tidak ada un-cancel.
func (b *Booking) CanCancel() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
