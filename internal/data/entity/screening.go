package entity

import (
	"time"

	"github.com/google/uuid"
)

type ScreeningQuality string

const (
	Quality2D   ScreeningQuality = "2D"
	Quality3D   ScreeningQuality = "3D"
	QualityIMAX ScreeningQuality = "IMAX"
	Quality4DX  ScreeningQuality = "4DX"
)

// Screening dimiliki catalog; reservation core cuma membacanya.
type Screening struct {
	Base
	MovieID   uuid.UUID        `db:"movie_id"`
	TheaterID uuid.UUID        `db:"theater_id"`
	HallID    uuid.UUID        `db:"hall_id"`
	StartsAt  time.Time        `db:"starts_at"`
	Price     float64          `db:"price"`
	Quality   ScreeningQuality `db:"quality"`
}
