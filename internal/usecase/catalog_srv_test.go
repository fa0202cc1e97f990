package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeatGrid(t *testing.T) {
	hallID := uuid.New()
	seats := buildSeatGrid(hallID, 3, 4, time.Now())

	require.Len(t, seats, 12)

	assert.Equal(t, "A1", seats[0].Label)
	assert.Equal(t, "A", seats[0].SeatRow)
	assert.Equal(t, 1, seats[0].SeatColumn)

	assert.Equal(t, "C4", seats[11].Label)
	assert.Equal(t, "C", seats[11].SeatRow)
	assert.Equal(t, 4, seats[11].SeatColumn)

	// Label unik dan semua kursi milik hall yang sama
	labels := make(map[string]bool)
	for _, seat := range seats {
		assert.Equal(t, hallID, seat.HallID)
		assert.False(t, labels[seat.Label], "duplicate label %s", seat.Label)
		labels[seat.Label] = true
	}
}
