package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindSeatConflict, KindOf(SeatConflict("seat A1 is taken", "A1")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("booking")))
	assert.Equal(t, KindTransient, KindOf(Transient("db down", errors.New("conn refused"))))

	// Error biasa jatuh ke internal
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	inner := SeatConflict("seat B2 is taken", "B2")
	wrapped := fmt.Errorf("reserve failed: %w", inner)

	assert.Equal(t, KindSeatConflict, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindSeatConflict))
	assert.False(t, IsKind(wrapped, KindConflict))
}

func TestSeatsOf(t *testing.T) {
	err := InvalidSeat("unknown seats", "Z9", "Z10")
	assert.Equal(t, []string{"Z9", "Z10"}, SeatsOf(err))

	assert.Nil(t, SeatsOf(NotFound("screening")))
	assert.Nil(t, SeatsOf(errors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Transient("query failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "TRANSIENT")
	assert.Contains(t, err.Error(), "connection reset")
}
