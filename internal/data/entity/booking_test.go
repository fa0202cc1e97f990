package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	pending := &Booking{Status: BookingStatusPending}
	confirmed := &Booking{Status: BookingStatusConfirmed}
	cancelled := &Booking{Status: BookingStatusCancelled}

	assert.True(t, pending.CanConfirm())
	assert.False(t, confirmed.CanConfirm())
	assert.False(t, cancelled.CanConfirm())

	assert.True(t, pending.CanCancel())
	assert.True(t, confirmed.CanCancel())

	// Cancelled bersifat final
	assert.False(t, cancelled.CanCancel())
}
