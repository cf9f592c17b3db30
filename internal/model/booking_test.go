package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{BookingPendingPayment, BookingPaid},
		{BookingPendingPayment, BookingCancelled},
		{BookingPaid, BookingAssigned},
		{BookingPaid, BookingCancelled},
		{BookingAssigned, BookingInProgress},
		{BookingAssigned, BookingCancelled},
		{BookingInProgress, BookingCompleted},
		{BookingInProgress, BookingCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionBooking(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{BookingPendingPayment, BookingAssigned},
		{BookingPendingPayment, BookingCompleted},
		{BookingPaid, BookingCompleted},
		{BookingCompleted, BookingCancelled},
		{BookingCancelled, BookingPendingPayment},
		{BookingCompleted, BookingInProgress},
		{"nonsense", BookingPaid},
		{BookingPaid, "nonsense"},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionBooking(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []string{
		BookingPendingPayment, BookingPaid, BookingAssigned,
		BookingInProgress, BookingCompleted, BookingCancelled,
	} {
		assert.True(t, ValidBookingStatus(s), s)
	}
	assert.False(t, ValidBookingStatus("deleted"))
	assert.False(t, ValidBookingStatus(""))
}

func TestValidFleetStatus(t *testing.T) {
	assert.True(t, ValidFleetStatus(FleetAvailable))
	assert.True(t, ValidFleetStatus(FleetRepair))
	assert.False(t, ValidFleetStatus("retired"))
}
