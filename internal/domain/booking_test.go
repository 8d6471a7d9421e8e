package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingPredicates(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeEdited())
	assert.True(t, b.HoldsReleasableSlot())

	b.Status = StatusCompleted
	assert.True(t, b.IsActive())
	assert.False(t, b.HoldsReleasableSlot())
	assert.True(t, b.Status.IsTerminal())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
	assert.True(t, b.IsCancelled())

	assert.False(t, BookingStatus("no_show").IsValid())
}
