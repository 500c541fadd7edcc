//go:build unit

package booking_test

import (
	"testing"
	"time"

	"tablebook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		wantErr error
	}{
		{name: "valid range", start: 18, end: 19},
		{name: "zero start is a valid slot", start: 0, end: 1},
		{name: "start equals end", start: 18, end: 18, wantErr: booking.ErrInvalidSlot},
		{name: "start after end", start: 20, end: 18, wantErr: booking.ErrInvalidSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := booking.NewSlot(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, slot.Start())
			assert.Equal(t, tt.end, slot.End())
		})
	}
}

func TestSlotOverlaps(t *testing.T) {
	mustSlot := func(start, end int) booking.Slot {
		s, err := booking.NewSlot(start, end)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name string
		a    booking.Slot
		b    booking.Slot
		want bool
	}{
		{name: "identical slots", a: mustSlot(18, 19), b: mustSlot(18, 19), want: true},
		{name: "partial overlap from the left", a: mustSlot(18, 20), b: mustSlot(19, 21), want: true},
		{name: "contained slot", a: mustSlot(18, 22), b: mustSlot(19, 20), want: true},
		{name: "containing slot", a: mustSlot(19, 20), b: mustSlot(18, 22), want: true},
		{name: "back-to-back slots do not overlap", a: mustSlot(18, 19), b: mustSlot(19, 21), want: false},
		{name: "back-to-back slots reversed", a: mustSlot(19, 21), b: mustSlot(18, 19), want: false},
		{name: "disjoint slots", a: mustSlot(10, 12), b: mustSlot(14, 16), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestNewBooking(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	slot, err := booking.NewSlot(18, 19)
	require.NoError(t, err)

	t.Run("defaults status when empty", func(t *testing.T) {
		b, err := booking.New("T1", date, slot, "Anna", "+100", 2, "phone", 2, "", "")
		require.NoError(t, err)
		assert.Equal(t, booking.DefaultStatus, b.Status())
	})

	t.Run("keeps explicit status", func(t *testing.T) {
		b, err := booking.New("T1", date, slot, "Anna", "+100", 2, "phone", 2, "", "seated")
		require.NoError(t, err)
		assert.Equal(t, "seated", b.Status())
	})

	t.Run("rejects empty table", func(t *testing.T) {
		_, err := booking.New("", date, slot, "Anna", "+100", 2, "phone", 2, "", "")
		assert.ErrorIs(t, err, booking.ErrMissingTable)
	})

	t.Run("normalizes date to midnight UTC", func(t *testing.T) {
		b, err := booking.New("T1", time.Date(2024, 5, 1, 17, 45, 3, 0, time.UTC), slot, "Anna", "+100", 2, "phone", 2, "", "")
		require.NoError(t, err)
		assert.Equal(t, date, b.Date())
	})
}

func TestBookingConflictsWith(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	otherDate := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	mk := func(table string, d time.Time, start, end int, status string) *booking.Booking {
		slot, err := booking.NewSlot(start, end)
		require.NoError(t, err)
		b, err := booking.New(table, d, slot, "Anna", "+100", 2, "phone", 2, "", status)
		require.NoError(t, err)
		return b
	}

	t.Run("same table, same date, overlapping slot", func(t *testing.T) {
		assert.True(t, mk("T1", date, 18, 20, "").ConflictsWith(mk("T1", date, 18, 19, "")))
	})

	t.Run("different table never conflicts", func(t *testing.T) {
		assert.False(t, mk("T1", date, 18, 20, "").ConflictsWith(mk("T2", date, 18, 19, "")))
	})

	t.Run("different date never conflicts", func(t *testing.T) {
		assert.False(t, mk("T1", date, 18, 20, "").ConflictsWith(mk("T1", otherDate, 18, 19, "")))
	})

	t.Run("status does not exempt a row from blocking", func(t *testing.T) {
		assert.True(t, mk("T1", date, 18, 20, "cancelled").ConflictsWith(mk("T1", date, 18, 19, "")))
	})
}
