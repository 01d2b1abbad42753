//go:build unit

package booking_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStayPeriod(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		errIs    error
		nights   int
	}{
		{
			name:     "valid three night stay",
			checkIn:  "01-06-2024",
			checkOut: "04-06-2024",
			nights:   3,
		},
		{
			name:     "single night",
			checkIn:  "28-02-2024",
			checkOut: "29-02-2024",
			nights:   1,
		},
		{
			name:     "spans month boundary",
			checkIn:  "30-06-2024",
			checkOut: "02-07-2024",
			nights:   2,
		},
		{
			name:     "checkout equals checkin",
			checkIn:  "01-06-2024",
			checkOut: "01-06-2024",
			errIs:    booking.ErrInvalidStayPeriod,
		},
		{
			name:     "checkout before checkin",
			checkIn:  "04-06-2024",
			checkOut: "01-06-2024",
			errIs:    booking.ErrInvalidStayPeriod,
		},
		{
			name:     "iso format rejected",
			checkIn:  "2024-06-01",
			checkOut: "2024-06-04",
			errIs:    booking.ErrInvalidDateFormat,
		},
		{
			name:     "garbage rejected",
			checkIn:  "first of june",
			checkOut: "04-06-2024",
			errIs:    booking.ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := booking.ParseStayPeriod(tt.checkIn, tt.checkOut)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.nights, stay.Nights())
			assert.Equal(t, tt.checkIn, stay.CheckIn().Format(booking.DateLayout))
			assert.Equal(t, tt.checkOut, stay.CheckOut().Format(booking.DateLayout))
		})
	}
}

func TestStayPeriodOverlaps(t *testing.T) {
	mustStay := func(in, out string) booking.StayPeriod {
		stay, err := booking.ParseStayPeriod(in, out)
		require.NoError(t, err)
		return stay
	}

	existing := mustStay("01-06-2024", "05-06-2024")

	tests := []struct {
		name      string
		candidate booking.StayPeriod
		overlaps  bool
	}{
		{
			name:      "overlap at the tail",
			candidate: mustStay("04-06-2024", "06-06-2024"),
			overlaps:  true,
		},
		{
			name:      "back to back after checkout",
			candidate: mustStay("05-06-2024", "07-06-2024"),
			overlaps:  false,
		},
		{
			name:      "back to back before checkin",
			candidate: mustStay("30-05-2024", "01-06-2024"),
			overlaps:  false,
		},
		{
			name:      "fully contained",
			candidate: mustStay("02-06-2024", "03-06-2024"),
			overlaps:  true,
		},
		{
			name:      "fully containing",
			candidate: mustStay("30-05-2024", "10-06-2024"),
			overlaps:  true,
		},
		{
			name:      "identical interval",
			candidate: mustStay("01-06-2024", "05-06-2024"),
			overlaps:  true,
		},
		{
			name:      "disjoint after",
			candidate: mustStay("10-06-2024", "12-06-2024"),
			overlaps:  false,
		},
		{
			name:      "disjoint before",
			candidate: mustStay("20-05-2024", "25-05-2024"),
			overlaps:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, existing.Overlaps(tt.candidate))
			// Overlap is symmetric
			assert.Equal(t, tt.overlaps, tt.candidate.Overlaps(existing))
		})
	}
}

func TestNewStayPeriodTruncatesToDate(t *testing.T) {
	in := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	out := time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)

	stay, err := booking.NewStayPeriod(in, out)
	require.NoError(t, err)

	assert.Equal(t, 3, stay.Nights())
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), stay.CheckIn())
}

func TestMoney(t *testing.T) {
	m, err := booking.NewMoney(10000)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), m.Multiply(3).Cents())
	assert.Equal(t, 100.0, m.Units())

	_, err = booking.NewMoney(-1)
	assert.ErrorIs(t, err, booking.ErrNegativeAmount)
}

func TestStatus(t *testing.T) {
	assert.True(t, booking.StatusUnpaid.IsValid())
	assert.True(t, booking.StatusConfirmed.IsValid())
	assert.True(t, booking.StatusCanceled.IsValid())
	assert.False(t, booking.Status("pending").IsValid())
}
