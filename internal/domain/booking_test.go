package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SPA-BookingService/pkg/types"
)

func TestBooking_Occupies_PointInInterval(t *testing.T) {
	// Бронирование 10:00 на 60 минут занимает [10:00, 11:00)
	b := &Booking{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          StatusConfirmed,
	}

	assert.True(t, b.Occupies(types.TimeString("10:00")))
	assert.True(t, b.Occupies(types.TimeString("10:30")))
	assert.True(t, b.Occupies(types.TimeString("10:59")))

	// Конец интервала исключён
	assert.False(t, b.Occupies(types.TimeString("11:00")))
	assert.False(t, b.Occupies(types.TimeString("09:30")))

	// Слот, чей диапазон пересекается с бронированием, но чье НАЧАЛО лежит
	// до него, не считается занятым: проверяется точка начала, а не диапазон
	assert.False(t, b.Occupies(types.TimeString("09:45")))
}

func TestBooking_Occupies_DefaultDuration(t *testing.T) {
	b := &Booking{
		StartTime: types.TimeString("10:00"),
		Status:    StatusConfirmed,
	}

	// Без указанной длительности используется дефолт (30 минут)
	assert.True(t, b.Occupies(types.TimeString("10:00")))
	assert.True(t, b.Occupies(types.TimeString("10:29")))
	assert.False(t, b.Occupies(types.TimeString("10:30")))
}

func TestBooking_Occupies_UntilMidnight(t *testing.T) {
	// Бронирование, заканчивающееся ровно в полночь
	b := &Booking{
		StartTime:       types.TimeString("23:30"),
		DurationMinutes: 30,
		Status:          StatusConfirmed,
	}

	assert.True(t, b.Occupies(types.TimeString("23:30")))
	assert.True(t, b.Occupies(types.TimeString("23:45")))
}

func TestBooking_IsActive(t *testing.T) {
	active := []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress}
	inactive := []BookingStatus{StatusCompleted, StatusCancelledByUser, StatusCancelledByVenue, StatusNoShow}

	for _, st := range active {
		b := &Booking{Status: st}
		assert.True(t, b.IsActive(), "status %s", st)
	}
	for _, st := range inactive {
		b := &Booking{Status: st}
		assert.False(t, b.IsActive(), "status %s", st)
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusInProgress}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelledByUser}).CanBeCancelled())
}

func TestBooking_EndTime(t *testing.T) {
	b := &Booking{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 90,
	}

	end, err := b.EndTime()
	assert.NoError(t, err)
	assert.Equal(t, types.TimeString("11:30"), end)
}
