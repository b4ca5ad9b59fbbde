package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/SPA-BookingService/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	slots := generateSlots(types.TimeString("09:00"), types.TimeString("11:00"), 30)

	expected := []types.TimeString{"09:00", "09:30", "10:00", "10:30"}
	assert.Equal(t, expected, slots)
}

func TestGenerateSlots_ClosingExcluded(t *testing.T) {
	// Слот, начинающийся ровно в closingTime, не входит в сетку
	slots := generateSlots(types.TimeString("09:00"), types.TimeString("10:00"), 60)
	assert.Equal(t, []types.TimeString{"09:00"}, slots)
}

func TestGenerateSlots_EmptyWindow(t *testing.T) {
	assert.Empty(t, generateSlots(types.TimeString("10:00"), types.TimeString("10:00"), 30))
	assert.Empty(t, generateSlots(types.TimeString("12:00"), types.TimeString("10:00"), 30))
	assert.Empty(t, generateSlots(types.TimeString("09:00"), types.TimeString("10:00"), 0))
}

func TestGenerateSlots_UnalignedClosing(t *testing.T) {
	// 09:00-10:15 с шагом 30: последний слот 10:00, хотя интервал обрезан закрытием
	slots := generateSlots(types.TimeString("09:00"), types.TimeString("10:15"), 30)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, slots)
}

func TestMaxLeadTimeMinutes(t *testing.T) {
	assert.Equal(t, 0, maxLeadTimeMinutes(nil))

	treatments := []*venueservice.Treatment{
		{LeadTimeMinutes: 15},
		{LeadTimeMinutes: 120},
		{LeadTimeMinutes: 0},
	}
	assert.Equal(t, 120, maxLeadTimeMinutes(treatments))
}

func TestEarliestBookableMinutes_RoundsUp(t *testing.T) {
	// 09:47 + 15 минут lead = 10:02, округление вверх до шага 30 -> 10:30
	now := time.Date(2025, time.March, 10, 9, 47, 0, 0, time.UTC)
	assert.Equal(t, 10*60+30, earliestBookableMinutes(now, 15, 30))
}

func TestEarliestBookableMinutes_ExactBoundaryNotRounded(t *testing.T) {
	// 09:30 + 30 минут lead = 10:00 - уже на границе сетки, не сдвигается
	now := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, 10*60, earliestBookableMinutes(now, 30, 30))
}

func TestEarliestBookableMinutes_ZeroLead(t *testing.T) {
	// Без lead time округляется только текущее время
	now := time.Date(2025, time.March, 10, 9, 1, 0, 0, time.UTC)
	assert.Equal(t, 9*60+30, earliestBookableMinutes(now, 0, 30))

	now = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 9*60, earliestBookableMinutes(now, 0, 30))
}

func TestEarliestBookableMinutes_PastEndOfDay(t *testing.T) {
	// Результат может выйти за пределы суток - тогда ни один слот дня не пройдёт
	now := time.Date(2025, time.March, 10, 23, 50, 0, 0, time.UTC)
	earliest := earliestBookableMinutes(now, 60, 30)
	assert.Greater(t, earliest, 24*60)
}

func TestIsSlotBlocked(t *testing.T) {
	windows := []*domain.BlockedWindow{
		{StartTime: "12:00", EndTime: "13:00", IsActive: true},
		{StartTime: "17:00", EndTime: "18:00", DaysOfWeek: []int{5}, IsActive: true},
	}

	assert.True(t, isSlotBlocked(types.TimeString("12:30"), 30, time.Monday, windows))
	assert.False(t, isSlotBlocked(types.TimeString("14:00"), 30, time.Monday, windows))

	// Второе окно действует только по пятницам
	assert.True(t, isSlotBlocked(types.TimeString("17:30"), 30, time.Friday, windows))
	assert.False(t, isSlotBlocked(types.TimeString("17:30"), 30, time.Monday, windows))
}

func TestIsSlotOpen_RoomCapacity(t *testing.T) {
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}
	therapists := []int64{1, 2, 3}

	// Две комнаты заняты из двух - слот закрыт
	assert.False(t, isSlotOpen(types.TimeString("10:00"), bookings, 2, therapists))
	// Из трёх комнат одна свободна
	assert.True(t, isSlotOpen(types.TimeString("10:00"), bookings, 3, therapists))
}

func TestIsSlotOpen_TherapistPool(t *testing.T) {
	t1, t2 := int64(1), int64(2)
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed, TherapistID: &t1},
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed, TherapistID: &t2},
	}

	// Комнат достаточно, но оба терапевта заняты
	assert.False(t, isSlotOpen(types.TimeString("10:30"), bookings, 10, []int64{1, 2}))
	// Третий терапевт свободен
	assert.True(t, isSlotOpen(types.TimeString("10:30"), bookings, 10, []int64{1, 2, 3}))
}

func TestIsSlotOpen_PoolsAreIndependent(t *testing.T) {
	// Бронирование без терапевта занимает комнату, но не терапевта
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}

	assert.False(t, isSlotOpen(types.TimeString("10:00"), bookings, 1, []int64{1, 2}))
	assert.True(t, isSlotOpen(types.TimeString("10:00"), bookings, 2, []int64{1, 2}))
}

func TestIsSlotOpen_InactiveBookingsIgnored(t *testing.T) {
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusCancelledByUser},
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusCompleted},
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusNoShow},
	}

	assert.True(t, isSlotOpen(types.TimeString("10:00"), bookings, 1, []int64{1}))
}

func TestIsSlotOpen_LongBookingCoversLaterSlots(t *testing.T) {
	// Бронирование 10:00 на 90 минут занимает слоты 10:00, 10:30 и 11:00
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 90, Status: domain.StatusConfirmed},
	}
	therapists := []int64{1}

	assert.False(t, isSlotOpen(types.TimeString("10:00"), bookings, 1, therapists))
	assert.False(t, isSlotOpen(types.TimeString("10:30"), bookings, 1, therapists))
	assert.False(t, isSlotOpen(types.TimeString("11:00"), bookings, 1, therapists))
	assert.True(t, isSlotOpen(types.TimeString("11:30"), bookings, 1, therapists))
	// Слот до начала бронирования открыт, даже если их диапазоны пересеклись бы
	assert.True(t, isSlotOpen(types.TimeString("09:30"), bookings, 1, therapists))
}
