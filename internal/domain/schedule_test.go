package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SPA-BookingService/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeploymentSchedule_IsOpenOn_NilSchedule(t *testing.T) {
	var s *DeploymentSchedule
	assert.True(t, s.IsOpenOn(date(2025, time.March, 10)))
}

func TestDeploymentSchedule_IsOpenOn_AlwaysOpen(t *testing.T) {
	s := &DeploymentSchedule{Type: ScheduleAlwaysOpen}
	assert.True(t, s.IsOpenOn(date(2025, time.March, 10)))
	assert.True(t, s.IsOpenOn(date(2030, time.December, 31)))
}

func TestDeploymentSchedule_IsOpenOn_OneTimeDates(t *testing.T) {
	s := &DeploymentSchedule{
		Type: ScheduleOneTimeDates,
		SpecificDates: []time.Time{
			date(2025, time.March, 10),
			date(2025, time.March, 15),
		},
	}

	assert.True(t, s.IsOpenOn(date(2025, time.March, 10)))
	assert.True(t, s.IsOpenOn(date(2025, time.March, 15)))
	assert.False(t, s.IsOpenOn(date(2025, time.March, 11)))

	// Сравнение только по дате, время внутри дня не влияет
	assert.True(t, s.IsOpenOn(time.Date(2025, time.March, 10, 18, 30, 0, 0, time.UTC)))
}

func TestDeploymentSchedule_IsOpenOn_RecurringWeekly_EveryWeek(t *testing.T) {
	// Понедельник и среда, каждая неделя
	s := &DeploymentSchedule{
		Type:                    ScheduleRecurringWeekly,
		DaysOfWeek:              []int{1, 3},
		RecurrenceIntervalWeeks: 1,
		RecurringStartDate:      date(2024, time.January, 1), // понедельник
	}

	assert.True(t, s.IsOpenOn(date(2024, time.January, 1)))  // Mon
	assert.True(t, s.IsOpenOn(date(2024, time.January, 3)))  // Wed
	assert.False(t, s.IsOpenOn(date(2024, time.January, 2))) // Tue
	assert.True(t, s.IsOpenOn(date(2024, time.January, 8)))  // Mon, неделя 1
}

func TestDeploymentSchedule_IsOpenOn_RecurringWeekly_EveryTwoWeeks(t *testing.T) {
	// Якорь 2024-01-01 (понедельник), каждые 2 недели
	s := &DeploymentSchedule{
		Type:                    ScheduleRecurringWeekly,
		DaysOfWeek:              []int{1}, // понедельники
		RecurrenceIntervalWeeks: 2,
		RecurringStartDate:      date(2024, time.January, 1),
	}

	assert.True(t, s.IsOpenOn(date(2024, time.January, 1)))   // неделя 0
	assert.False(t, s.IsOpenOn(date(2024, time.January, 8)))  // неделя 1
	assert.True(t, s.IsOpenOn(date(2024, time.January, 15)))  // неделя 2
	assert.False(t, s.IsOpenOn(date(2024, time.January, 22))) // неделя 3
	assert.True(t, s.IsOpenOn(date(2024, time.January, 29)))  // неделя 4
}

func TestDeploymentSchedule_IsOpenOn_RecurringWeekly_SameWeekIndexAcrossDays(t *testing.T) {
	// Номер недели общий для всех дней внутри неё: среда "включённой"
	// недели открыта, среда "выключенной" - закрыта, независимо от того,
	// что якорь приходится на понедельник
	s := &DeploymentSchedule{
		Type:                    ScheduleRecurringWeekly,
		DaysOfWeek:              []int{1, 3},
		RecurrenceIntervalWeeks: 2,
		RecurringStartDate:      date(2024, time.January, 1), // понедельник
	}

	assert.True(t, s.IsOpenOn(date(2024, time.January, 1)))   // Mon, неделя 0
	assert.True(t, s.IsOpenOn(date(2024, time.January, 3)))   // Wed, неделя 0
	assert.False(t, s.IsOpenOn(date(2024, time.January, 8)))  // Mon, неделя 1
	assert.False(t, s.IsOpenOn(date(2024, time.January, 10))) // Wed, неделя 1
	assert.True(t, s.IsOpenOn(date(2024, time.January, 17)))  // Wed, неделя 2
}

func TestDeploymentSchedule_IsOpenOn_RecurringWeekly_BeforeAnchor(t *testing.T) {
	s := &DeploymentSchedule{
		Type:                    ScheduleRecurringWeekly,
		DaysOfWeek:              []int{1},
		RecurrenceIntervalWeeks: 1,
		RecurringStartDate:      date(2024, time.June, 3),
	}

	// Понедельник до якоря - закрыто
	assert.False(t, s.IsOpenOn(date(2024, time.May, 27)))
	assert.True(t, s.IsOpenOn(date(2024, time.June, 3)))
}

func TestDeploymentSchedule_IsOpenOn_RecurringWeekly_EndDateInclusive(t *testing.T) {
	end := date(2024, time.June, 10)
	s := &DeploymentSchedule{
		Type:                    ScheduleRecurringWeekly,
		DaysOfWeek:              []int{1},
		RecurrenceIntervalWeeks: 1,
		RecurringStartDate:      date(2024, time.June, 3),
		RecurringEndDate:        &end,
	}

	assert.True(t, s.IsOpenOn(date(2024, time.June, 10)))  // последний день включительно
	assert.False(t, s.IsOpenOn(date(2024, time.June, 17))) // после конца
}

func TestDeploymentSchedule_IsOpenOn_RecurringWeekly_EmptyDays(t *testing.T) {
	// Пустой список дней недели означает "никогда", а не "каждый день"
	s := &DeploymentSchedule{
		Type:                    ScheduleRecurringWeekly,
		DaysOfWeek:              []int{},
		RecurrenceIntervalWeeks: 1,
		RecurringStartDate:      date(2024, time.January, 1),
	}

	assert.False(t, s.IsOpenOn(date(2024, time.January, 1)))
	assert.False(t, s.IsOpenOn(date(2024, time.January, 2)))
}

func TestBlockedWindow_Blocks_PartialOverlap(t *testing.T) {
	// Окно 12:00-13:00
	w := &BlockedWindow{
		StartTime: types.TimeString("12:00"),
		EndTime:   types.TimeString("13:00"),
		IsActive:  true,
	}
	monday := time.Monday

	// Слот целиком внутри окна
	assert.True(t, w.Blocks(types.TimeString("12:00"), 30, monday))
	assert.True(t, w.Blocks(types.TimeString("12:30"), 30, monday))

	// Слот частично пересекает окно - тоже блокируется
	assert.True(t, w.Blocks(types.TimeString("11:45"), 30, monday)) // [11:45, 12:15)
	assert.True(t, w.Blocks(types.TimeString("12:45"), 30, monday)) // [12:45, 13:15)

	// Слот, заканчивающийся ровно на начале окна, не блокируется
	assert.False(t, w.Blocks(types.TimeString("11:30"), 30, monday)) // [11:30, 12:00)
	// Слот, начинающийся ровно на конце окна, не блокируется
	assert.False(t, w.Blocks(types.TimeString("13:00"), 30, monday))
}

func TestBlockedWindow_Blocks_DayFilter(t *testing.T) {
	w := &BlockedWindow{
		StartTime:  types.TimeString("12:00"),
		EndTime:    types.TimeString("13:00"),
		DaysOfWeek: []int{1}, // только понедельник
		IsActive:   true,
	}

	assert.True(t, w.Blocks(types.TimeString("12:00"), 30, time.Monday))
	assert.False(t, w.Blocks(types.TimeString("12:00"), 30, time.Tuesday))
}

func TestBlockedWindow_Blocks_EmptyDaysAppliesEveryDay(t *testing.T) {
	w := &BlockedWindow{
		StartTime: types.TimeString("12:00"),
		EndTime:   types.TimeString("13:00"),
		IsActive:  true,
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		assert.True(t, w.Blocks(types.TimeString("12:00"), 30, wd), "weekday %s", wd)
	}
}

func TestBlockedWindow_Blocks_Inactive(t *testing.T) {
	w := &BlockedWindow{
		StartTime: types.TimeString("12:00"),
		EndTime:   types.TimeString("13:00"),
		IsActive:  false,
	}

	assert.False(t, w.Blocks(types.TimeString("12:00"), 30, time.Monday))
}
