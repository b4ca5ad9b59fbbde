package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SPA-BookingService/internal/service/schedule/models"
	"github.com/m04kA/SPA-BookingService/pkg/ptr"
)

func validProfile() *models.OperatingProfileData {
	return &models.OperatingProfileData{
		OpeningTime:         "09:00",
		ClosingTime:         "18:00",
		SlotIntervalMinutes: 30,
		AdvanceBookingDays:  14,
	}
}

func TestValidateOperatingProfile_Valid(t *testing.T) {
	assert.NoError(t, validateOperatingProfile(validProfile()))
}

func TestValidateOperatingProfile_InvalidTimes(t *testing.T) {
	p := validProfile()
	p.OpeningTime = "9:00"
	assert.ErrorIs(t, validateOperatingProfile(p), ErrInvalidInput)

	p = validProfile()
	p.ClosingTime = "24:00"
	assert.ErrorIs(t, validateOperatingProfile(p), ErrInvalidInput)

	// Открытие должно быть строго раньше закрытия
	p = validProfile()
	p.OpeningTime = "18:00"
	p.ClosingTime = "18:00"
	assert.ErrorIs(t, validateOperatingProfile(p), ErrInvalidInput)

	p = validProfile()
	p.OpeningTime = "19:00"
	assert.ErrorIs(t, validateOperatingProfile(p), ErrInvalidInput)
}

func TestValidateOperatingProfile_IntervalBounds(t *testing.T) {
	p := validProfile()
	p.SlotIntervalMinutes = 0
	assert.ErrorIs(t, validateOperatingProfile(p), ErrInvalidInput)

	p = validProfile()
	p.SlotIntervalMinutes = 481
	assert.ErrorIs(t, validateOperatingProfile(p), ErrInvalidInput)

	p = validProfile()
	p.SlotIntervalMinutes = 5
	assert.NoError(t, validateOperatingProfile(p))
}

func TestValidateOperatingProfile_AdvanceDaysBounds(t *testing.T) {
	p := validProfile()
	p.AdvanceBookingDays = -1
	assert.ErrorIs(t, validateOperatingProfile(p), ErrInvalidInput)

	p = validProfile()
	p.AdvanceBookingDays = 366
	assert.ErrorIs(t, validateOperatingProfile(p), ErrInvalidInput)
}

func TestValidateDeploymentSchedule_AlwaysOpen(t *testing.T) {
	assert.NoError(t, validateDeploymentSchedule(&models.DeploymentScheduleData{Type: "always_open"}))
}

func TestValidateDeploymentSchedule_RecurringWeekly(t *testing.T) {
	valid := &models.DeploymentScheduleData{
		Type:                    "recurring_weekly",
		DaysOfWeek:              []int{1, 3, 5},
		RecurrenceIntervalWeeks: 2,
		RecurringStartDate:      ptr.Ptr("2025-03-10"),
	}
	assert.NoError(t, validateDeploymentSchedule(valid))

	// Некорректный день недели
	bad := *valid
	bad.DaysOfWeek = []int{7}
	assert.ErrorIs(t, validateDeploymentSchedule(&bad), ErrInvalidInput)

	// Интервал меньше 1
	bad = *valid
	bad.RecurrenceIntervalWeeks = 0
	assert.ErrorIs(t, validateDeploymentSchedule(&bad), ErrInvalidInput)

	// Без якорной даты
	bad = *valid
	bad.RecurringStartDate = nil
	assert.ErrorIs(t, validateDeploymentSchedule(&bad), ErrInvalidInput)
}

func TestValidateDeploymentSchedule_OneTimeDates(t *testing.T) {
	valid := &models.DeploymentScheduleData{
		Type:          "one_time_dates",
		SpecificDates: []string{"2025-03-10", "2025-03-15"},
	}
	assert.NoError(t, validateDeploymentSchedule(valid))

	bad := &models.DeploymentScheduleData{Type: "one_time_dates"}
	assert.ErrorIs(t, validateDeploymentSchedule(bad), ErrInvalidInput)
}

func TestValidateDeploymentSchedule_UnknownType(t *testing.T) {
	assert.ErrorIs(t, validateDeploymentSchedule(&models.DeploymentScheduleData{Type: "sometimes"}), ErrInvalidInput)
}

func TestValidateBlockedWindows(t *testing.T) {
	valid := []models.BlockedWindowData{
		{StartTime: "12:00", EndTime: "13:00", IsActive: true},
		{StartTime: "17:00", EndTime: "18:00", DaysOfWeek: []int{5}, IsActive: true},
	}
	assert.NoError(t, validateBlockedWindows(valid))

	// Конец не позже начала
	bad := []models.BlockedWindowData{{StartTime: "13:00", EndTime: "12:00", IsActive: true}}
	assert.ErrorIs(t, validateBlockedWindows(bad), ErrInvalidInput)

	bad = []models.BlockedWindowData{{StartTime: "12:00", EndTime: "12:00", IsActive: true}}
	assert.ErrorIs(t, validateBlockedWindows(bad), ErrInvalidInput)

	// Некорректный формат времени
	bad = []models.BlockedWindowData{{StartTime: "noon", EndTime: "13:00", IsActive: true}}
	assert.ErrorIs(t, validateBlockedWindows(bad), ErrInvalidInput)

	// Некорректный день недели
	bad = []models.BlockedWindowData{{StartTime: "12:00", EndTime: "13:00", DaysOfWeek: []int{-1}, IsActive: true}}
	assert.ErrorIs(t, validateBlockedWindows(bad), ErrInvalidInput)
}
