package schedule

import (
	"fmt"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/internal/service/schedule/models"
	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// validateOperatingProfile валидирует параметры рабочих часов
func validateOperatingProfile(data *models.OperatingProfileData) error {
	opening, err := types.NewTimeStringFromString(data.OpeningTime)
	if err != nil {
		return fmt.Errorf("%w: invalid openingTime: %v", ErrInvalidInput, err)
	}

	closing, err := types.NewTimeStringFromString(data.ClosingTime)
	if err != nil {
		return fmt.Errorf("%w: invalid closingTime: %v", ErrInvalidInput, err)
	}

	if !opening.IsBefore(closing) {
		return fmt.Errorf("%w: openingTime must be before closingTime", ErrInvalidInput)
	}

	if data.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || data.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if data.AdvanceBookingDays < domain.MinAdvanceBookingDays || data.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// validateDeploymentSchedule валидирует параметры расписания развертывания.
// Проверяется соответствие формы типу: recurring_weekly требует якорную дату
// и интервал повторения, one_time_dates - непустой список дат
func validateDeploymentSchedule(data *models.DeploymentScheduleData) error {
	switch domain.ScheduleType(data.Type) {
	case domain.ScheduleAlwaysOpen:
		return nil

	case domain.ScheduleRecurringWeekly:
		for _, day := range data.DaysOfWeek {
			if day < domain.MinWeekday || day > domain.MaxWeekday {
				return fmt.Errorf("%w: dayOfWeek must be between %d and %d",
					ErrInvalidInput, domain.MinWeekday, domain.MaxWeekday)
			}
		}
		if data.RecurrenceIntervalWeeks < 1 {
			return fmt.Errorf("%w: recurrenceIntervalWeeks must be at least 1", ErrInvalidInput)
		}
		if data.RecurringStartDate == nil {
			return fmt.Errorf("%w: recurringStartDate is required for recurring_weekly", ErrInvalidInput)
		}
		return nil

	case domain.ScheduleOneTimeDates:
		if len(data.SpecificDates) == 0 {
			return fmt.Errorf("%w: specificDates is required for one_time_dates", ErrInvalidInput)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown schedule type %q", ErrInvalidInput, data.Type)
	}
}

// validateBlockedWindows валидирует список заблокированных окон
func validateBlockedWindows(windows []models.BlockedWindowData) error {
	for i, w := range windows {
		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return fmt.Errorf("%w: window %d: invalid startTime: %v", ErrInvalidInput, i, err)
		}

		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return fmt.Errorf("%w: window %d: invalid endTime: %v", ErrInvalidInput, i, err)
		}

		if !start.IsBefore(end) {
			return fmt.Errorf("%w: window %d: startTime must be before endTime", ErrInvalidInput, i)
		}

		for _, day := range w.DaysOfWeek {
			if day < domain.MinWeekday || day > domain.MaxWeekday {
				return fmt.Errorf("%w: window %d: dayOfWeek must be between %d and %d",
					ErrInvalidInput, i, domain.MinWeekday, domain.MaxWeekday)
			}
		}
	}

	return nil
}
