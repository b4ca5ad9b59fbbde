package domain

import "github.com/m04kA/SPA-BookingService/pkg/types"

// Default operating profile values (applied when the venue has no profile record)
const (
	DefaultOpeningTime              = types.TimeString("06:00")
	DefaultClosingTime              = types.TimeString("23:00")
	DefaultSlotIntervalMinutes      = 30
	DefaultTreatmentDurationMinutes = 30
	DefaultLeadTimeMinutes          = 0
	DefaultAdvanceBookingDays       = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MaxLeadTimeMinutes          = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MinWeekday                  = 0 // Sunday
	MaxWeekday                  = 6 // Saturday
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих ёмкость площадки
// Используется для фильтрации при подсчёте доступных слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByVenue,
	StatusCompleted,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}
