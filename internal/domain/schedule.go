package domain

import (
	"time"

	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// ScheduleType determines which shape of the deployment schedule is populated
type ScheduleType string

const (
	// ScheduleAlwaysOpen venue operates every day
	ScheduleAlwaysOpen ScheduleType = "always_open"
	// ScheduleRecurringWeekly venue operates on selected weekdays every N weeks
	ScheduleRecurringWeekly ScheduleType = "recurring_weekly"
	// ScheduleOneTimeDates venue operates only on an explicit list of dates
	ScheduleOneTimeDates ScheduleType = "one_time_dates"
)

// DeploymentSchedule describes which calendar dates a venue is open for
// booking at all. A venue without a schedule record is treated as always open.
type DeploymentSchedule struct {
	ID      int64
	VenueID int64
	Type    ScheduleType

	// recurring_weekly shape
	DaysOfWeek              []int // 0 = Sunday ... 6 = Saturday
	RecurrenceIntervalWeeks int   // "каждые N недель", минимум 1
	RecurringStartDate      time.Time
	RecurringEndDate        *time.Time // inclusive; nil = unbounded

	// one_time_dates shape
	SpecificDates []time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpenOn reports whether the venue operates on the given date.
// A nil schedule means always open.
//
// For recurring_weekly the week index is counted from the anchor date's
// midnight: days 0-6 after the anchor are week 0, days 7-13 week 1, and so
// on. The venue is open when the week index is divisible by
// RecurrenceIntervalWeeks and the weekday is in DaysOfWeek. An empty
// DaysOfWeek matches no date.
func (s *DeploymentSchedule) IsOpenOn(date time.Time) bool {
	if s == nil {
		return true
	}

	switch s.Type {
	case ScheduleAlwaysOpen:
		return true

	case ScheduleOneTimeDates:
		day := dateOnlyUTC(date)
		for _, d := range s.SpecificDates {
			if dateOnlyUTC(d).Equal(day) {
				return true
			}
		}
		return false

	case ScheduleRecurringWeekly:
		if len(s.DaysOfWeek) == 0 {
			return false
		}
		if !containsWeekday(s.DaysOfWeek, int(date.Weekday())) {
			return false
		}

		day := dateOnlyUTC(date)
		anchor := dateOnlyUTC(s.RecurringStartDate)
		if day.Before(anchor) {
			return false
		}
		if s.RecurringEndDate != nil && day.After(dateOnlyUTC(*s.RecurringEndDate)) {
			return false
		}

		interval := s.RecurrenceIntervalWeeks
		if interval <= 1 {
			return true
		}

		days := int(day.Sub(anchor).Hours() / 24)
		return (days/7)%interval == 0

	default:
		return false
	}
}

// BlockedWindow is an administratively closed time range within otherwise
// open hours (например, обеденный перерыв). Windows are same-day only.
type BlockedWindow struct {
	ID         int64
	VenueID    int64
	StartTime  types.TimeString
	EndTime    types.TimeString
	DaysOfWeek []int // пустой список = действует каждый день
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AppliesOn reports whether the window is in effect on the given weekday
func (w *BlockedWindow) AppliesOn(weekday time.Weekday) bool {
	if !w.IsActive {
		return false
	}
	if len(w.DaysOfWeek) == 0 {
		return true
	}
	return containsWeekday(w.DaysOfWeek, int(weekday))
}

// Blocks reports whether the window overlaps the slot range
// [slotStart, slotStart + slotIntervalMinutes) on the given weekday.
// Overlap, not containment: a slot that only partially covers the window
// still counts, erring toward unavailability.
func (w *BlockedWindow) Blocks(slotStart types.TimeString, slotIntervalMinutes int, weekday time.Weekday) bool {
	if !w.AppliesOn(weekday) {
		return false
	}
	slotStartMin := slotStart.TotalMinutes()
	slotEndMin := slotStartMin + slotIntervalMinutes
	return slotStartMin < w.EndTime.TotalMinutes() && slotEndMin > w.StartTime.TotalMinutes()
}

// VenueOperatingProfile operating hours and slot granularity of a venue
type VenueOperatingProfile struct {
	ID                  int64
	VenueID             int64
	OpeningTime         types.TimeString
	ClosingTime         types.TimeString
	SlotIntervalMinutes int
	AdvanceBookingDays  int // 0 = без ограничения
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p *VenueOperatingProfile) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// dateOnlyUTC нормализует дату к полуночи UTC, чтобы разница дат считалась
// в целых днях независимо от перехода на летнее время
func dateOnlyUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func containsWeekday(days []int, weekday int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
