package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidScheduleType возвращается при неизвестном типе расписания
	ErrInvalidScheduleType = errors.New("invalid schedule type")
)

// Request модели

// OperatingProfileData параметры рабочих часов площадки
type OperatingProfileData struct {
	OpeningTime         string `json:"openingTime"`         // "06:00"
	ClosingTime         string `json:"closingTime"`         // "23:00"
	SlotIntervalMinutes int    `json:"slotIntervalMinutes"` // Шаг сетки слотов
	AdvanceBookingDays  int    `json:"advanceBookingDays"`  // 0 = без ограничения
}

// DeploymentScheduleData параметры расписания развертывания площадки
type DeploymentScheduleData struct {
	Type                    string   `json:"type"` // always_open | recurring_weekly | one_time_dates
	DaysOfWeek              []int    `json:"daysOfWeek,omitempty"`
	RecurrenceIntervalWeeks int      `json:"recurrenceIntervalWeeks,omitempty"`
	RecurringStartDate      *string  `json:"recurringStartDate,omitempty"` // "2025-03-10"
	RecurringEndDate        *string  `json:"recurringEndDate,omitempty"`
	SpecificDates           []string `json:"specificDates,omitempty"`
}

// BlockedWindowData параметры заблокированного окна
type BlockedWindowData struct {
	StartTime  string `json:"startTime"` // "12:00"
	EndTime    string `json:"endTime"`   // "13:00"
	DaysOfWeek []int  `json:"daysOfWeek,omitempty"`
	IsActive   bool   `json:"isActive"`
}

// UpdateVenueScheduleRequest запрос на обновление расписания площадки
// Каждая секция опциональна - nil означает "не менять"
type UpdateVenueScheduleRequest struct {
	UserID             int64                   `json:"userId"`
	OperatingProfile   *OperatingProfileData   `json:"operatingProfile,omitempty"`
	DeploymentSchedule *DeploymentScheduleData `json:"deploymentSchedule,omitempty"`
	BlockedWindows     *[]BlockedWindowData    `json:"blockedWindows,omitempty"`
}

// Response модели

// VenueScheduleResponse полное расписание площадки
type VenueScheduleResponse struct {
	VenueID            int64                   `json:"venueId"`
	OperatingProfile   OperatingProfileData    `json:"operatingProfile"`
	DeploymentSchedule *DeploymentScheduleData `json:"deploymentSchedule,omitempty"` // nil = всегда открыто
	BlockedWindows     []BlockedWindowData     `json:"blockedWindows"`
}

// Методы конвертации

// ToDomainProfile конвертирует DTO в domain модель
func (d *OperatingProfileData) ToDomainProfile(venueID int64) *domain.VenueOperatingProfile {
	return &domain.VenueOperatingProfile{
		VenueID:             venueID,
		OpeningTime:         types.TimeString(d.OpeningTime),
		ClosingTime:         types.TimeString(d.ClosingTime),
		SlotIntervalMinutes: d.SlotIntervalMinutes,
		AdvanceBookingDays:  d.AdvanceBookingDays,
	}
}

// FromDomainProfile конвертирует domain модель в DTO
func FromDomainProfile(p *domain.VenueOperatingProfile) OperatingProfileData {
	return OperatingProfileData{
		OpeningTime:         p.OpeningTime.String(),
		ClosingTime:         p.ClosingTime.String(),
		SlotIntervalMinutes: p.SlotIntervalMinutes,
		AdvanceBookingDays:  p.AdvanceBookingDays,
	}
}

// ToDomainSchedule конвертирует DTO в domain модель
func (d *DeploymentScheduleData) ToDomainSchedule(venueID int64) (*domain.DeploymentSchedule, error) {
	scheduleType := domain.ScheduleType(d.Type)
	switch scheduleType {
	case domain.ScheduleAlwaysOpen, domain.ScheduleRecurringWeekly, domain.ScheduleOneTimeDates:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidScheduleType, d.Type)
	}

	schedule := &domain.DeploymentSchedule{
		VenueID:                 venueID,
		Type:                    scheduleType,
		DaysOfWeek:              d.DaysOfWeek,
		RecurrenceIntervalWeeks: d.RecurrenceIntervalWeeks,
	}

	if d.RecurringStartDate != nil {
		start, err := time.Parse(domain.DateFormat, *d.RecurringStartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, *d.RecurringStartDate)
		}
		schedule.RecurringStartDate = start
	}

	if d.RecurringEndDate != nil {
		end, err := time.Parse(domain.DateFormat, *d.RecurringEndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, *d.RecurringEndDate)
		}
		schedule.RecurringEndDate = &end
	}

	for _, s := range d.SpecificDates {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		schedule.SpecificDates = append(schedule.SpecificDates, date)
	}

	return schedule, nil
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.DeploymentSchedule) *DeploymentScheduleData {
	if s == nil {
		return nil
	}

	data := &DeploymentScheduleData{
		Type:                    string(s.Type),
		DaysOfWeek:              s.DaysOfWeek,
		RecurrenceIntervalWeeks: s.RecurrenceIntervalWeeks,
	}

	if !s.RecurringStartDate.IsZero() {
		start := s.RecurringStartDate.Format(domain.DateFormat)
		data.RecurringStartDate = &start
	}

	if s.RecurringEndDate != nil {
		end := s.RecurringEndDate.Format(domain.DateFormat)
		data.RecurringEndDate = &end
	}

	for _, d := range s.SpecificDates {
		data.SpecificDates = append(data.SpecificDates, d.Format(domain.DateFormat))
	}

	return data
}

// ToDomainWindows конвертирует список DTO в domain модели
func ToDomainWindows(venueID int64, windows []BlockedWindowData) []*domain.BlockedWindow {
	result := make([]*domain.BlockedWindow, len(windows))
	for i, w := range windows {
		result[i] = &domain.BlockedWindow{
			VenueID:    venueID,
			StartTime:  types.TimeString(w.StartTime),
			EndTime:    types.TimeString(w.EndTime),
			DaysOfWeek: w.DaysOfWeek,
			IsActive:   w.IsActive,
		}
	}
	return result
}

// FromDomainWindows конвертирует список domain моделей в DTO
func FromDomainWindows(windows []*domain.BlockedWindow) []BlockedWindowData {
	result := make([]BlockedWindowData, len(windows))
	for i, w := range windows {
		result[i] = BlockedWindowData{
			StartTime:  w.StartTime.String(),
			EndTime:    w.EndTime.String(),
			DaysOfWeek: w.DaysOfWeek,
			IsActive:   w.IsActive,
		}
	}
	return result
}
