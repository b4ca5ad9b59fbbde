package domain

import (
	"time"

	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending          BookingStatus = "pending"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusInProgress       BookingStatus = "in_progress"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelledByUser  BookingStatus = "cancelled_by_user"
	StatusCancelledByVenue BookingStatus = "cancelled_by_venue"
	StatusNoShow           BookingStatus = "no_show"
)

// Booking represents a treatment booking in the system
type Booking struct {
	ID              int64
	UserID          int64
	VenueID         int64
	TreatmentID     int64
	TherapistID     *int64 // nil = бронирование без назначенного терапевта (занимает кабинет, но не терапевта)
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	TreatmentName  string
	TreatmentPrice float64
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies capacity
// (not cancelled, not completed, not a no-show)
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByVenue &&
		b.Status != StatusCompleted &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByVenue
}

// EndTime returns the booking end time (start + duration)
func (b *Booking) EndTime() (types.TimeString, error) {
	duration := b.DurationMinutes
	if duration <= 0 {
		duration = DefaultTreatmentDurationMinutes
	}
	return b.StartTime.AddMinutes(duration)
}

// Occupies reports whether the booking occupies the venue at the given
// instant, i.e. instant falls within [startTime, startTime + duration).
// Existing bookings are occupancy intervals; candidate slots are tested
// as single start instants against them.
// Считаем в минутах: конец бронирования может совпадать с полуночью,
// и TimeString для 24:00 не существует
func (b *Booking) Occupies(instant types.TimeString) bool {
	duration := b.DurationMinutes
	if duration <= 0 {
		duration = DefaultTreatmentDurationMinutes
	}
	startMin := b.StartTime.TotalMinutes()
	instantMin := instant.TotalMinutes()
	return instantMin >= startMin && instantMin < startMin+duration
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64          // Обязательный параметр
	TherapistID     *int64         // Фильтр по терапевту (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, завершенные, no-show)
}
