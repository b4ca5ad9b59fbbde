package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.TreatmentID <= 0 {
		return fmt.Errorf("%w: treatmentID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateSlotOnGrid проверяет, что время начала лежит на сетке слотов
// внутри рабочих часов: openingTime <= start < closingTime и смещение от
// открытия кратно шагу сетки
func validateSlotOnGrid(startTime types.TimeString, profile *domain.VenueOperatingProfile) error {
	startMin := startTime.TotalMinutes()
	openMin := profile.OpeningTime.TotalMinutes()
	closeMin := profile.ClosingTime.TotalMinutes()

	if startMin < openMin || startMin >= closeMin {
		return fmt.Errorf("%w: %s is outside operating hours %s-%s",
			ErrInvalidTimeSlot, startTime, profile.OpeningTime, profile.ClosingTime)
	}

	if profile.SlotIntervalMinutes > 0 && (startMin-openMin)%profile.SlotIntervalMinutes != 0 {
		return fmt.Errorf("%w: %s is not aligned to the %d-minute grid",
			ErrInvalidTimeSlot, startTime, profile.SlotIntervalMinutes)
	}

	return nil
}

// validateLeadTime проверяет, что бронирование не нарушает lead time процедуры.
// Проверка действует только для сегодняшнего дня
func validateLeadTime(bookingDate time.Time, startTime types.TimeString, now time.Time, leadTimeMinutes int) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	nowMin := now.Hour()*60 + now.Minute()
	if startTime.TotalMinutes() < nowMin+leadTimeMinutes {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, leadTimeMinutes)
	}

	return nil
}

// isSlotBlocked проверяет, попадает ли слот в заблокированное окно
func isSlotBlocked(
	startTime types.TimeString,
	intervalMinutes int,
	weekday time.Weekday,
	windows []*domain.BlockedWindow,
) bool {
	for _, window := range windows {
		if window.Blocks(startTime, intervalMinutes, weekday) {
			return true
		}
	}
	return false
}

// pickFreeTherapist возвращает первого терапевта, не занятого бронированием,
// которое занимает указанный момент времени. Возвращает nil, если все заняты.
// Та же точечная семантика занятости, что и при расчете доступных слотов
func pickFreeTherapist(startTime types.TimeString, bookings []*domain.Booking, therapistIDs []int64) *int64 {
	busy := make(map[int64]struct{})
	for _, booking := range bookings {
		if !booking.IsActive() || !booking.Occupies(startTime) {
			continue
		}
		if booking.TherapistID != nil {
			busy[*booking.TherapistID] = struct{}{}
		}
	}

	for _, id := range therapistIDs {
		if _, taken := busy[id]; !taken {
			therapist := id
			return &therapist
		}
	}
	return nil
}

// countBusyRooms подсчитывает активные бронирования, занимающие указанный момент
func countBusyRooms(startTime types.TimeString, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if booking.IsActive() && booking.Occupies(startTime) {
			count++
		}
	}
	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
