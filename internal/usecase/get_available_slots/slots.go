package get_available_slots

import (
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// generateSlots генерирует все кандидатные слоты дня: каждое время t с шагом
// intervalMinutes, такое что openingTime <= t < closingTime.
// Возвращает пустой список, если closingTime <= openingTime
func generateSlots(openingTime, closingTime types.TimeString, intervalMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if intervalMinutes <= 0 {
		return slots
	}

	openMin := openingTime.TotalMinutes()
	closeMin := closingTime.TotalMinutes()

	for m := openMin; m < closeMin; m += intervalMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}

// maxLeadTimeMinutes возвращает максимальный lead time среди выбранных процедур
// Бронирование в целом ограничивает самая "медленная" процедура
// Для пустого набора возвращает 0
func maxLeadTimeMinutes(treatments []*venueservice.Treatment) int {
	max := domain.DefaultLeadTimeMinutes
	for _, t := range treatments {
		if t.LeadTimeMinutes > max {
			max = t.LeadTimeMinutes
		}
	}
	return max
}

// earliestBookableMinutes вычисляет минимальное допустимое время начала слота
// на сегодня: now + maxLeadTimeMinutes, округленное ВВЕРХ до шага сетки.
// Округление всегда вверх: слот, достижимый ровно на границе интервала,
// остается доступным, любой неполный интервал сдвигает время вперед.
// Результат может превышать конец суток - тогда на сегодня слотов нет
func earliestBookableMinutes(now time.Time, maxLeadTimeMinutes, intervalMinutes int) int {
	nowMin := now.Hour()*60 + now.Minute()
	earliest := nowMin + maxLeadTimeMinutes

	if intervalMinutes <= 0 {
		return earliest
	}

	remainder := earliest % intervalMinutes
	if remainder != 0 {
		earliest += intervalMinutes - remainder
	}

	return earliest
}

// isSlotBlocked проверяет, попадает ли слот в заблокированное окно.
// Слот занимает диапазон [slot, slot + intervalMinutes) и блокируется при
// пересечении с окном, даже частичном
func isSlotBlocked(
	slot types.TimeString,
	intervalMinutes int,
	weekday time.Weekday,
	windows []*domain.BlockedWindow,
) bool {
	for _, window := range windows {
		if window.Blocks(slot, intervalMinutes, weekday) {
			return true
		}
	}
	return false
}

// isSlotOpen проверяет ёмкость слота по двум независимым пулам ресурсов.
//
// Бронирование занимает слот, если момент начала слота попадает в интервал
// [booking.StartTime, booking.StartTime + duration). В отличие от проверки
// заблокированных окон здесь тестируется точка, а не диапазон: слот - это
// потенциальный момент начала нового бронирования, а существующие
// бронирования - интервалы занятости. Эта асимметрия намеренная
//
// Слот открыт, только если:
//   - число занимающих его бронирований строго меньше roomCapacity И
//   - хотя бы один терапевт из активного пула не занят пересекающимся бронированием
func isSlotOpen(
	slot types.TimeString,
	bookings []*domain.Booking,
	roomCapacity int,
	therapistIDs []int64,
) bool {
	busyRooms := 0
	busyTherapists := make(map[int64]struct{})

	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}
		if !booking.Occupies(slot) {
			continue
		}

		busyRooms++
		// Бронирование без назначенного терапевта занимает кабинет, но не терапевта
		if booking.TherapistID != nil {
			busyTherapists[*booking.TherapistID] = struct{}{}
		}
	}

	if busyRooms >= roomCapacity {
		return false
	}

	return len(therapistIDs)-len(busyTherapists) > 0
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
