package get_available_slots

import (
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	VenueID      int64     // ID площадки
	Date         time.Time // Дата для получения слотов (без времени)
	TreatmentIDs []int64   // Выбранные процедуры (определяют lead time; может быть пустым)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date                time.Time          // Дата, на которую запрашивались слоты
	VenueID             int64              // ID площадки
	SlotIntervalMinutes int                // Шаг сетки слотов
	Slots               []types.TimeString // Открытые слоты по возрастанию
	Reason              domain.EmptyReason // Причина структурно пустого результата ("" если не применимо)
}
