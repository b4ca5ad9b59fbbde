package create_booking

import (
	"time"

	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64            // ID пользователя
	VenueID     int64            // ID площадки
	TreatmentID int64            // ID процедуры
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	UserID          int64            // ID пользователя
	VenueID         int64            // ID площадки
	TreatmentID     int64            // ID процедуры
	TherapistID     *int64           // Назначенный терапевт
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные
	TreatmentName  string  // Название процедуры
	TreatmentPrice float64 // Цена процедуры
	Notes          *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
