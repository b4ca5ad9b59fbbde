package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByVenueWithFilter получает бронирования площадки на конкретную дату
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания площадки
type ScheduleRepository interface {
	// GetOperatingProfile получает профиль рабочих часов (ErrProfileNotFound = дефолты)
	GetOperatingProfile(ctx context.Context, venueID int64) (*domain.VenueOperatingProfile, error)
	// GetDeploymentSchedule получает расписание развертывания (ErrScheduleNotFound = всегда открыто)
	GetDeploymentSchedule(ctx context.Context, venueID int64) (*domain.DeploymentSchedule, error)
	// GetActiveBlockedWindows получает активные заблокированные окна
	GetActiveBlockedWindows(ctx context.Context, venueID int64) ([]*domain.BlockedWindow, error)
}

// ResourceRepository интерфейс репозитория ресурсных пулов площадки
type ResourceRepository interface {
	GetActiveRoomCount(ctx context.Context, venueID int64) (int, error)
	GetActiveTherapistIDs(ctx context.Context, venueID int64) ([]int64, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
	GetTreatments(ctx context.Context, venueID int64, treatmentIDs []int64) ([]*venueservice.Treatment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
