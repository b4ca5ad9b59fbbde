package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetByVenueWithFilter внутри транзакции читает строки с блокировкой (FOR UPDATE)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания площадки
type ScheduleRepository interface {
	GetOperatingProfile(ctx context.Context, venueID int64) (*domain.VenueOperatingProfile, error)
	GetDeploymentSchedule(ctx context.Context, venueID int64) (*domain.DeploymentSchedule, error)
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
	GetTreatment(ctx context.Context, venueID, treatmentID int64) (*venueservice.Treatment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
