package schedule

import (
	"context"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
)

// ScheduleRepository интерфейс репозитория расписания площадки
type ScheduleRepository interface {
	GetOperatingProfile(ctx context.Context, venueID int64) (*domain.VenueOperatingProfile, error)
	UpsertOperatingProfile(ctx context.Context, profile *domain.VenueOperatingProfile) (*domain.VenueOperatingProfile, error)
	GetDeploymentSchedule(ctx context.Context, venueID int64) (*domain.DeploymentSchedule, error)
	UpsertDeploymentSchedule(ctx context.Context, schedule *domain.DeploymentSchedule) (*domain.DeploymentSchedule, error)
	DeleteDeploymentSchedule(ctx context.Context, venueID int64) error
	GetBlockedWindows(ctx context.Context, venueID int64, onlyActive bool) ([]*domain.BlockedWindow, error)
	ReplaceBlockedWindows(ctx context.Context, venueID int64, windows []*domain.BlockedWindow) error
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
