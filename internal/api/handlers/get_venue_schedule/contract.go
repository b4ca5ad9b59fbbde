package get_venue_schedule

import (
	"context"

	"github.com/m04kA/SPA-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetVenueSchedule(ctx context.Context, venueID int64) (*models.VenueScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
