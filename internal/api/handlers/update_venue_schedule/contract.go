package update_venue_schedule

import (
	"context"

	"github.com/m04kA/SPA-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateVenueSchedule(ctx context.Context, venueID int64, req *models.UpdateVenueScheduleRequest) (*models.VenueScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
