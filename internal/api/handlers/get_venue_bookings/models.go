package get_venue_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	venueID int64,
	userID int64,
	therapistIDStr string,
	statusStr string,
	startDateStr string,
	endDateStr string,
	includeInactiveStr string,
) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{
		UserID:          userID,
		VenueID:         venueID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим therapistId если указан
	if therapistIDStr != "" {
		therapistID, err := strconv.ParseInt(therapistIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.TherapistID = &therapistID
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим период если указан. Одна дата startDate без endDate
	// трактуется как запрос на один день
	if startDateStr != "" {
		start, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &start
		req.EndDate = &start
	}

	if endDateStr != "" {
		end, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		if req.StartDate == nil {
			return nil, fmt.Errorf("endDate requires startDate")
		}
		if end.Before(*req.StartDate) {
			return nil, fmt.Errorf("endDate must not be before startDate")
		}
		req.EndDate = &end
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
