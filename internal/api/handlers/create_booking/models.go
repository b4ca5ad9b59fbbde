package create_booking

import (
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	createBooking "github.com/m04kA/SPA-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID     int64   `json:"venueId"`
	TreatmentID int64   `json:"treatmentId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	VenueID         int64   `json:"venueId"`
	TreatmentID     int64   `json:"treatmentId"`
	TherapistID     *int64  `json:"therapistId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TreatmentName   string  `json:"treatmentName"`
	TreatmentPrice  float64 `json:"treatmentPrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// userID приходит из auth middleware, а не из тела запроса
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		VenueID:     r.VenueID,
		TreatmentID: r.TreatmentID,
		Date:        bookingDate,
		StartTime:   startTime,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		VenueID:         resp.VenueID,
		TreatmentID:     resp.TreatmentID,
		TherapistID:     resp.TherapistID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		TreatmentName:   resp.TreatmentName,
		TreatmentPrice:  resp.TreatmentPrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
