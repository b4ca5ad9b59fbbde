package get_available_slots

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SPA-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                string   `json:"date"`
	VenueID             int64    `json:"venueId"`
	SlotIntervalMinutes int      `json:"slotIntervalMinutes"`
	Slots               []string `json:"slots"`
	Reason              string   `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		VenueID:             resp.VenueID,
		SlotIntervalMinutes: resp.SlotIntervalMinutes,
		Slots:               slots,
		Reason:              string(resp.Reason),
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(venueID int64, dateStr, treatmentIDsStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	// Парсим список процедур из "1,2,3" (опционально)
	var treatmentIDs []int64
	if treatmentIDsStr != "" {
		for _, part := range strings.Split(treatmentIDsStr, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, err
			}
			treatmentIDs = append(treatmentIDs, id)
		}
	}

	return &getAvailableSlots.Request{
		VenueID:      venueID,
		Date:         date,
		TreatmentIDs: treatmentIDs,
	}, nil
}
