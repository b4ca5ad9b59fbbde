package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SPA-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SPA-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidVenueID      = "некорректный ID площадки"
	msgInvalidTreatmentIDs = "некорректный список процедур"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVenueNotFound       = "площадка не найдена"
	msgTreatmentNotFound   = "процедура не найдена"
	msgInvalidBookingDate  = "некорректная дата"
	msgDateTooFar          = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/available-slots
// Query params: date (required, YYYY-MM-DD), treatmentIds (optional, "1,2,3")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем venueId из URL
	venueIDStr := vars["venueId"]
	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты и списка процедур)
	useCaseReq, err := ToUseCaseRequest(venueID, dateStr, r.URL.Query().Get("treatmentIds"))
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/available-slots - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getAvailableSlots.ErrTreatmentNotFound):
			h.logger.Warn("GET /venues/{id}/available-slots - Treatment not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /venues/{id}/available-slots - Invalid date: venue_id=%d, date=%s", venueID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /venues/{id}/available-slots - Date too far in future: venue_id=%d, date=%s", venueID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/available-slots - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidTreatmentIDs)

		default:
			h.logger.Error("GET /venues/{id}/available-slots - Failed to get slots: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /venues/{id}/available-slots - Slots retrieved successfully: venue_id=%d, date=%s, slots_count=%d",
		venueID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
