package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SPA-BookingService/internal/infra/storage/schedule"
	venueClient "github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	resourceRepo ResourceRepository
	venueClient  VenueServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	resourceRepo ResourceRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		resourceRepo: resourceRepo,
		venueClient:  venueClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// все проверки доступности повторяются внутри транзакции над строками,
// заблокированными FOR UPDATE
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%d, treatment=%d, date=%s, time=%s",
		req.UserID, req.VenueID, req.TreatmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование площадки
	if _, err := uc.venueClient.GetVenue(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Получаем процедуру (длительность, цена, lead time)
	treatment, err := uc.venueClient.GetTreatment(ctx, req.VenueID, req.TreatmentID)
	if err != nil {
		if errors.Is(err, venueClient.ErrTreatmentNotFound) {
			uc.logger.Warn("CreateBooking: treatment id=%d not found", req.TreatmentID)
			return nil, ErrTreatmentNotFound
		}
		uc.logger.Error("CreateBooking: failed to get treatment id=%d: %v", req.TreatmentID, err)
		return nil, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	duration := treatment.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultTreatmentDurationMinutes
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем профиль рабочих часов (дефолты, если не задан)
		profile, err := uc.scheduleRepo.GetOperatingProfile(txCtx, req.VenueID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrProfileNotFound) {
			uc.logger.Error("CreateBooking: failed to get operating profile: %v", err)
			return fmt.Errorf("%w: failed to get operating profile: %v", ErrInternal, err)
		}

		if profile == nil {
			profile = &domain.VenueOperatingProfile{
				VenueID:             req.VenueID,
				OpeningTime:         domain.DefaultOpeningTime,
				ClosingTime:         domain.DefaultClosingTime,
				SlotIntervalMinutes: domain.DefaultSlotIntervalMinutes,
				AdvanceBookingDays:  domain.DefaultAdvanceBookingDays,
			}
			uc.logger.Info("CreateBooking: using default operating profile for venue=%d", req.VenueID)
		}

		// 5.2. Валидация даты с учетом профиля
		if err := validateDate(req.Date, now, profile.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.3. Время начала должно лежать на сетке слотов внутри рабочих часов
		if err := validateSlotOnGrid(req.StartTime, profile); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 5.4. Проверяем lead time процедуры
		if err := validateLeadTime(req.Date, req.StartTime, now, treatment.LeadTimeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: lead time validation failed: %v", err)
			return err
		}

		// 5.5. Проверяем расписание развертывания
		deploymentSchedule, err := uc.scheduleRepo.GetDeploymentSchedule(txCtx, req.VenueID)
		if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("CreateBooking: failed to get deployment schedule: %v", err)
			return fmt.Errorf("%w: failed to get deployment schedule: %v", ErrInternal, err)
		}

		if !deploymentSchedule.IsOpenOn(req.Date) {
			uc.logger.Warn("CreateBooking: venue=%d is closed on %s", req.VenueID, req.Date.Format(domain.DateFormat))
			return ErrVenueClosed
		}

		// 5.6. Проверяем заблокированные окна
		windows, err := uc.scheduleRepo.GetActiveBlockedWindows(txCtx, req.VenueID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked windows: %v", err)
			return fmt.Errorf("%w: failed to get blocked windows: %v", ErrInternal, err)
		}

		if isSlotBlocked(req.StartTime, profile.SlotIntervalMinutes, req.Date.Weekday(), windows) {
			uc.logger.Warn("CreateBooking: slot %s is blocked for venue=%d", req.StartTime, req.VenueID)
			return ErrSlotBlocked
		}

		// 5.7. Получаем ресурсные пулы
		roomCapacity, err := uc.resourceRepo.GetActiveRoomCount(txCtx, req.VenueID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get room count: %v", err)
			return fmt.Errorf("%w: failed to get room count: %v", ErrInternal, err)
		}

		therapistIDs, err := uc.resourceRepo.GetActiveTherapistIDs(txCtx, req.VenueID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get therapist ids: %v", err)
			return fmt.Errorf("%w: failed to get therapist ids: %v", ErrInternal, err)
		}

		if roomCapacity == 0 || len(therapistIDs) == 0 {
			uc.logger.Warn("CreateBooking: venue=%d has no capacity", req.VenueID)
			return ErrSlotNotAvailable
		}

		// 5.8. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.VenueBookingsFilter{
			VenueID:         req.VenueID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		bookings, err := uc.bookingRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.9. Проверяем ёмкость кабинетов
		busyRooms := countBusyRooms(req.StartTime, bookings)
		if busyRooms >= roomCapacity {
			uc.logger.Warn("CreateBooking: slot not available, %d/%d rooms taken", busyRooms, roomCapacity)
			return ErrSlotNotAvailable
		}

		// 5.10. Назначаем первого свободного терапевта
		therapistID := pickFreeTherapist(req.StartTime, bookings, therapistIDs)
		if therapistID == nil {
			uc.logger.Warn("CreateBooking: slot not available, all %d therapists busy", len(therapistIDs))
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateBooking: slot available, rooms %d/%d, therapist=%d",
			busyRooms, roomCapacity, *therapistID)

		// 5.11. Создаем бронирование с денормализацией данных процедуры
		booking := &domain.Booking{
			UserID:          req.UserID,
			VenueID:         req.VenueID,
			TreatmentID:     req.TreatmentID,
			TherapistID:     therapistID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
			// Денормализация данных процедуры
			TreatmentName:  treatment.Name,
			TreatmentPrice: getTreatmentPrice(treatment),
			// Заметки
			Notes: req.Notes,
		}

		// 5.12. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		VenueID:         result.VenueID,
		TreatmentID:     result.TreatmentID,
		TherapistID:     result.TherapistID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		TreatmentName:   result.TreatmentName,
		TreatmentPrice:  result.TreatmentPrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// getTreatmentPrice извлекает цену из процедуры
// Если цена не указана (nil), возвращает 0.0
func getTreatmentPrice(treatment *venueClient.Treatment) float64 {
	if treatment.Price == nil {
		return 0.0
	}
	return *treatment.Price
}
