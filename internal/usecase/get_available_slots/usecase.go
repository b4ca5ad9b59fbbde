package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SPA-BookingService/internal/infra/storage/schedule"
	venueClient "github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/SPA-BookingService/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
//
// Сам расчёт - чистая функция над уже прочитанными данными: все обращения
// к хранилищу и каталогу выполняются до фильтрации слотов. Use case не
// предоставляет взаимной блокировки - конкурентные запросы могут увидеть
// один и тот же слот открытым; ёмкость при создании бронирования
// проверяется повторно на пути записи (create_booking)
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	resourceRepo ResourceRepository
	venueClient  VenueServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	resourceRepo ResourceRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		resourceRepo: resourceRepo,
		venueClient:  venueClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: venue=%d, date=%s, treatments=%v",
		req.VenueID, req.Date.Format(domain.DateFormat), req.TreatmentIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование площадки
	if _, err := uc.venueClient.GetVenue(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailableSlots: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Получаем выбранные процедуры и вычисляем максимальный lead time
	treatments, err := uc.venueClient.GetTreatments(ctx, req.VenueID, req.TreatmentIDs)
	if err != nil {
		if errors.Is(err, venueClient.ErrTreatmentNotFound) {
			uc.logger.Warn("GetAvailableSlots: treatments %v not found for venue id=%d", req.TreatmentIDs, req.VenueID)
			return nil, ErrTreatmentNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get treatments: %v", err)
		return nil, fmt.Errorf("%w: failed to get treatments: %v", ErrInternal, err)
	}
	leadTime := maxLeadTimeMinutes(treatments)

	// 5. Получаем профиль рабочих часов (дефолты, если не задан)
	profile, err := uc.scheduleRepo.GetOperatingProfile(ctx, req.VenueID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrProfileNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get operating profile: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating profile: %v", ErrInternal, err)
	}

	if profile == nil {
		profile = &domain.VenueOperatingProfile{
			VenueID:             req.VenueID,
			OpeningTime:         domain.DefaultOpeningTime,
			ClosingTime:         domain.DefaultClosingTime,
			SlotIntervalMinutes: domain.DefaultSlotIntervalMinutes,
			AdvanceBookingDays:  domain.DefaultAdvanceBookingDays,
		}
		uc.logger.Info("GetAvailableSlots: using default operating profile for venue=%d", req.VenueID)
	}

	// 6. Валидация даты с учетом профиля
	if err := validateDate(req.Date, now, profile.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Проверяем ресурсные пулы: без кабинетов или терапевтов слотов нет
	roomCapacity, err := uc.resourceRepo.GetActiveRoomCount(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get room count: %v", err)
		return nil, fmt.Errorf("%w: failed to get room count: %v", ErrInternal, err)
	}

	therapistIDs, err := uc.resourceRepo.GetActiveTherapistIDs(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get therapist ids: %v", err)
		return nil, fmt.Errorf("%w: failed to get therapist ids: %v", ErrInternal, err)
	}

	if roomCapacity == 0 || len(therapistIDs) == 0 {
		uc.logger.Info("GetAvailableSlots: venue=%d has no capacity (rooms=%d, therapists=%d)",
			req.VenueID, roomCapacity, len(therapistIDs))
		return uc.emptyResponse(req, profile, domain.ReasonNoCapacity), nil
	}

	// 8. Проверяем расписание развертывания: работает ли площадка в эту дату
	// Отсутствие записи означает "всегда открыто"
	deploymentSchedule, err := uc.scheduleRepo.GetDeploymentSchedule(ctx, req.VenueID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get deployment schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get deployment schedule: %v", ErrInternal, err)
	}

	if !deploymentSchedule.IsOpenOn(req.Date) {
		uc.logger.Info("GetAvailableSlots: venue=%d is not deployed on %s",
			req.VenueID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, profile, domain.ReasonVenueNotDeployed), nil
	}

	// 9. Получаем заблокированные окна
	// Ошибка чтения прерывает расчёт: трактовать её как "окон нет" значило бы
	// показать клиенту слоты, которые на самом деле закрыты
	windows, err := uc.scheduleRepo.GetActiveBlockedWindows(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked windows: %v", ErrInternal, err)
	}

	// 10. Получаем активные бронирования на эту дату
	filter := domain.VenueBookingsFilter{
		VenueID:         req.VenueID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только занимающие ёмкость бронирования
	}

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 11. Генерируем сетку слотов и фильтруем одним линейным проходом
	slots := uc.filterSlots(req, profile, now, leadTime, windows, bookings, roomCapacity, therapistIDs)

	uc.logger.Info("GetAvailableSlots: venue=%d, date=%s: %d open slots",
		req.VenueID, req.Date.Format(domain.DateFormat), len(slots))

	return &Response{
		Date:                req.Date,
		VenueID:             req.VenueID,
		SlotIntervalMinutes: profile.SlotIntervalMinutes,
		Slots:               slots,
	}, nil
}

// filterSlots применяет к сгенерированной сетке слотов три независимых
// предиката: lead time (только на сегодня), заблокированные окна и ёмкость.
// Порядок слотов сохраняется, дубликаты невозможны
func (uc *UseCase) filterSlots(
	req *Request,
	profile *domain.VenueOperatingProfile,
	now time.Time,
	leadTimeMinutes int,
	windows []*domain.BlockedWindow,
	bookings []*domain.Booking,
	roomCapacity int,
	therapistIDs []int64,
) []types.TimeString {
	candidates := generateSlots(profile.OpeningTime, profile.ClosingTime, profile.SlotIntervalMinutes)

	// Lead time применяется только к сегодняшнему дню: на будущие даты
	// любой слот дня достижим
	minMinutes := -1
	if isSameDay(req.Date, now) {
		minMinutes = earliestBookableMinutes(now, leadTimeMinutes, profile.SlotIntervalMinutes)
	}

	weekday := req.Date.Weekday()

	slots := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if minMinutes >= 0 && slot.TotalMinutes() < minMinutes {
			continue
		}
		if isSlotBlocked(slot, profile.SlotIntervalMinutes, weekday, windows) {
			continue
		}
		if !isSlotOpen(slot, bookings, roomCapacity, therapistIDs) {
			continue
		}
		slots = append(slots, slot)
	}

	return slots
}

func (uc *UseCase) emptyResponse(req *Request, profile *domain.VenueOperatingProfile, reason domain.EmptyReason) *Response {
	return &Response{
		Date:                req.Date,
		VenueID:             req.VenueID,
		SlotIntervalMinutes: profile.SlotIntervalMinutes,
		Slots:               []types.TimeString{},
		Reason:              reason,
	}
}
