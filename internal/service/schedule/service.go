package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SPA-BookingService/internal/infra/storage/schedule"
	venueClient "github.com/m04kA/SPA-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/SPA-BookingService/internal/service/schedule/models"
)

// Service сервис для работы с расписанием площадки
type Service struct {
	scheduleRepo ScheduleRepository
	venueClient  VenueServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		venueClient:  venueClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetVenueSchedule получает полное расписание площадки: рабочие часы,
// расписание развертывания и заблокированные окна
// Публичный метод - доступен всем
func (s *Service) GetVenueSchedule(ctx context.Context, venueID int64) (*models.VenueScheduleResponse, error) {
	s.logger.Info("GetVenueSchedule: fetching schedule for venue=%d", venueID)

	// Проверяем существование площадки
	if _, err := s.venueClient.GetVenue(ctx, venueID); err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("GetVenueSchedule: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetVenueSchedule: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// Профиль рабочих часов (дефолты, если не задан)
	profile, err := s.scheduleRepo.GetOperatingProfile(ctx, venueID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrProfileNotFound) {
		s.logger.Error("GetVenueSchedule: failed to get operating profile: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating profile: %v", ErrInternal, err)
	}

	if profile == nil {
		profile = &domain.VenueOperatingProfile{
			VenueID:             venueID,
			OpeningTime:         domain.DefaultOpeningTime,
			ClosingTime:         domain.DefaultClosingTime,
			SlotIntervalMinutes: domain.DefaultSlotIntervalMinutes,
			AdvanceBookingDays:  domain.DefaultAdvanceBookingDays,
		}
	}

	// Расписание развертывания (nil = всегда открыто)
	deploymentSchedule, err := s.scheduleRepo.GetDeploymentSchedule(ctx, venueID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Error("GetVenueSchedule: failed to get deployment schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get deployment schedule: %v", ErrInternal, err)
	}

	// Все окна, включая неактивные - менеджеру нужна полная картина
	windows, err := s.scheduleRepo.GetBlockedWindows(ctx, venueID, false)
	if err != nil {
		s.logger.Error("GetVenueSchedule: failed to get blocked windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked windows: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueSchedule: successfully fetched schedule for venue=%d", venueID)
	return &models.VenueScheduleResponse{
		VenueID:            venueID,
		OperatingProfile:   models.FromDomainProfile(profile),
		DeploymentSchedule: models.FromDomainSchedule(deploymentSchedule),
		BlockedWindows:     models.FromDomainWindows(windows),
	}, nil
}

// UpdateVenueSchedule обновляет расписание площадки
// Доступно только менеджерам площадки. Поддерживает частичное обновление:
// изменяются только переданные секции. Все изменения применяются в одной
// транзакции
func (s *Service) UpdateVenueSchedule(ctx context.Context, venueID int64, req *models.UpdateVenueScheduleRequest) (*models.VenueScheduleResponse, error) {
	s.logger.Info("UpdateVenueSchedule: updating schedule for venue=%d by user=%d", venueID, req.UserID)

	// 1. Проверяем существование площадки и права доступа
	venue, err := s.venueClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("UpdateVenueSchedule: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("UpdateVenueSchedule: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsManagedBy(req.UserID) {
		s.logger.Warn("UpdateVenueSchedule: user=%d is not a manager of venue=%d", req.UserID, venueID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем переданные секции до открытия транзакции
	if req.OperatingProfile != nil {
		if err := validateOperatingProfile(req.OperatingProfile); err != nil {
			s.logger.Warn("UpdateVenueSchedule: profile validation failed: %v", err)
			return nil, err
		}
	}

	var deploymentSchedule *domain.DeploymentSchedule
	if req.DeploymentSchedule != nil {
		if err := validateDeploymentSchedule(req.DeploymentSchedule); err != nil {
			s.logger.Warn("UpdateVenueSchedule: schedule validation failed: %v", err)
			return nil, err
		}
		deploymentSchedule, err = req.DeploymentSchedule.ToDomainSchedule(venueID)
		if err != nil {
			s.logger.Warn("UpdateVenueSchedule: schedule conversion failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if req.BlockedWindows != nil {
		if err := validateBlockedWindows(*req.BlockedWindows); err != nil {
			s.logger.Warn("UpdateVenueSchedule: windows validation failed: %v", err)
			return nil, err
		}
	}

	// 3. Применяем изменения в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if req.OperatingProfile != nil {
			if _, err := s.scheduleRepo.UpsertOperatingProfile(txCtx, req.OperatingProfile.ToDomainProfile(venueID)); err != nil {
				s.logger.Error("UpdateVenueSchedule: failed to upsert operating profile: %v", err)
				return fmt.Errorf("%w: failed to upsert operating profile: %v", ErrInternal, err)
			}
		}

		if deploymentSchedule != nil {
			if _, err := s.scheduleRepo.UpsertDeploymentSchedule(txCtx, deploymentSchedule); err != nil {
				s.logger.Error("UpdateVenueSchedule: failed to upsert deployment schedule: %v", err)
				return fmt.Errorf("%w: failed to upsert deployment schedule: %v", ErrInternal, err)
			}
		}

		if req.BlockedWindows != nil {
			if err := s.scheduleRepo.ReplaceBlockedWindows(txCtx, venueID, models.ToDomainWindows(venueID, *req.BlockedWindows)); err != nil {
				s.logger.Error("UpdateVenueSchedule: failed to replace blocked windows: %v", err)
				return fmt.Errorf("%w: failed to replace blocked windows: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateVenueSchedule: successfully updated schedule for venue=%d", venueID)

	// 4. Возвращаем актуальное состояние
	return s.GetVenueSchedule(ctx, venueID)
}
