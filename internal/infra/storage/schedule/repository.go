package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SPA-BookingService/internal/domain"
	"github.com/m04kA/SPA-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SPA-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с расписанием площадки:
// профиль рабочих часов, расписание развертывания и заблокированные окна
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOperatingProfile получает профиль рабочих часов площадки
// Если профиль не задан, возвращает ErrProfileNotFound - вызывающая сторона
// применяет дефолтные значения (domain.DefaultOpeningTime и т.д.)
func (r *Repository) GetOperatingProfile(ctx context.Context, venueID int64) (*domain.VenueOperatingProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"venue_id",
		"opening_time",
		"closing_time",
		"slot_interval_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("venue_operating_profiles").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingProfile - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.VenueOperatingProfile
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.VenueID,
		&profile.OpeningTime,
		&profile.ClosingTime,
		&profile.SlotIntervalMinutes,
		&profile.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperatingProfile - scan profile: %v", ErrScanRow, err)
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}

// UpsertOperatingProfile создает или обновляет профиль рабочих часов площадки
func (r *Repository) UpsertOperatingProfile(ctx context.Context, profile *domain.VenueOperatingProfile) (*domain.VenueOperatingProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_operating_profiles").
		Columns(
			"venue_id",
			"opening_time",
			"closing_time",
			"slot_interval_minutes",
			"advance_booking_days",
		).
		Values(
			profile.VenueID,
			profile.OpeningTime,
			profile.ClosingTime,
			profile.SlotIntervalMinutes,
			profile.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (venue_id) DO UPDATE SET
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOperatingProfile - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOperatingProfile - execute upsert: %v", ErrExecQuery, err)
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return profile, nil
}

// GetDeploymentSchedule получает расписание развертывания площадки
// Если расписание не задано, возвращает ErrScheduleNotFound - отсутствие
// записи означает "площадка открыта каждый день"
func (r *Repository) GetDeploymentSchedule(ctx context.Context, venueID int64) (*domain.DeploymentSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"venue_id",
		"schedule_type",
		"days_of_week",
		"recurrence_interval_weeks",
		"recurring_start_date",
		"recurring_end_date",
		"specific_dates",
		"created_at",
		"updated_at",
	).
		From("deployment_schedules").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDeploymentSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.DeploymentSchedule
	var daysOfWeek pq.Int64Array
	var specificDates pq.StringArray
	var recurringStart, recurringEnd, createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.VenueID,
		&schedule.Type,
		&daysOfWeek,
		&schedule.RecurrenceIntervalWeeks,
		&recurringStart,
		&recurringEnd,
		&specificDates,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDeploymentSchedule - scan schedule: %v", ErrScanRow, err)
	}

	schedule.DaysOfWeek = int64ArrayToInts(daysOfWeek)
	schedule.SpecificDates, err = parseDates(specificDates)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDeploymentSchedule - parse specific dates: %v", ErrScanRow, err)
	}
	if recurringStart.Valid {
		schedule.RecurringStartDate = recurringStart.Time
	}
	if recurringEnd.Valid {
		end := recurringEnd.Time
		schedule.RecurringEndDate = &end
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// UpsertDeploymentSchedule создает или обновляет расписание развертывания площадки
func (r *Repository) UpsertDeploymentSchedule(ctx context.Context, schedule *domain.DeploymentSchedule) (*domain.DeploymentSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var recurringStart interface{}
	if !schedule.RecurringStartDate.IsZero() {
		recurringStart = schedule.RecurringStartDate
	}

	query, args, err := psqlbuilder.Insert("deployment_schedules").
		Columns(
			"venue_id",
			"schedule_type",
			"days_of_week",
			"recurrence_interval_weeks",
			"recurring_start_date",
			"recurring_end_date",
			"specific_dates",
		).
		Values(
			schedule.VenueID,
			schedule.Type,
			intsToInt64Array(schedule.DaysOfWeek),
			schedule.RecurrenceIntervalWeeks,
			recurringStart,
			schedule.RecurringEndDate,
			formatDates(schedule.SpecificDates),
		).
		Suffix(`ON CONFLICT (venue_id) DO UPDATE SET
			schedule_type = EXCLUDED.schedule_type,
			days_of_week = EXCLUDED.days_of_week,
			recurrence_interval_weeks = EXCLUDED.recurrence_interval_weeks,
			recurring_start_date = EXCLUDED.recurring_start_date,
			recurring_end_date = EXCLUDED.recurring_end_date,
			specific_dates = EXCLUDED.specific_dates,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertDeploymentSchedule - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertDeploymentSchedule - execute upsert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// DeleteDeploymentSchedule удаляет расписание развертывания площадки
// После удаления площадка считается открытой каждый день
func (r *Repository) DeleteDeploymentSchedule(ctx context.Context, venueID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("deployment_schedules").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteDeploymentSchedule - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteDeploymentSchedule - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBlockedWindows получает заблокированные окна площадки
// При onlyActive = true возвращает только активные окна (нужно движку доступности)
func (r *Repository) GetBlockedWindows(ctx context.Context, venueID int64, onlyActive bool) ([]*domain.BlockedWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"venue_id",
		"start_time",
		"end_time",
		"days_of_week",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("blocked_windows").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("start_time ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.BlockedWindow, 0)

	for rows.Next() {
		var window domain.BlockedWindow
		var daysOfWeek pq.Int64Array
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.VenueID,
			&window.StartTime,
			&window.EndTime,
			&daysOfWeek,
			&window.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBlockedWindows - scan row: %v", ErrScanRow, err)
		}

		window.DaysOfWeek = int64ArrayToInts(daysOfWeek)
		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// GetActiveBlockedWindows получает активные заблокированные окна площадки
func (r *Repository) GetActiveBlockedWindows(ctx context.Context, venueID int64) ([]*domain.BlockedWindow, error) {
	return r.GetBlockedWindows(ctx, venueID, true)
}

// ReplaceBlockedWindows заменяет весь набор заблокированных окон площадки
// Вызывается внутри транзакции из сервиса управления расписанием
func (r *Repository) ReplaceBlockedWindows(ctx context.Context, venueID int64, windows []*domain.BlockedWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("blocked_windows").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlockedWindows - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlockedWindows - execute delete: %v", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("blocked_windows").
		Columns("venue_id", "start_time", "end_time", "days_of_week", "is_active")

	for _, window := range windows {
		insertBuilder = insertBuilder.Values(
			venueID,
			window.StartTime,
			window.EndTime,
			intsToInt64Array(window.DaysOfWeek),
			window.IsActive,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceBlockedWindows - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlockedWindows - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Конкретные даты хранятся как TEXT[] в формате YYYY-MM-DD:
// pq не умеет сканировать date[] напрямую в []time.Time

func parseDates(arr pq.StringArray) ([]time.Time, error) {
	if arr == nil {
		return nil, nil
	}
	dates := make([]time.Time, len(arr))
	for i, s := range arr {
		parsed, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		dates[i] = parsed
	}
	return dates, nil
}

func formatDates(dates []time.Time) pq.StringArray {
	if dates == nil {
		return nil
	}
	result := make(pq.StringArray, len(dates))
	for i, d := range dates {
		result[i] = d.Format(domain.DateFormat)
	}
	return result
}

func int64ArrayToInts(arr pq.Int64Array) []int {
	if arr == nil {
		return nil
	}
	result := make([]int, len(arr))
	for i, v := range arr {
		result[i] = int(v)
	}
	return result
}

func intsToInt64Array(values []int) pq.Int64Array {
	if values == nil {
		return nil
	}
	result := make(pq.Int64Array, len(values))
	for i, v := range values {
		result[i] = int64(v)
	}
	return result
}
