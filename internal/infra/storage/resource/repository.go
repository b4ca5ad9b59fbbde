package resource

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SPA-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SPA-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий ресурсных пулов площадки:
// процедурные кабинеты и терапевты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveRoomCount возвращает количество активных процедурных кабинетов площадки
func (r *Repository) GetActiveRoomCount(ctx context.Context, venueID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("treatment_rooms").
		Where(squirrel.Eq{"venue_id": venueID, "is_active": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetActiveRoomCount - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: GetActiveRoomCount - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetActiveTherapistIDs возвращает идентификаторы активных терапевтов площадки
func (r *Repository) GetActiveTherapistIDs(ctx context.Context, venueID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("therapists").
		Where(squirrel.Eq{"venue_id": venueID, "is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTherapistIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTherapistIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetActiveTherapistIDs - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveTherapistIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}
