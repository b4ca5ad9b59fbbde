package schedule

import "errors"

var (
	// ErrProfileNotFound возвращается, когда у площадки нет профиля рабочих часов
	ErrProfileNotFound = errors.New("schedule.repository: operating profile not found")

	// ErrScheduleNotFound возвращается, когда у площадки нет расписания развертывания
	ErrScheduleNotFound = errors.New("schedule.repository: deployment schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
