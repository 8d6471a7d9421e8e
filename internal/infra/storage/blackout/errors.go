package blackout

import "errors"

var (
	// ErrBlackoutNotFound возвращается, когда закрытая дата не найдена
	ErrBlackoutNotFound = errors.New("blackout.repository: blackout not found")

	// ErrDuplicateBlackout возвращается, когда дата пакета уже закрыта
	ErrDuplicateBlackout = errors.New("blackout.repository: blackout already exists for package and date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blackout.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blackout.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blackout.repository: failed to scan row")
)
