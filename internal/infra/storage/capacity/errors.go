package capacity

import "errors"

var (
	// ErrDefaultNotFound возвращается, когда у пакета нет записи емкости по умолчанию
	ErrDefaultNotFound = errors.New("capacity.repository: default availability not found")

	// ErrOverrideNotFound возвращается, когда для даты нет записи емкости
	ErrOverrideNotFound = errors.New("capacity.repository: date override not found")

	// ErrCapacityExceeded возвращается, когда все слоты на дату уже заняты
	ErrCapacityExceeded = errors.New("capacity.repository: capacity exceeded")

	// ErrNothingToRelease возвращается при освобождении слота, когда занятых нет
	ErrNothingToRelease = errors.New("capacity.repository: nothing to release")

	// ErrTotalBelowBooked возвращается при попытке уменьшить емкость ниже числа занятых слотов
	ErrTotalBelowBooked = errors.New("capacity.repository: total slots below booked slots")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("capacity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("capacity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("capacity.repository: failed to scan row")
)
