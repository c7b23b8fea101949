package catalog

import "errors"

var (
	// ErrCentreNotFound возвращается, когда центр не найден
	ErrCentreNotFound = errors.New("catalog.repository: centre not found")

	// ErrPriceNotFound возвращается, когда процедуры нет в прайс-листе центра
	ErrPriceNotFound = errors.New("catalog.repository: price not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
