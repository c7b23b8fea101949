package visits

import "errors"

var (
	// ErrVisitNotFound возвращается, когда запись не найдена
	ErrVisitNotFound = errors.New("visit not found")

	// ErrProviderNotFound возвращается, когда медсестра не найдена
	ErrProviderNotFound = errors.New("nurse not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
