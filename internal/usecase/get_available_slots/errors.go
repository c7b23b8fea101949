package get_available_slots

import "errors"

var (
	// ErrProviderNotFound возвращается, когда медсестра не найдена
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// (в том числе при повреждённом времени записи или рабочем окне медсестры)
	ErrInternal = errors.New("usecase: internal error")
)
