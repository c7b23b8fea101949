package centres

import "errors"

var (
	// ErrCentreNotFound возвращается, когда центр не найден
	ErrCentreNotFound = errors.New("centre not found")

	// ErrInvalidKind возвращается при неизвестном виде центра
	ErrInvalidKind = errors.New("invalid centre kind")

	// ErrInvalidSearchType возвращается при неизвестном типе поиска
	ErrInvalidSearchType = errors.New("invalid search type")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
