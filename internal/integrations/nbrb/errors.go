package nbrb

import "errors"

var (
	// ErrCurrencyNotFound возвращается, когда НБРБ не знает валюту
	ErrCurrencyNotFound = errors.New("nbrb client: currency not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("nbrb client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("nbrb client: invalid response")
)
