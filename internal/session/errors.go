package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессии нет или она истекла
	ErrSessionNotFound = errors.New("session: not found")

	// ErrTooManySessions возвращается при превышении лимита открытых сессий
	ErrTooManySessions = errors.New("session: too many open sessions")
)
