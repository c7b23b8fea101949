package config

import "errors"

var (
	// ErrDecodeFile возвращается, когда файл конфигурации не удалось разобрать
	ErrDecodeFile = errors.New("config: failed to decode file")

	// ErrEnv возвращается при некорректных переменных окружения
	ErrEnv = errors.New("config: invalid environment")

	// ErrInvalid возвращается при несогласованных параметрах
	ErrInvalid = errors.New("config: invalid configuration")
)
