package coordinator

import "errors"

var (
	// ErrNotOpen возвращается при действиях над закрытой формой
	ErrNotOpen = errors.New("coordinator: booking form is not open")

	// ErrBusy возвращается, пока предыдущая отправка не завершилась
	ErrBusy = errors.New("coordinator: submission in progress")

	// ErrUnknownProvider возвращается, когда медсестры нет в списке центра
	ErrUnknownProvider = errors.New("coordinator: unknown provider")

	// ErrSlotUnavailable возвращается при выборе часа вне текущего набора слотов
	ErrSlotUnavailable = errors.New("coordinator: slot is not available")

	// ErrUnknownField возвращается при обновлении неизвестного поля формы
	ErrUnknownField = errors.New("coordinator: unknown field")
)
