package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// Request модель запроса на получение свободных слотов медсестры
type Request struct {
	ProviderID string    // ID медсестры
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со списком свободных часов
type Response struct {
	ProviderID string            // ID медсестры
	Date       time.Time         // Дата, на которую запрашивались слоты
	Slots      []types.HourOfDay // Свободные часы по возрастанию
}
