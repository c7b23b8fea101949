package coordinator

import (
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// State состояние формы записи
type State string

const (
	StateClosed           State = "closed"
	StateOpenEmpty        State = "open_empty"
	StateProviderSelected State = "provider_selected"
	StateSlotsLoading     State = "slots_loading"
	StateSlotsReady       State = "slots_ready"
	StateSubmitting       State = "submitting"
)

// IsOpen форма открыта
func (s State) IsOpen() bool {
	return s != StateClosed
}

// Snapshot неизменяемая копия состояния формы для подписчиков
type Snapshot struct {
	Seq       uint64
	State     State
	Draft     domain.BookingDraft
	Providers []domain.Provider
	Slots     domain.SlotSet
}

// SlotStrings свободные часы в виде "HH:00"
func (s Snapshot) SlotStrings() []string {
	return s.Slots.Strings()
}

// HasSlot проверяет, что час есть в текущем наборе слотов
func (s Snapshot) HasSlot(h types.HourOfDay) bool {
	return s.Slots.Contains(h)
}
