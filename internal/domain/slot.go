package domain

import (
	"time"

	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// SlotSet free hourly slots of one provider on one date, ascending
type SlotSet struct {
	ProviderID string
	Date       time.Time
	Slots      []types.HourOfDay
}

// Strings returns the slots as "HH:00" labels
func (s SlotSet) Strings() []string {
	out := make([]string, len(s.Slots))
	for i, h := range s.Slots {
		out[i] = h.String()
	}
	return out
}

// Contains reports whether h is a free slot
func (s SlotSet) Contains(h types.HourOfDay) bool {
	for _, slot := range s.Slots {
		if slot == h {
			return true
		}
	}
	return false
}

func (s SlotSet) IsEmpty() bool {
	return len(s.Slots) == 0
}
