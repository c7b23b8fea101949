// Package availability computes free hourly appointment slots of a provider.
// Everything here is pure: callers fetch booked visits and pass them in.
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// WindowHours converts a working window into the half-open hour range [start, end).
// Offsets are floored to whole hours by integer division.
func WindowHours(window domain.WorkingWindow) (start, end int, err error) {
	if err := window.Validate(); err != nil {
		return 0, 0, err
	}
	start = int(window.StartOffsetMillis / domain.MillisPerHour)
	end = int(window.EndOffsetMillis / domain.MillisPerHour)
	return start, end, nil
}

// ComputeFreeSlots returns the hours of window not present in booked, ascending.
// An empty or inverted window yields no slots; booked hours outside the window are ignored.
func ComputeFreeSlots(window domain.WorkingWindow, booked types.HourSet) ([]types.HourOfDay, error) {
	start, end, err := WindowHours(window)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return []types.HourOfDay{}, nil
	}

	free := make([]types.HourOfDay, 0, end-start)
	for h := start; h < end; h++ {
		hour := types.HourOfDay(h)
		if booked.Contains(hour) {
			continue
		}
		free = append(free, hour)
	}

	return free, nil
}

// ParseBookedHours parses visit start times ("HH:MM") into a set of hours.
// The first malformed value aborts parsing with a *types.ParseError.
func ParseBookedHours(visits []string) (types.HourSet, error) {
	booked := make(types.HourSet, len(visits))
	for i, v := range visits {
		h, err := types.ParseHourOfDay(v)
		if err != nil {
			return nil, fmt.Errorf("visit #%d: %w", i, err)
		}
		booked.Add(h)
	}
	return booked, nil
}

// FreeSlotSet parses booked visit times and computes the slot set of provider on date
func FreeSlotSet(provider domain.Provider, date time.Time, visits []string) (domain.SlotSet, error) {
	booked, err := ParseBookedHours(visits)
	if err != nil {
		return domain.SlotSet{}, err
	}

	slots, err := ComputeFreeSlots(provider.Window, booked)
	if err != nil {
		return domain.SlotSet{}, err
	}

	return domain.SlotSet{ProviderID: provider.ID, Date: types.DateOnly(date), Slots: slots}, nil
}
