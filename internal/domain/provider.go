package domain

import "fmt"

// WorkingWindow recurring daily availability as millisecond offsets from midnight
type WorkingWindow struct {
	StartOffsetMillis int64
	EndOffsetMillis   int64
}

// Validate rejects offsets outside of one day
func (w WorkingWindow) Validate() error {
	if w.StartOffsetMillis < 0 || w.EndOffsetMillis < 0 {
		return fmt.Errorf("%w: negative offset", ErrInvalidWindow)
	}
	if w.StartOffsetMillis > MillisPerDay || w.EndOffsetMillis > MillisPerDay {
		return fmt.Errorf("%w: offset past end of day", ErrInvalidWindow)
	}
	return nil
}

// IsHourAligned reports whether both bounds are whole hours
func (w WorkingWindow) IsHourAligned() bool {
	return w.StartOffsetMillis%MillisPerHour == 0 && w.EndOffsetMillis%MillisPerHour == 0
}

// Provider a nurse working at an action centre
type Provider struct {
	ID       string
	CentreID string
	Name     string
	Window   WorkingWindow
}
