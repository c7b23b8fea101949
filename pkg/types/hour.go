package types

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	MinHour = 0
	MaxHour = 23
)

var (
	// ErrHourOutOfRange is wrapped by ParseError when the parsed value is not a valid hour of day
	ErrHourOutOfRange = errors.New("hour out of range 0-23")

	// ErrMalformedTime is wrapped by ParseError when the input is not a base-10 hour prefix
	ErrMalformedTime = errors.New("malformed time string")
)

// ParseError reports a visit time string that cannot be turned into an hour of day
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse time %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// HourOfDay is a whole hour 0-23 identifying a one-hour slot
type HourOfDay int

// NewHourOfDay validates h
func NewHourOfDay(h int) (HourOfDay, error) {
	if h < MinHour || h > MaxHour {
		return 0, &ParseError{Input: strconv.Itoa(h), Err: ErrHourOutOfRange}
	}
	return HourOfDay(h), nil
}

// ParseHourOfDay parses "HH:MM" (or "HH:MM:SS", or a bare "HH") into an hour.
// Only the substring before the first ':' is considered.
func ParseHourOfDay(s string) (HourOfDay, error) {
	hourPart, _, _ := strings.Cut(s, ":")
	if hourPart == "" || strings.TrimLeft(hourPart, "0123456789") != "" {
		return 0, &ParseError{Input: s, Err: ErrMalformedTime}
	}

	h, err := strconv.ParseInt(hourPart, 10, 0)
	if err != nil {
		return 0, &ParseError{Input: s, Err: fmt.Errorf("%w: %v", ErrMalformedTime, err)}
	}
	if h < MinHour || h > MaxHour {
		return 0, &ParseError{Input: s, Err: ErrHourOutOfRange}
	}

	return HourOfDay(h), nil
}

// MustParseHourOfDay is ParseHourOfDay for constants and tests
func MustParseHourOfDay(s string) HourOfDay {
	h, err := ParseHourOfDay(s)
	if err != nil {
		panic(err)
	}
	return h
}

// String formats the hour as a zero-padded "HH:00" slot label
func (h HourOfDay) String() string {
	return fmt.Sprintf("%02d:00", int(h))
}

// Int returns the hour as int
func (h HourOfDay) Int() int {
	return int(h)
}

// IsValid reports whether h is within 0-23
func (h HourOfDay) IsValid() bool {
	return h >= MinHour && h <= MaxHour
}

// MarshalText implements encoding.TextMarshaler ("HH:00")
func (h HourOfDay) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (h *HourOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseHourOfDay(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// HourSet is a set of hours of day
type HourSet map[HourOfDay]struct{}

// NewHourSet builds a set from the given hours
func NewHourSet(hours ...HourOfDay) HourSet {
	set := make(HourSet, len(hours))
	for _, h := range hours {
		set.Add(h)
	}
	return set
}

func (s HourSet) Add(h HourOfDay) {
	s[h] = struct{}{}
}

func (s HourSet) Contains(h HourOfDay) bool {
	_, ok := s[h]
	return ok
}

// Sorted returns the members in ascending order
func (s HourSet) Sorted() []HourOfDay {
	out := make([]HourOfDay, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
