package availability

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

func window(startHour, endHour int64) domain.WorkingWindow {
	return domain.WorkingWindow{
		StartOffsetMillis: startHour * domain.MillisPerHour,
		EndOffsetMillis:   endHour * domain.MillisPerHour,
	}
}

func labels(slots []types.HourOfDay) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestComputeFreeSlots_WorkdayWithTwoVisits(t *testing.T) {
	w := domain.WorkingWindow{StartOffsetMillis: 32400000, EndOffsetMillis: 61200000}

	slots, err := ComputeFreeSlots(w, types.NewHourSet(10, 14))

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00", "12:00", "13:00", "15:00", "16:00"}, labels(slots))
}

func TestComputeFreeSlots_EndHourExcluded(t *testing.T) {
	slots, err := ComputeFreeSlots(window(16, 17), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"16:00"}, labels(slots))
}

func TestComputeFreeSlots_EdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		window domain.WorkingWindow
		booked types.HourSet
		want   []string
	}{
		{name: "empty window", window: window(9, 9), want: []string{}},
		{name: "inverted window", window: window(17, 9), want: []string{}},
		{name: "booked outside window ignored", window: window(9, 11), booked: types.NewHourSet(8, 11, 20), want: []string{"09:00", "10:00"}},
		{name: "fully booked", window: window(9, 11), booked: types.NewHourSet(9, 10), want: []string{}},
		{name: "whole day", window: window(0, 24), booked: types.NewHourSet(0, 23), want: wholeDayExcept(0, 23)},
		{
			name:   "non-aligned window is floored",
			window: domain.WorkingWindow{StartOffsetMillis: 9*domain.MillisPerHour + 1800000, EndOffsetMillis: 11*domain.MillisPerHour + 1},
			want:   []string{"09:00", "10:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := ComputeFreeSlots(tt.window, tt.booked)
			require.NoError(t, err)
			assert.Equal(t, tt.want, labels(slots))
		})
	}
}

func wholeDayExcept(skip ...int) []string {
	out := make([]string, 0, 24)
	for h := 0; h < 24; h++ {
		skipped := false
		for _, s := range skip {
			if s == h {
				skipped = true
			}
		}
		if !skipped {
			out = append(out, types.HourOfDay(h).String())
		}
	}
	return out
}

func TestComputeFreeSlots_InvalidWindow(t *testing.T) {
	_, err := ComputeFreeSlots(domain.WorkingWindow{StartOffsetMillis: -domain.MillisPerHour, EndOffsetMillis: 0}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = ComputeFreeSlots(window(20, 25), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

// Свойства: размер результата, сортировка, отсутствие дублей
func TestComputeFreeSlots_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		start := rng.Int63n(24)
		end := start + 1 + rng.Int63n(24-start)

		booked := types.NewHourSet()
		inWindow := 0
		for h := start; h < end; h++ {
			if rng.Intn(3) == 0 {
				booked.Add(types.HourOfDay(h))
				inWindow++
			}
		}
		// часы вне окна не должны влиять
		if start > 0 {
			booked.Add(types.HourOfDay(start - 1))
		}

		slots, err := ComputeFreeSlots(window(start, end), booked)
		require.NoError(t, err)

		assert.Len(t, slots, int(end-start)-inWindow)
		assert.True(t, sort.SliceIsSorted(slots, func(a, b int) bool { return slots[a] < slots[b] }))

		seen := make(map[types.HourOfDay]bool)
		for _, s := range slots {
			assert.False(t, seen[s], "duplicate slot %s", s)
			seen[s] = true
			assert.False(t, booked.Contains(s))
		}

		empty, err := ComputeFreeSlots(window(start, end), nil)
		require.NoError(t, err)
		assert.Len(t, empty, int(end-start))
		for j, s := range empty {
			assert.Equal(t, types.HourOfDay(start+int64(j)), s)
		}
	}
}

func TestParseBookedHours(t *testing.T) {
	booked, err := ParseBookedHours([]string{"10:00", "14:30", "10:00"})
	require.NoError(t, err)
	assert.Equal(t, []types.HourOfDay{10, 14}, booked.Sorted())

	_, err = ParseBookedHours([]string{"10:00", "noon"})
	require.Error(t, err)
	var parseErr *types.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "noon", parseErr.Input)
}

func TestFreeSlotSet(t *testing.T) {
	provider := domain.Provider{ID: "n-1", Window: window(9, 12)}
	date := time.Date(2026, 10, 20, 15, 4, 0, 0, time.UTC)

	set, err := FreeSlotSet(provider, date, []string{"10:00"})
	require.NoError(t, err)
	assert.Equal(t, "n-1", set.ProviderID)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), set.Date)
	assert.Equal(t, []string{"09:00", "11:00"}, set.Strings())

	_, err = FreeSlotSet(provider, date, []string{"x"})
	assert.Error(t, err)
}
