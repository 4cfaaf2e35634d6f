package get_available_slots

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/pkg/types"
)

func TestGenerateTimeSlots_StandardDay(t *testing.T) {
	hours := domain.DayHours{
		Open:  true,
		Start: types.TimeString("09:00"),
		End:   types.TimeString("17:00"),
	}

	slots, err := generateTimeSlots(hours, 30)
	require.NoError(t, err)

	// 8 часов с шагом 30 минут = 16 слотов, последний 16:30
	require.Len(t, slots, 16)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("09:30"), slots[1])
	assert.Equal(t, types.TimeString("16:30"), slots[15])
	assert.NotContains(t, slots, types.TimeString("17:00"))
}

func TestGenerateTimeSlots_Deterministic(t *testing.T) {
	hours := domain.DayHours{
		Open:  true,
		Start: types.TimeString("09:00"),
		End:   types.TimeString("17:00"),
	}

	first, err := generateTimeSlots(hours, 30)
	require.NoError(t, err)
	second, err := generateTimeSlots(hours, 30)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateTimeSlots_Closed(t *testing.T) {
	hours := domain.DayHours{Open: false}

	slots, err := generateTimeSlots(hours, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_InvalidRange(t *testing.T) {
	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
	}{
		{name: "end before start", start: types.TimeString("18:00"), end: types.TimeString("09:00")},
		{name: "end equals start", start: types.TimeString("10:00"), end: types.TimeString("10:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := domain.DayHours{Open: true, Start: tt.start, End: tt.end}

			_, err := generateTimeSlots(hours, 30)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidScheduleRange))
		})
	}
}

func TestGenerateTimeSlots_ShortWindow(t *testing.T) {
	// Окно короче шага - ни одного слота
	hours := domain.DayHours{
		Open:  true,
		Start: types.TimeString("09:00"),
		End:   types.TimeString("09:15"),
	}

	slots, err := generateTimeSlots(hours, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFilterPastSlots_Today(t *testing.T) {
	slots := []types.TimeString{"09:00", "14:00", "14:30", "16:30"}
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 2, 14, 5, 0, 0, time.UTC)

	filtered := filterPastSlots(slots, date, now)

	// 14:00 уже началось, 14:30 еще впереди
	assert.Equal(t, []types.TimeString{"14:30", "16:30"}, filtered)
}

func TestFilterPastSlots_ExactSlotTime(t *testing.T) {
	slots := []types.TimeString{"14:00", "14:30"}
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 2, 14, 0, 0, 0, time.UTC)

	filtered := filterPastSlots(slots, date, now)

	// Слот, начинающийся прямо сейчас, недоступен
	assert.Equal(t, []types.TimeString{"14:30"}, filtered)
}

func TestFilterPastSlots_FutureDate(t *testing.T) {
	slots := []types.TimeString{"09:00", "09:30"}
	date := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC)

	filtered := filterPastSlots(slots, date, now)

	// Для будущей даты фильтрация по времени суток не применяется
	assert.Equal(t, slots, filtered)
}

func TestFilterBookedSlots(t *testing.T) {
	slots := []types.TimeString{"09:00", "09:30", "10:00", "10:30"}
	booked := []types.TimeString{"09:30", "10:30"}

	filtered := filterBookedSlots(slots, booked)

	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, filtered)
}

func TestFilterBookedSlots_NoBookings(t *testing.T) {
	slots := []types.TimeString{"09:00", "09:30"}

	filtered := filterBookedSlots(slots, nil)

	assert.Equal(t, slots, filtered)
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	assert.True(t, isDateInPast(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), now))
}
