package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointify/appointment-service/pkg/types"
)

func weekdaySchedule() WeeklySchedule {
	days := make([]DaySchedule, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := DaySchedule{DayOfWeek: wd}
		if wd != time.Saturday && wd != time.Sunday {
			day.IsOpen = true
			day.StartTime = "09:00"
			day.EndTime = "17:00"
		}
		days = append(days, day)
	}
	return WeeklySchedule{Days: days}
}

func TestWeeklySchedule_Resolve_Weekday(t *testing.T) {
	ws := weekdaySchedule()

	// 2026-01-02 пятница
	hours := ws.Resolve(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), nil)
	assert.True(t, hours.Open)
	assert.Equal(t, types.TimeString("09:00"), hours.Start)
	assert.Equal(t, types.TimeString("17:00"), hours.End)

	// 2026-01-03 суббота
	hours = ws.Resolve(time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), nil)
	assert.False(t, hours.Open)
}

func TestWeeklySchedule_Resolve_HolidayOverridesOpenDay(t *testing.T) {
	ws := weekdaySchedule()
	holidays := []Holiday{
		{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Name: "New Year's Day"},
	}

	// 2026-01-01 четверг, день недели открыт, но праздник закрывает его
	hours := ws.Resolve(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), holidays)
	assert.False(t, hours.Open)

	// Соседний день праздником не затронут
	hours = ws.Resolve(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), holidays)
	assert.True(t, hours.Open)
}

func TestWeeklySchedule_Resolve_MissingDayDefaults(t *testing.T) {
	// Нет строки для пятницы - применяется дефолт 09:00-17:00
	ws := WeeklySchedule{Days: []DaySchedule{
		{DayOfWeek: time.Monday, IsOpen: true, StartTime: "10:00", EndTime: "18:00"},
	}}

	hours := ws.Resolve(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), nil)
	assert.True(t, hours.Open)
	assert.Equal(t, types.TimeString(DefaultOpenTime), hours.Start)
	assert.Equal(t, types.TimeString(DefaultCloseTime), hours.End)

	// Пустое расписание - каждый день по дефолту
	empty := WeeklySchedule{}
	hours = empty.Resolve(time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), nil)
	assert.Equal(t, DefaultDayHours(), hours)
}

func TestWeeklySchedule_Resolve_IsPure(t *testing.T) {
	ws := weekdaySchedule()
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	first := ws.Resolve(date, nil)
	second := ws.Resolve(date, nil)
	assert.Equal(t, first, second)
}

func TestWeeklySchedule_Resolve_MalformedRowIsClosed(t *testing.T) {
	ws := WeeklySchedule{Days: []DaySchedule{
		{DayOfWeek: time.Friday, IsOpen: true, StartTime: "17:00", EndTime: "09:00"},
	}}

	hours := ws.Resolve(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), nil)
	assert.False(t, hours.Open)
}

func TestDaySchedule_Validate(t *testing.T) {
	valid := DaySchedule{DayOfWeek: time.Monday, IsOpen: true, StartTime: "09:00", EndTime: "17:00"}
	require.NoError(t, valid.Validate())

	closed := DaySchedule{DayOfWeek: time.Sunday}
	require.NoError(t, closed.Validate())

	inverted := DaySchedule{DayOfWeek: time.Monday, IsOpen: true, StartTime: "17:00", EndTime: "09:00"}
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidScheduleRange)

	equal := DaySchedule{DayOfWeek: time.Monday, IsOpen: true, StartTime: "09:00", EndTime: "09:00"}
	assert.ErrorIs(t, equal.Validate(), ErrInvalidScheduleRange)

	closedWithHours := DaySchedule{DayOfWeek: time.Sunday, IsOpen: false, StartTime: "09:00", EndTime: "13:00"}
	assert.ErrorIs(t, closedWithHours.Validate(), ErrInvalidScheduleRange)
}

func TestWeeklySchedule_Validate(t *testing.T) {
	require.NoError(t, weekdaySchedule().Validate())

	short := WeeklySchedule{Days: []DaySchedule{{DayOfWeek: time.Monday}}}
	assert.ErrorIs(t, short.Validate(), ErrIncompleteSchedule)

	duplicated := weekdaySchedule()
	duplicated.Days[0].DayOfWeek = time.Monday
	assert.ErrorIs(t, duplicated.Validate(), ErrIncompleteSchedule)
}
