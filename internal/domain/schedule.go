package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/appointify/appointment-service/pkg/types"
)

var (
	// ErrInvalidScheduleRange возвращается для открытого дня с end <= start
	ErrInvalidScheduleRange = errors.New("domain: schedule end time must be after start time")

	// ErrIncompleteSchedule возвращается, когда недельное расписание содержит
	// не ровно 7 дней или дни повторяются
	ErrIncompleteSchedule = errors.New("domain: weekly schedule must contain exactly 7 distinct days")
)

// DaySchedule расписание бизнеса на один день недели.
// Для закрытого дня StartTime и EndTime пустые.
type DaySchedule struct {
	ID         int64
	BusinessID int64
	DayOfWeek  time.Weekday
	IsOpen     bool
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// Validate проверяет инварианты строки расписания:
// открытый день обязан иметь start < end, закрытый - не иметь времени вовсе
func (d *DaySchedule) Validate() error {
	if !d.IsOpen {
		if !d.StartTime.IsZero() || !d.EndTime.IsZero() {
			return fmt.Errorf("%w: closed day must not have working hours", ErrInvalidScheduleRange)
		}
		return nil
	}

	if err := d.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScheduleRange, err)
	}
	if err := d.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScheduleRange, err)
	}
	if !d.StartTime.IsBefore(d.EndTime) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidScheduleRange, d.StartTime, d.EndTime)
	}

	return nil
}

// Holiday дата-исключение: бизнес закрыт независимо от недельного расписания
type Holiday struct {
	ID         int64
	BusinessID int64
	Date       time.Time
	Name       string
}

// DayHours рабочие часы бизнеса на конкретную дату
type DayHours struct {
	Open  bool
	Start types.TimeString
	End   types.TimeString
}

// DefaultDayHours часы по умолчанию для дня недели без строки расписания:
// отсутствующая строка трактуется как открытый день 09:00-17:00.
func DefaultDayHours() DayHours {
	return DayHours{
		Open:  true,
		Start: types.TimeString(DefaultOpenTime),
		End:   types.TimeString(DefaultCloseTime),
	}
}

// WeeklySchedule недельное расписание бизнеса
type WeeklySchedule struct {
	Days []DaySchedule
}

// Validate проверяет, что расписание содержит ровно 7 корректных дней без дубликатов
func (ws WeeklySchedule) Validate() error {
	if len(ws.Days) != 7 {
		return ErrIncompleteSchedule
	}

	seen := make(map[time.Weekday]bool, 7)
	for i := range ws.Days {
		day := &ws.Days[i]
		if seen[day.DayOfWeek] {
			return fmt.Errorf("%w: duplicate %s", ErrIncompleteSchedule, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", day.DayOfWeek, err)
		}
	}

	return nil
}

// Resolve возвращает рабочие часы на дату.
// Порядок разрешения:
//  1. дата в списке праздников - закрыто, приоритет над расписанием дня недели;
//  2. есть строка расписания для дня недели - её часы;
//  3. строки нет - DefaultDayHours (открыто 09:00-17:00).
//
// Чистая функция: не обращается к хранилищу и не зависит от текущего времени.
func (ws WeeklySchedule) Resolve(date time.Time, holidays []Holiday) DayHours {
	for i := range holidays {
		if sameDate(holidays[i].Date, date) {
			return DayHours{Open: false}
		}
	}

	weekday := date.Weekday()
	for i := range ws.Days {
		day := &ws.Days[i]
		if day.DayOfWeek != weekday {
			continue
		}
		if !day.IsOpen {
			return DayHours{Open: false}
		}
		// Некорректная строка (end <= start) не должна ронять выдачу слотов,
		// такой день считается закрытым
		if !day.StartTime.IsBefore(day.EndTime) {
			return DayHours{Open: false}
		}
		return DayHours{Open: true, Start: day.StartTime, End: day.EndTime}
	}

	return DefaultDayHours()
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
