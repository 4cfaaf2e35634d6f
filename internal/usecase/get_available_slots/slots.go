package get_available_slots

import (
	"fmt"
	"time"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/pkg/types"
)

// generateTimeSlots генерирует сетку слотов рабочего дня с фиксированным шагом.
// Слоты идут от начала работы (включительно) до конца (исключительно):
// слот, конец которого вышел бы за время закрытия, не создается.
// Чистая детерминированная функция своих аргументов.
func generateTimeSlots(hours domain.DayHours, stepMinutes int) ([]types.TimeString, error) {
	if !hours.Open {
		return []types.TimeString{}, nil
	}

	// Ночные интервалы (end <= start) - некорректное расписание
	if !hours.Start.IsBefore(hours.End) {
		return nil, fmt.Errorf("%w: %s..%s", domain.ErrInvalidScheduleRange, hours.Start, hours.End)
	}

	slots := make([]types.TimeString, 0)
	current := hours.Start

	for current.IsBefore(hours.End) {
		slotEnd, err := current.AddMinutes(stepMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(hours.End) {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(stepMinutes)
		if err != nil {
			return nil, err
		}
	}

	return slots, nil
}

// filterPastSlots исключает слоты, которые уже начались или начинаются прямо сейчас.
// Применяется только если запрошенная дата - сегодня относительно now;
// слоты будущих дат по времени суток не фильтруются.
func filterPastSlots(slots []types.TimeString, date time.Time, now time.Time) []types.TimeString {
	if !isSameDay(date, now) {
		return slots
	}

	currentTime := types.NewTimeString(now)

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot.IsAfter(currentTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// filterBookedSlots исключает слоты, время которых занято.
// Сравнение точное на гранулярности сетки; порядок кандидатов сохраняется.
func filterBookedSlots(slots []types.TimeString, bookedTimes []types.TimeString) []types.TimeString {
	if len(bookedTimes) == 0 {
		return slots
	}

	booked := make(map[types.TimeString]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = true
	}

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !booked[slot] {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
