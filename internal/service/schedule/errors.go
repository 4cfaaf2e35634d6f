package schedule

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда у пользователя нет бизнеса
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInvalidSchedule возвращается при некорректном недельном расписании
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidHoliday возвращается при некорректном празднике
	ErrInvalidHoliday = errors.New("invalid holiday")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
