package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrBusinessNotFound возвращается, когда бизнес не найден или его
	// публичная страница выключена
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена, неактивна
	// или принадлежит другому бизнесу
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrBusinessClosed возвращается, когда бизнес закрыт на запрошенную дату
	ErrBusinessClosed = errors.New("create_booking: business is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не попадает на сетку слотов
	// или выходит за рабочие часы
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTimeInPast возвращается при попытке забронировать прошедшее время
	ErrTimeInPast = errors.New("create_booking: time is in the past")

	// ErrSlotUnavailable возвращается, когда слот уже занят другим бронированием
	ErrSlotUnavailable = errors.New("create_booking: slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
