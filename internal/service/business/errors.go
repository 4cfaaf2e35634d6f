package business

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда у пользователя нет бизнеса
	ErrBusinessNotFound = errors.New("business not found")

	// ErrSlugTaken возвращается, когда не удалось подобрать свободный slug
	ErrSlugTaken = errors.New("slug already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
