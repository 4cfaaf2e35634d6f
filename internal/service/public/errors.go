package public

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден или его
	// публичная страница выключена
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
