package domain

import (
	"errors"
	"time"

	"github.com/appointify/appointment-service/pkg/types"
)

// ErrUnknownStatus возвращается при парсинге неизвестного статуса бронирования
var ErrUnknownStatus = errors.New("domain: unknown booking status")

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus валидирует и конвертирует строку в BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return BookingStatus(s), nil
	default:
		return "", ErrUnknownStatus
	}
}

// allowedTransitions допустимые переходы статусов.
// cancelled -> pending это явное восстановление, оно требует повторного
// атомарного захвата слота (см. service/bookings).
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusCompleted, StatusCancelled},
	StatusCompleted: {StatusCancelled},
	StatusCancelled: {StatusPending},
}

// Booking represents an appointment booking.
// Бронирования никогда не удаляются, меняется только статус.
type Booking struct {
	ID            int64
	BusinessID    int64
	ServiceID     *int64
	SlotID        int64
	CustomerName  string
	CustomerPhone string
	Notes         *string
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Денормализованные данные слота, заполняются join-ом при чтении
	SlotDate time.Time
	SlotTime types.TimeString
}

// IsActive returns true while the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanTransitionTo returns true if the status transition is allowed
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BookingsFilter фильтр для получения бронирований бизнеса
type BookingsFilter struct {
	BusinessID       int64          // Обязательный параметр
	Date             *time.Time     // Фильтр по дате слота (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
}
