package create_booking

import (
	"time"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Slug          string           // Публичный slug бизнеса
	ServiceID     int64            // ID услуги
	Date          time.Time        // Дата бронирования (без времени)
	Time          types.TimeString // Время начала слота
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	Notes         *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
