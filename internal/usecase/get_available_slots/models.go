package get_available_slots

import (
	"time"

	"github.com/appointify/appointment-service/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	Slug      string    // Публичный slug бизнеса
	ServiceID int64     // ID услуги
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Slot доступный для бронирования слот
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги в минутах
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BusinessID int64
	ServiceID  int64
	Date       time.Time
	Slots      []Slot
}
