package domain

import (
	"time"

	"github.com/appointify/appointment-service/pkg/types"
)

// AppointmentSlot единица занятости: конкретное (бизнес, дата, время).
// Инвариант: пока IsBooked = true, на слот ссылается не более одного
// активного бронирования. Строка слота создается лениво при первой попытке
// бронирования и переживает отмену бронирования (IsBooked сбрасывается).
type AppointmentSlot struct {
	ID         int64
	BusinessID int64
	Date       time.Time
	Time       types.TimeString
	IsBooked   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
