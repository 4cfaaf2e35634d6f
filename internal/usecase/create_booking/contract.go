package create_booking

import (
	"context"
	"time"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/pkg/types"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetDays(ctx context.Context, businessID int64) ([]domain.DaySchedule, error)
	GetHolidays(ctx context.Context, businessID int64) ([]domain.Holiday, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// Claim атомарно занимает слот (создавая его при необходимости)
	// и возвращает его ID. Возвращает slot.ErrSlotTaken, если слот уже занят.
	Claim(ctx context.Context, businessID int64, date time.Time, t types.TimeString) (int64, error)
	// Release освобождает слот. Используется как компенсация при ошибке
	// вставки бронирования.
	Release(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
