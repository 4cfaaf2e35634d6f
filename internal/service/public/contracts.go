package public

import (
	"context"
	"time"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/internal/infra/cache/publicbusiness"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	ListByBusiness(ctx context.Context, businessID int64, onlyActive bool) ([]*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetDays(ctx context.Context, businessID int64) ([]domain.DaySchedule, error)
	GetHolidays(ctx context.Context, businessID int64) ([]domain.Holiday, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetBookedDates(ctx context.Context, businessID int64, from, to time.Time) ([]time.Time, error)
}

// CardCache кэш карточек публичных страниц
type CardCache interface {
	Get(ctx context.Context, slug string) (*publicbusiness.Card, error)
	Set(ctx context.Context, slug string, card *publicbusiness.Card) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
