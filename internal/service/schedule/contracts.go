package schedule

import (
	"context"

	"github.com/appointify/appointment-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetDays(ctx context.Context, businessID int64) ([]domain.DaySchedule, error)
	UpsertDays(ctx context.Context, businessID int64, days []domain.DaySchedule) error
	GetHolidays(ctx context.Context, businessID int64) ([]domain.Holiday, error)
	InsertHolidays(ctx context.Context, businessID int64, holidays []domain.Holiday) error
	DeleteHolidays(ctx context.Context, businessID int64, ids []int64) error
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByOwner(ctx context.Context, ownerUserID int64) (*domain.Business, error)
}

// CardCache кэш карточек публичных страниц
type CardCache interface {
	Invalidate(ctx context.Context, slug string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
