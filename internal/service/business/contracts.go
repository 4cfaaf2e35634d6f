package business

import (
	"context"

	"github.com/appointify/appointment-service/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	Upsert(ctx context.Context, b *domain.Business) (*domain.Business, error)
	GetByOwner(ctx context.Context, ownerUserID int64) (*domain.Business, error)
	SetPublicEnabled(ctx context.Context, id int64, enabled bool) error
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetDays(ctx context.Context, businessID int64) ([]domain.DaySchedule, error)
	UpsertDays(ctx context.Context, businessID int64, days []domain.DaySchedule) error
}

// CardCache кэш карточек публичных страниц
type CardCache interface {
	Invalidate(ctx context.Context, slug string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
