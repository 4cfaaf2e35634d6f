package catalog

import (
	"context"

	"github.com/appointify/appointment-service/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListByBusiness(ctx context.Context, businessID int64, onlyActive bool) ([]*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	SetActive(ctx context.Context, id int64, businessID int64, active bool) error
	Delete(ctx context.Context, id int64, businessID int64) error
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByOwner(ctx context.Context, ownerUserID int64) (*domain.Business, error)
}

// CardCache кэш карточек публичных страниц
type CardCache interface {
	Invalidate(ctx context.Context, slug string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
