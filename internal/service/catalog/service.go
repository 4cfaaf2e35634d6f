package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/appointify/appointment-service/internal/domain"
	businessStorage "github.com/appointify/appointment-service/internal/infra/storage/business"
	serviceStorage "github.com/appointify/appointment-service/internal/infra/storage/service"
	"github.com/appointify/appointment-service/internal/service/catalog/models"
)

// Service сервис управления каталогом услуг бизнеса
type Service struct {
	serviceRepo  ServiceRepository
	businessRepo BusinessRepository
	cardCache    CardCache
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	businessRepo BusinessRepository,
	cardCache CardCache,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		businessRepo: businessRepo,
		cardCache:    cardCache,
		logger:       logger,
	}
}

// Create создает новую услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for user=%d", req.Name, req.UserID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("Create: validation failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	biz, err := s.getOwnedBusiness(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		BusinessID:      biz.ID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        isActive,
	})
	if err != nil {
		s.logger.Error("Create: repository error for business=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidateCard(ctx, biz.Slug)

	s.logger.Info("Create: service id=%d created for business=%d", created.ID, biz.ID)
	return models.FromDomainService(created), nil
}

// List получает услуги бизнеса пользователя, включая неактивные
func (s *Service) List(ctx context.Context, userID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services for user=%d", userID)

	biz, err := s.getOwnedBusiness(ctx, userID)
	if err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.ListByBusiness(ctx, biz.ID, false)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Update обновляет услугу
func (s *Service) Update(ctx context.Context, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d for user=%d", serviceID, req.UserID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	biz, err := s.getOwnedBusiness(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	updated := &domain.Service{
		ID:              serviceID,
		BusinessID:      biz.ID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        req.IsActive,
	}

	if err := s.serviceRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, serviceStorage.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found for business=%d", serviceID, biz.ID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidateCard(ctx, biz.Slug)

	fresh, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		s.logger.Error("Update: failed to reload service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Update - reload service: %v", ErrInternal, err)
	}

	return models.FromDomainService(fresh), nil
}

// SetActive переключает активность услуги.
// Неактивные услуги скрываются с публичной страницы, но остаются в каталоге.
func (s *Service) SetActive(ctx context.Context, serviceID int64, userID int64, active bool) error {
	s.logger.Info("SetActive: service id=%d -> active=%t by user=%d", serviceID, active, userID)

	biz, err := s.getOwnedBusiness(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.serviceRepo.SetActive(ctx, serviceID, biz.ID, active); err != nil {
		if errors.Is(err, serviceStorage.ErrServiceNotFound) {
			s.logger.Warn("SetActive: service id=%d not found for business=%d", serviceID, biz.ID)
			return ErrServiceNotFound
		}
		s.logger.Error("SetActive: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	s.invalidateCard(ctx, biz.Slug)
	return nil
}

// Delete физически удаляет услугу.
// Существующие бронирования сохраняются, их привязка к услуге обнуляется.
func (s *Service) Delete(ctx context.Context, serviceID int64, userID int64) error {
	s.logger.Info("Delete: deleting service id=%d for user=%d", serviceID, userID)

	biz, err := s.getOwnedBusiness(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, serviceID, biz.ID); err != nil {
		if errors.Is(err, serviceStorage.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found for business=%d", serviceID, biz.ID)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidateCard(ctx, biz.Slug)
	return nil
}

// invalidateCard сбрасывает кэш публичной карточки.
// Ошибка инвалидации не фатальна: карточка истечет по TTL.
func (s *Service) invalidateCard(ctx context.Context, slug string) {
	if err := s.cardCache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn("invalidateCard: failed to invalidate card for slug=%s: %v", slug, err)
	}
}

// getOwnedBusiness получает бизнес текущего пользователя
func (s *Service) getOwnedBusiness(ctx context.Context, userID int64) (*domain.Business, error) {
	biz, err := s.businessRepo.GetByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, businessStorage.ErrBusinessNotFound) {
			s.logger.Warn("getOwnedBusiness: user=%d has no business", userID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("getOwnedBusiness: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: getOwnedBusiness - repository error: %v", ErrInternal, err)
	}
	return biz, nil
}
