package public

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/internal/infra/cache/publicbusiness"
	businessStorage "github.com/appointify/appointment-service/internal/infra/storage/business"
	"github.com/appointify/appointment-service/internal/service/public/models"
)

// Service сервис публичной страницы бронирования
type Service struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	slotRepo     SlotRepository
	cardCache    CardCache
	logger       Logger
}

// NewService создает новый экземпляр публичного сервиса
func NewService(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	cardCache CardCache,
	logger Logger,
) *Service {
	return &Service{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		slotRepo:     slotRepo,
		cardCache:    cardCache,
		logger:       logger,
	}
}

// GetCard получает карточку публичной страницы бронирования.
// Карточка кэшируется: на промахе собирается из БД и сохраняется в кэш.
func (s *Service) GetCard(ctx context.Context, slug string) (*models.BusinessCardResponse, error) {
	s.logger.Info("GetCard: fetching card for slug=%s", slug)

	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	if card, err := s.cardCache.Get(ctx, slug); err == nil {
		// Флаг публичности проверяется и для кэшированной карточки
		if !card.Business.IsPublicEnabled {
			return nil, ErrBusinessNotFound
		}
		return models.FromCard(card), nil
	} else if !errors.Is(err, publicbusiness.ErrCacheMiss) {
		// Недоступный кэш не блокирует страницу
		s.logger.Warn("GetCard: cache error for slug=%s: %v", slug, err)
	}

	card, err := s.buildCard(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.cardCache.Set(ctx, slug, card); err != nil {
		s.logger.Warn("GetCard: failed to cache card for slug=%s: %v", slug, err)
	}

	return models.FromCard(card), nil
}

// GetBookedDates получает даты месяца, на которые есть хотя бы один занятый слот.
// Используется публичным календарем для подсветки занятых дней.
func (s *Service) GetBookedDates(ctx context.Context, slug string, year int, month int) (*models.BookedDatesResponse, error) {
	s.logger.Info("GetBookedDates: slug=%s, year=%d, month=%d", slug, year, month)

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidInput, month)
	}
	if year < 2000 || year > 2200 {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidInput, year)
	}

	biz, err := s.getPublicBusiness(ctx, slug)
	if err != nil {
		return nil, err
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	dates, err := s.slotRepo.GetBookedDates(ctx, biz.ID, from, to)
	if err != nil {
		s.logger.Error("GetBookedDates: repository error for business=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: GetBookedDates - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookedDatesResponse{
		Year:  year,
		Month: month,
		Dates: make([]string, 0, len(dates)),
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format(domain.DateFormat))
	}

	return resp, nil
}

// buildCard собирает карточку из БД
func (s *Service) buildCard(ctx context.Context, slug string) (*publicbusiness.Card, error) {
	biz, err := s.getPublicBusiness(ctx, slug)
	if err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.ListByBusiness(ctx, biz.ID, true)
	if err != nil {
		s.logger.Error("buildCard: failed to list services for business=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: buildCard - list services: %v", ErrInternal, err)
	}

	days, err := s.scheduleRepo.GetDays(ctx, biz.ID)
	if err != nil {
		s.logger.Error("buildCard: failed to get days for business=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: buildCard - get days: %v", ErrInternal, err)
	}

	holidays, err := s.scheduleRepo.GetHolidays(ctx, biz.ID)
	if err != nil {
		s.logger.Error("buildCard: failed to get holidays for business=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: buildCard - get holidays: %v", ErrInternal, err)
	}

	card := &publicbusiness.Card{
		Business: *biz,
		Services: make([]domain.Service, 0, len(services)),
		Days:     days,
		Holidays: holidays,
	}
	for _, svc := range services {
		card.Services = append(card.Services, *svc)
	}

	return card, nil
}

// getPublicBusiness получает бизнес по slug с проверкой флага публичности
func (s *Service) getPublicBusiness(ctx context.Context, slug string) (*domain.Business, error) {
	biz, err := s.businessRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, businessStorage.ErrBusinessNotFound) {
			s.logger.Warn("getPublicBusiness: slug=%s not found", slug)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("getPublicBusiness: repository error for slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: getPublicBusiness - repository error: %v", ErrInternal, err)
	}

	if !biz.IsPublicEnabled {
		s.logger.Warn("getPublicBusiness: public page disabled for slug=%s", slug)
		return nil, ErrBusinessNotFound
	}

	return biz, nil
}
