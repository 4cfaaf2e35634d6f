package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/appointify/appointment-service/internal/domain"
	businessStorage "github.com/appointify/appointment-service/internal/infra/storage/business"
	"github.com/appointify/appointment-service/internal/service/schedule/models"
)

// Service сервис управления недельным расписанием и праздниками
type Service struct {
	scheduleRepo ScheduleRepository
	businessRepo BusinessRepository
	cardCache    CardCache
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	businessRepo BusinessRepository,
	cardCache CardCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		businessRepo: businessRepo,
		cardCache:    cardCache,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает недельное расписание и праздники бизнеса пользователя
func (s *Service) GetSchedule(ctx context.Context, userID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for user=%d", userID)

	biz, err := s.getOwnedBusiness(ctx, userID)
	if err != nil {
		return nil, err
	}

	var days []domain.DaySchedule
	var holidays []domain.Holiday

	// Читаем дни и праздники одним консистентным снимком
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var txErr error

		days, txErr = s.scheduleRepo.GetDays(ctx, biz.ID)
		if txErr != nil {
			return fmt.Errorf("get days: %w", txErr)
		}

		holidays, txErr = s.scheduleRepo.GetHolidays(ctx, biz.ID)
		if txErr != nil {
			return fmt.Errorf("get holidays: %w", txErr)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("GetSchedule: failed to read schedule for business=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: GetSchedule - read schedule: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(days, holidays), nil
}

// UpdateSchedule полностью заменяет недельное расписание.
// Расписание должно содержать все 7 дней недели ровно по одному разу.
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for user=%d", req.UserID)

	biz, err := s.getOwnedBusiness(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	days := make([]domain.DaySchedule, 0, len(req.Days))
	for _, input := range req.Days {
		day, err := input.ToDomainDay(biz.ID)
		if err != nil {
			s.logger.Warn("UpdateSchedule: invalid day for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		days = append(days, day)
	}

	weekly := domain.WeeklySchedule{Days: days}
	if err := weekly.Validate(); err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.UpsertDays(txCtx, biz.ID, days)
	})
	if txErr != nil {
		s.logger.Error("UpdateSchedule: failed to upsert days for business=%d: %v", biz.ID, txErr)
		return nil, fmt.Errorf("%w: UpdateSchedule - upsert days: %v", ErrInternal, txErr)
	}

	s.invalidateCard(ctx, biz.Slug)

	s.logger.Info("UpdateSchedule: schedule updated for business=%d", biz.ID)
	return s.GetSchedule(ctx, req.UserID)
}

// ReplaceHolidays полностью заменяет список праздников.
// Вместо удаления всех строк вычисляется разница: существующие праздники
// с той же датой обновляются, отсутствующие в новом списке удаляются.
func (s *Service) ReplaceHolidays(ctx context.Context, req *models.ReplaceHolidaysRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceHolidays: replacing %d holidays for user=%d", len(req.Holidays), req.UserID)

	biz, err := s.getOwnedBusiness(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	desired := make([]domain.Holiday, 0, len(req.Holidays))
	seen := make(map[string]bool, len(req.Holidays))
	for _, input := range req.Holidays {
		holiday, err := input.ToDomainHoliday(biz.ID)
		if err != nil {
			s.logger.Warn("ReplaceHolidays: invalid holiday for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidHoliday, err)
		}
		key := holiday.Date.Format(domain.DateFormat)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate date %s", ErrInvalidHoliday, key)
		}
		seen[key] = true
		desired = append(desired, holiday)
	}

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.scheduleRepo.GetHolidays(txCtx, biz.ID)
		if err != nil {
			return fmt.Errorf("get holidays: %v", err)
		}

		toDelete := diffRemovedHolidays(existing, desired)
		if len(toDelete) > 0 {
			if err := s.scheduleRepo.DeleteHolidays(txCtx, biz.ID, toDelete); err != nil {
				return fmt.Errorf("delete holidays: %v", err)
			}
		}

		if len(desired) > 0 {
			if err := s.scheduleRepo.InsertHolidays(txCtx, biz.ID, desired); err != nil {
				return fmt.Errorf("insert holidays: %v", err)
			}
		}

		return nil
	})
	if txErr != nil {
		s.logger.Error("ReplaceHolidays: failed for business=%d: %v", biz.ID, txErr)
		return nil, fmt.Errorf("%w: ReplaceHolidays - %v", ErrInternal, txErr)
	}

	s.invalidateCard(ctx, biz.Slug)

	s.logger.Info("ReplaceHolidays: holidays replaced for business=%d", biz.ID)
	return s.GetSchedule(ctx, req.UserID)
}

// diffRemovedHolidays возвращает ID существующих праздников, дат которых
// нет в новом списке
func diffRemovedHolidays(existing, desired []domain.Holiday) []int64 {
	desiredDates := make(map[string]bool, len(desired))
	for _, h := range desired {
		desiredDates[h.Date.Format(domain.DateFormat)] = true
	}

	removed := make([]int64, 0)
	for _, h := range existing {
		if !desiredDates[h.Date.Format(domain.DateFormat)] {
			removed = append(removed, h.ID)
		}
	}

	return removed
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
