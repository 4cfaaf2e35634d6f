package business

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/appointify/appointment-service/internal/domain"
	businessStorage "github.com/appointify/appointment-service/internal/infra/storage/business"
	"github.com/appointify/appointment-service/internal/service/business/models"
	"github.com/appointify/appointment-service/pkg/types"
)

// Service сервис управления бизнесом владельца
type Service struct {
	businessRepo BusinessRepository
	scheduleRepo ScheduleRepository
	cardCache    CardCache
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бизнесов
func NewService(
	businessRepo BusinessRepository,
	scheduleRepo ScheduleRepository,
	cardCache CardCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		businessRepo: businessRepo,
		scheduleRepo: scheduleRepo,
		cardCache:    cardCache,
		txManager:    txManager,
		logger:       logger,
	}
}

// Onboard создает бизнес пользователя или обновляет существующий.
// Повторный вызов идемпотентен: обновляются название и категория,
// slug и флаг публичности не меняются. Новому бизнесу засеивается
// недельное расписание по умолчанию.
func (s *Service) Onboard(ctx context.Context, req *models.OnboardRequest) (*models.BusinessResponse, error) {
	s.logger.Info("Onboard: onboarding business %q for user=%d", req.Name, req.UserID)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxBusinessNameLength {
		return nil, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxBusinessNameLength)
	}

	isNew := false
	if _, err := s.businessRepo.GetByOwner(ctx, req.UserID); err != nil {
		if !errors.Is(err, businessStorage.ErrBusinessNotFound) {
			s.logger.Error("Onboard: repository error for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: Onboard - repository error: %v", ErrInternal, err)
		}
		isNew = true
	}

	var stored *domain.Business
	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		stored, err = s.businessRepo.Upsert(txCtx, &domain.Business{
			OwnerUserID:     req.UserID,
			Name:            name,
			Slug:            generateSlug(name),
			CategoryID:      req.CategoryID,
			IsPublicEnabled: false,
		})
		if err != nil {
			if errors.Is(err, businessStorage.ErrSlugTaken) {
				return ErrSlugTaken
			}
			return fmt.Errorf("%w: Onboard - upsert business: %v", ErrInternal, err)
		}

		if isNew {
			if err := s.scheduleRepo.UpsertDays(txCtx, stored.ID, defaultWeek(stored.ID)); err != nil {
				return fmt.Errorf("%w: Onboard - seed default schedule: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrSlugTaken) {
			s.logger.Warn("Onboard: slug collision for user=%d", req.UserID)
			return nil, ErrSlugTaken
		}
		s.logger.Error("Onboard: failed for user=%d: %v", req.UserID, txErr)
		return nil, txErr
	}

	if !isNew {
		s.invalidateCard(ctx, stored.Slug)
	}

	s.logger.Info("Onboard: business id=%d ready for user=%d, slug=%s", stored.ID, req.UserID, stored.Slug)
	return models.FromDomainBusiness(stored), nil
}

// GetMy получает бизнес текущего пользователя
func (s *Service) GetMy(ctx context.Context, userID int64) (*models.BusinessResponse, error) {
	s.logger.Info("GetMy: fetching business for user=%d", userID)

	biz, err := s.businessRepo.GetByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, businessStorage.ErrBusinessNotFound) {
			s.logger.Warn("GetMy: user=%d has no business", userID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetMy: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMy - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBusiness(biz), nil
}

// SetPublicEnabled включает или выключает публичную страницу бронирования
func (s *Service) SetPublicEnabled(ctx context.Context, req *models.SetPublicEnabledRequest) (*models.BusinessResponse, error) {
	s.logger.Info("SetPublicEnabled: user=%d -> enabled=%t", req.UserID, req.Enabled)

	biz, err := s.businessRepo.GetByOwner(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, businessStorage.ErrBusinessNotFound) {
			s.logger.Warn("SetPublicEnabled: user=%d has no business", req.UserID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("SetPublicEnabled: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: SetPublicEnabled - repository error: %v", ErrInternal, err)
	}

	if err := s.businessRepo.SetPublicEnabled(ctx, biz.ID, req.Enabled); err != nil {
		s.logger.Error("SetPublicEnabled: failed for business=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: SetPublicEnabled - update flag: %v", ErrInternal, err)
	}

	s.invalidateCard(ctx, biz.Slug)

	biz.IsPublicEnabled = req.Enabled
	return models.FromDomainBusiness(biz), nil
}

// generateSlug строит публичный slug из названия бизнеса.
// Суффикс из uuid защищает от коллизий между одинаковыми названиями.
func generateSlug(name string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII, unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case !prevDash:
			b.WriteByte('-')
			prevDash = true
		}
	}

	base := strings.Trim(b.String(), "-")
	if base == "" {
		base = "business"
	}

	suffix := uuid.NewString()[:8]
	return base + "-" + suffix
}

// defaultWeek недельное расписание по умолчанию для нового бизнеса
func defaultWeek(businessID int64) []domain.DaySchedule {
	days := make([]domain.DaySchedule, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days = append(days, domain.DaySchedule{
			BusinessID: businessID,
			DayOfWeek:  d,
			IsOpen:     true,
			StartTime:  types.TimeString(domain.DefaultOpenTime),
			EndTime:    types.TimeString(domain.DefaultCloseTime),
		})
	}
	return days
}

// invalidateCard сбрасывает кэш публичной карточки
func (s *Service) invalidateCard(ctx context.Context, slug string) {
	if err := s.cardCache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn("invalidateCard: failed to invalidate card for slug=%s: %v", slug, err)
	}
}
