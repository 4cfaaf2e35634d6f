package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/appointify/appointment-service/internal/domain"
	businessRepo "github.com/appointify/appointment-service/internal/infra/storage/business"
	serviceRepo "github.com/appointify/appointment-service/internal/infra/storage/service"
)

// UseCase use case для получения доступных слотов публичной страницы бронирования
type UseCase struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: slug=%s, service=%d, date=%s",
		req.Slug, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бизнес по slug
	biz, err := uc.businessRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business slug=%s not found", req.Slug)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// Выключенная публичная страница не раскрывается: тот же not found
	if !biz.IsPublicEnabled {
		uc.logger.Warn("GetAvailableSlots: public booking disabled for business id=%d", biz.ID)
		return nil, ErrBusinessNotFound
	}

	// 4. Получаем услугу и проверяем принадлежность бизнесу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != biz.ID || !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d not available for business id=%d", req.ServiceID, biz.ID)
		return nil, ErrServiceNotFound
	}

	// 5. Прошедшая дата - валидный запрос с пустым результатом
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse(biz.ID, req), nil
	}

	// 6. Получаем недельное расписание и праздники
	days, err := uc.scheduleRepo.GetDays(ctx, biz.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for business id=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	holidays, err := uc.scheduleRepo.GetHolidays(ctx, biz.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get holidays for business id=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}

	// 7. Разрешаем рабочие часы на дату (праздник имеет приоритет над днем недели)
	hours := domain.WeeklySchedule{Days: days}.Resolve(req.Date, holidays)
	if !hours.Open {
		uc.logger.Info("GetAvailableSlots: business id=%d is closed on %s", biz.ID, req.Date.Format(domain.DateFormat))
		return emptyResponse(biz.ID, req), nil
	}

	// 8. Генерируем сетку слотов
	candidates, err := generateTimeSlots(hours, domain.SlotStepMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 9. Исключаем слоты в прошлом (только для сегодняшней даты)
	candidates = filterPastSlots(candidates, req.Date, now)

	// 10. Исключаем занятые слоты
	bookedTimes, err := uc.slotRepo.GetBookedTimes(ctx, biz.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}

	available := filterBookedSlots(candidates, bookedTimes)

	slots := make([]Slot, len(available))
	for i, t := range available {
		slots[i] = Slot{StartTime: t, DurationMinutes: service.DurationMinutes}
	}

	uc.logger.Info("GetAvailableSlots: %d slots available for business=%d, service=%d, date=%s",
		len(slots), biz.ID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		BusinessID: biz.ID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}

func emptyResponse(businessID int64, req *Request) *Response {
	return &Response{
		BusinessID: businessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Slots:      []Slot{},
	}
}
