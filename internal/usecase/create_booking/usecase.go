package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/appointify/appointment-service/internal/domain"
	businessStorage "github.com/appointify/appointment-service/internal/infra/storage/business"
	serviceStorage "github.com/appointify/appointment-service/internal/infra/storage/service"
	slotStorage "github.com/appointify/appointment-service/internal/infra/storage/slot"
	"github.com/appointify/appointment-service/pkg/types"
)

// UseCase use case для создания бронирования с публичной страницы
type UseCase struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slug=%s, service=%d, date=%s, time=%s",
		req.Slug, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бизнес по slug
	biz, err := uc.businessRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, businessStorage.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business slug=%s not found", req.Slug)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !biz.IsPublicEnabled {
		uc.logger.Warn("CreateBooking: public booking disabled for business id=%d", biz.ID)
		return nil, ErrBusinessNotFound
	}

	// 4. Получаем услугу и проверяем принадлежность бизнесу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceStorage.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != biz.ID || !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d not available for business id=%d", req.ServiceID, biz.ID)
		return nil, ErrServiceNotFound
	}

	// 5. Прошедшие дата/время не бронируются
	if isTimeInPast(req.Date, req.Time, now) {
		uc.logger.Warn("CreateBooking: requested time %s %s is in the past",
			req.Date.Format(domain.DateFormat), req.Time)
		return nil, ErrTimeInPast
	}

	// 6. Проверяем, что бизнес открыт и время попадает в рабочие часы
	if err := uc.checkWorkingHours(ctx, biz.ID, req.Date, req.Time); err != nil {
		return nil, err
	}

	// 7. Атомарно занимаем слот и создаем бронирование в одной транзакции
	var created *domain.Booking
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slotID, err := uc.slotRepo.Claim(txCtx, biz.ID, req.Date, req.Time)
		if err != nil {
			if errors.Is(err, slotStorage.ErrSlotTaken) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: failed to claim slot: %w", ErrInternal, err)
		}

		booking := &domain.Booking{
			BusinessID:    biz.ID,
			ServiceID:     &service.ID,
			SlotID:        slotID,
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerPhone: strings.TrimSpace(req.CustomerPhone),
			Notes:         req.Notes,
			Status:        domain.StatusPending,
			SlotDate:      req.Date,
			SlotTime:      req.Time,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Компенсация: транзакция откатится, но при работе вне транзакции
			// (или с пулом без отката) слот нужно освободить явно
			if relErr := uc.slotRepo.Release(txCtx, slotID); relErr != nil {
				uc.logger.Error("CreateBooking: failed to release slot id=%d after booking error: %v", slotID, relErr)
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrSlotUnavailable) {
			uc.logger.Warn("CreateBooking: slot %s %s already booked for business id=%d",
				req.Date.Format(domain.DateFormat), req.Time, biz.ID)
			return nil, ErrSlotUnavailable
		}
		if isSerializationConflict(txErr) {
			// Проигравший конкурентной сериализуемой транзакции: для клиента
			// это тот же занятый слот, а не ошибка сервиса
			uc.logger.Warn("CreateBooking: serialization conflict for business id=%d, slot %s %s",
				biz.ID, req.Date.Format(domain.DateFormat), req.Time)
			return nil, ErrSlotUnavailable
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", txErr)
		if errors.Is(txErr, ErrInternal) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	uc.logger.Info("CreateBooking: booking id=%d created for business=%d, slot=%d",
		created.ID, biz.ID, created.SlotID)

	return &Response{Booking: created}, nil
}

// checkWorkingHours проверяет, что бизнес открыт на дату и слот целиком
// помещается в рабочие часы
func (uc *UseCase) checkWorkingHours(ctx context.Context, businessID int64, date time.Time, t types.TimeString) error {
	days, err := uc.scheduleRepo.GetDays(ctx, businessID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get schedule for business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	holidays, err := uc.scheduleRepo.GetHolidays(ctx, businessID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get holidays for business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}

	hours := domain.WeeklySchedule{Days: days}.Resolve(date, holidays)
	if !hours.Open {
		uc.logger.Warn("CreateBooking: business id=%d is closed on %s", businessID, date.Format(domain.DateFormat))
		return ErrBusinessClosed
	}

	if t.IsBefore(hours.Start) {
		return fmt.Errorf("%w: %s is before opening time %s", ErrInvalidTimeSlot, t, hours.Start)
	}

	slotEnd, err := t.AddMinutes(domain.SlotStepMinutes)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTimeSlot, t, err)
	}
	if slotEnd.IsAfter(hours.End) {
		return fmt.Errorf("%w: %s does not fit working hours ending at %s", ErrInvalidTimeSlot, t, hours.End)
	}

	return nil
}

// isTimeInPast проверяет, что дата в прошлом, либо дата сегодняшняя,
// а время слота уже наступило
func isTimeInPast(date time.Time, t types.TimeString, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return true
	}
	if dateOnly.After(nowOnly) {
		return false
	}

	return !t.IsAfter(types.NewTimeString(now))
}

// isSerializationConflict распознает проигрыш конкурентной сериализуемой
// транзакции (PostgreSQL 40001, serialization_failure)
func isSerializationConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}
