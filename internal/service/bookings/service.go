package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/appointify/appointment-service/internal/domain"
	bookingStorage "github.com/appointify/appointment-service/internal/infra/storage/booking"
	businessStorage "github.com/appointify/appointment-service/internal/infra/storage/business"
	slotStorage "github.com/appointify/appointment-service/internal/infra/storage/slot"
	"github.com/appointify/appointment-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями бизнеса
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно только владельцу бизнеса, которому принадлежит бронирование.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	biz, err := s.getOwnedBusiness(ctx, userID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingStorage.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.BusinessID != biz.ID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetBusinessBookings получает бронирования бизнеса текущего пользователя.
// Поддерживает фильтрацию по дате слота и статусу; отмененные бронирования
// по умолчанию не включаются.
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBusinessBookings: fetching bookings for user=%d", req.UserID)

	biz, err := s.getOwnedBusiness(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{
		BusinessID:       biz.ID,
		Date:             req.Date,
		IncludeCancelled: req.IncludeCancelled,
	}

	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetBusinessBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", biz.ID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: fetched %d bookings for business=%d", len(bookings), biz.ID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования с проверкой допустимости перехода.
// Перевод в cancelled освобождает слот; восстановление cancelled -> pending
// атомарно занимает слот заново и завершается ошибкой, если слот уже занят.
// Бронирования никогда не удаляются.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d -> %s by user=%d", bookingID, req.Status, req.UserID)

	nextStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	biz, err := s.getOwnedBusiness(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var updated *domain.Booking
	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingStorage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrInternal, err)
		}

		if booking.BusinessID != biz.ID {
			return ErrAccessDenied
		}

		if !booking.CanTransitionTo(nextStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, nextStatus)
		}

		switch {
		case nextStatus == domain.StatusCancelled:
			// Отмена освобождает слот для повторного бронирования
			if err := s.slotRepo.Release(txCtx, booking.SlotID); err != nil {
				return fmt.Errorf("%w: UpdateStatus - release slot: %v", ErrInternal, err)
			}
		case booking.Status == domain.StatusCancelled && nextStatus == domain.StatusPending:
			// Восстановление: слот мог быть занят, пока бронирование было отменено
			if err := s.slotRepo.ClaimByID(txCtx, booking.SlotID); err != nil {
				if errors.Is(err, slotStorage.ErrSlotTaken) {
					return ErrSlotUnavailable
				}
				return fmt.Errorf("%w: UpdateStatus - claim slot: %v", ErrInternal, err)
			}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, nextStatus); err != nil {
			return fmt.Errorf("%w: UpdateStatus - update status: %v", ErrInternal, err)
		}

		booking.Status = nextStatus
		updated = booking
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrBookingNotFound) || errors.Is(txErr, ErrAccessDenied) ||
			errors.Is(txErr, ErrInvalidTransition) || errors.Is(txErr, ErrSlotUnavailable) {
			s.logger.Warn("UpdateStatus: booking id=%d: %v", bookingID, txErr)
			return nil, txErr
		}
		s.logger.Error("UpdateStatus: booking id=%d: %v", bookingID, txErr)
		return nil, txErr
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", bookingID, nextStatus)
	return models.FromDomainBooking(updated), nil
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
