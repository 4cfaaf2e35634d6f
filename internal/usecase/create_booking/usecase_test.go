package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointify/appointment-service/internal/domain"
	slotStorage "github.com/appointify/appointment-service/internal/infra/storage/slot"
	"github.com/appointify/appointment-service/pkg/ptr"
	"github.com/appointify/appointment-service/pkg/types"
)

type fakeBusinessRepo struct {
	business *domain.Business
	err      error
}

func (f *fakeBusinessRepo) GetBySlug(_ context.Context, _ string) (*domain.Business, error) {
	return f.business, f.err
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeScheduleRepo struct {
	days     []domain.DaySchedule
	holidays []domain.Holiday
}

func (f *fakeScheduleRepo) GetDays(_ context.Context, _ int64) ([]domain.DaySchedule, error) {
	return f.days, nil
}

func (f *fakeScheduleRepo) GetHolidays(_ context.Context, _ int64) ([]domain.Holiday, error) {
	return f.holidays, nil
}

type fakeSlotRepo struct {
	claimErr    error
	claimedID   int64
	claimCalls  int
	releasedIDs []int64
}

func (f *fakeSlotRepo) Claim(_ context.Context, _ int64, _ time.Time, _ types.TimeString) (int64, error) {
	f.claimCalls++
	if f.claimErr != nil {
		return 0, f.claimErr
	}
	return f.claimedID, nil
}

func (f *fakeSlotRepo) Release(_ context.Context, id int64) error {
	f.releasedIDs = append(f.releasedIDs, id)
	return nil
}

type fakeBookingRepo struct {
	err    error
	nextID int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *b
	created.ID = f.nextID
	return &created, nil
}

// fakeTxManager выполняет fn без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// conflictTxManager имитирует проигрыш конкурентной сериализуемой транзакции:
// сами запросы проходят, а commit падает с PostgreSQL 40001
type conflictTxManager struct{}

func (conflictTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("txmanager: commit: %w", &pq.Error{Code: "40001"})
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBusiness() *domain.Business {
	return &domain.Business{
		ID:              1,
		OwnerUserID:     100,
		Name:            "Glow Studio",
		Slug:            "glow-studio",
		IsPublicEnabled: true,
	}
}

func testService() *domain.Service {
	return &domain.Service{
		ID:              10,
		BusinessID:      1,
		Name:            "Haircut",
		DurationMinutes: 60,
		IsActive:        true,
	}
}

func fullWeekDays() []domain.DaySchedule {
	days := make([]domain.DaySchedule, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days = append(days, domain.DaySchedule{
			BusinessID: 1,
			DayOfWeek:  d,
			IsOpen:     true,
			StartTime:  types.TimeString("09:00"),
			EndTime:    types.TimeString("17:00"),
		})
	}
	return days
}

func validRequest() *Request {
	return &Request{
		Slug:          "glow-studio",
		ServiceID:     10,
		Date:          time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Time:          types.TimeString("10:00"),
		CustomerName:  "Anna",
		CustomerPhone: "+79990001122",
		Notes:         ptr.Ptr("прошу мастера Ольгу"),
	}
}

func newTestUseCase(
	slotRepo *fakeSlotRepo,
	bookingRepo *fakeBookingRepo,
	scheduleRepo *fakeScheduleRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{service: testService()},
		scheduleRepo,
		slotRepo,
		bookingRepo,
		fakeTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	slotRepo := &fakeSlotRepo{claimedID: 42}
	bookingRepo := &fakeBookingRepo{nextID: 7}
	uc := newTestUseCase(slotRepo, bookingRepo, &fakeScheduleRepo{days: fullWeekDays()}, now)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Booking.ID)
	assert.Equal(t, int64(42), resp.Booking.SlotID)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Equal(t, 1, slotRepo.claimCalls)
	assert.Empty(t, slotRepo.releasedIDs)
}

func TestExecute_SlotTaken(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	slotRepo := &fakeSlotRepo{claimErr: slotStorage.ErrSlotTaken}
	uc := newTestUseCase(slotRepo, &fakeBookingRepo{nextID: 7}, &fakeScheduleRepo{days: fullWeekDays()}, now)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_SerializationConflict(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{service: testService()},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{claimedID: 42},
		&fakeBookingRepo{nextID: 7},
		conflictTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	// Проигравший конкурентного commit получает "слот занят", а не 500
	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_CompensatesOnBookingFailure(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	slotRepo := &fakeSlotRepo{claimedID: 42}
	bookingRepo := &fakeBookingRepo{err: errors.New("insert failed")}
	uc := newTestUseCase(slotRepo, bookingRepo, &fakeScheduleRepo{days: fullWeekDays()}, now)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrInternal)
	// Занятый слот освобожден после неудачной вставки бронирования
	assert.Equal(t, []int64{42}, slotRepo.releasedIDs)
}

func TestExecute_HolidayClosed(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	req := validRequest()
	scheduleRepo := &fakeScheduleRepo{
		days:     fullWeekDays(),
		holidays: []domain.Holiday{{BusinessID: 1, Date: req.Date, Name: "Holiday"}},
	}
	uc := newTestUseCase(&fakeSlotRepo{claimedID: 42}, &fakeBookingRepo{nextID: 7}, scheduleRepo, now)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrBusinessClosed)
}

func TestExecute_TimeOutsideWorkingHours(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		time types.TimeString
	}{
		{name: "before opening", time: types.TimeString("08:30")},
		{name: "at closing", time: types.TimeString("17:00")},
		{name: "after closing", time: types.TimeString("17:30")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Time = tt.time
			uc := newTestUseCase(&fakeSlotRepo{claimedID: 42}, &fakeBookingRepo{nextID: 7},
				&fakeScheduleRepo{days: fullWeekDays()}, now)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestExecute_GridMisaligned(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	req := validRequest()
	req.Time = types.TimeString("10:15")
	uc := newTestUseCase(&fakeSlotRepo{claimedID: 42}, &fakeBookingRepo{nextID: 7},
		&fakeScheduleRepo{days: fullWeekDays()}, now)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_TimeInPast(t *testing.T) {
	now := time.Date(2026, 1, 2, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		time types.TimeString
	}{
		{name: "past date", date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time: types.TimeString("10:00")},
		{name: "today past time", date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), time: types.TimeString("14:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Date = tt.date
			req.Time = tt.time
			uc := newTestUseCase(&fakeSlotRepo{claimedID: 42}, &fakeBookingRepo{nextID: 7},
				&fakeScheduleRepo{days: fullWeekDays()}, now)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrTimeInPast)
		})
	}
}

func TestExecute_FutureDateEarlyTimeAllowed(t *testing.T) {
	// Время суток раньше текущего не мешает бронированию на будущую дату
	now := time.Date(2026, 1, 1, 14, 5, 0, 0, time.UTC)
	req := validRequest()
	req.Date = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	req.Time = types.TimeString("09:00")
	uc := newTestUseCase(&fakeSlotRepo{claimedID: 42}, &fakeBookingRepo{nextID: 7},
		&fakeScheduleRepo{days: fullWeekDays()}, now)

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
}

func TestValidateRequest_GridAlignment(t *testing.T) {
	tests := []struct {
		name    string
		time    types.TimeString
		wantErr error
	}{
		{name: "aligned to half hour", time: "10:30", wantErr: nil},
		{name: "aligned to full hour", time: "10:00", wantErr: nil},
		{name: "misaligned", time: "10:15", wantErr: ErrInvalidTimeSlot},
		{name: "unparseable", time: "99:99", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Time = tt.time

			err := validateRequest(req)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "empty slug", mutate: func(r *Request) { r.Slug = "" }},
		{name: "empty customer name", mutate: func(r *Request) { r.CustomerName = "  " }},
		{name: "empty phone", mutate: func(r *Request) { r.CustomerPhone = "" }},
		{name: "bad time format", mutate: func(r *Request) { r.Time = types.TimeString("25:99") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			uc := newTestUseCase(&fakeSlotRepo{claimedID: 42}, &fakeBookingRepo{nextID: 7},
				&fakeScheduleRepo{days: fullWeekDays()}, now)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
