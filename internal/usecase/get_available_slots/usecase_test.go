package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointify/appointment-service/internal/domain"
	businessStorage "github.com/appointify/appointment-service/internal/infra/storage/business"
	serviceStorage "github.com/appointify/appointment-service/internal/infra/storage/service"
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
	bookedTimes []types.TimeString
}

func (f *fakeSlotRepo) GetBookedTimes(_ context.Context, _ int64, _ time.Time) ([]types.TimeString, error) {
	return f.bookedTimes, nil
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

func newTestUseCase(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	now time.Time,
) *UseCase {
	uc := NewUseCase(businessRepo, serviceRepo, scheduleRepo, slotRepo, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{service: testService()},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{bookedTimes: []types.TimeString{"10:00"}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Slug:      "glow-studio",
		ServiceID: 10,
		Date:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.BusinessID)
	// 16 слотов минус занятый 10:00
	require.Len(t, resp.Slots, 15)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, types.TimeString("10:00"), slot.StartTime)
	}
}

func TestExecute_HolidayReturnsEmpty(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	holidayDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{service: testService()},
		&fakeScheduleRepo{
			days:     fullWeekDays(),
			holidays: []domain.Holiday{{BusinessID: 1, Date: holidayDate, Name: "New Year"}},
		},
		&fakeSlotRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Slug:      "glow-studio",
		ServiceID: 10,
		Date:      holidayDate,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{service: testService()},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Slug:      "glow-studio",
		ServiceID: 10,
		Date:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayFiltersPastTimes(t *testing.T) {
	now := time.Date(2026, 1, 2, 14, 5, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{service: testService()},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		Slug:      "glow-studio",
		ServiceID: 10,
		Date:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	// Остались только 14:30..16:30
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, types.TimeString("14:30"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("16:30"), resp.Slots[4].StartTime)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBusinessRepo{err: businessStorage.ErrBusinessNotFound},
		&fakeServiceRepo{service: testService()},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		Slug:      "missing",
		ServiceID: 10,
		Date:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_PublicDisabledLooksLikeNotFound(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	biz := testBusiness()
	biz.IsPublicEnabled = false
	uc := newTestUseCase(
		&fakeBusinessRepo{business: biz},
		&fakeServiceRepo{service: testService()},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		Slug:      "glow-studio",
		ServiceID: 10,
		Date:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ServiceFromAnotherBusiness(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	svc := testService()
	svc.BusinessID = 2
	uc := newTestUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{service: svc},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		Slug:      "glow-studio",
		ServiceID: 10,
		Date:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	svc := testService()
	svc.IsActive = false
	uc := newTestUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{err: nil, service: svc},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		Slug:      "glow-studio",
		ServiceID: 10,
		Date:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceStorageNotFound(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{err: serviceStorage.ErrServiceNotFound},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		Slug:      "glow-studio",
		ServiceID: 10,
		Date:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ValidationError(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBusinessRepo{business: testBusiness()},
		&fakeServiceRepo{service: testService()},
		&fakeScheduleRepo{days: fullWeekDays()},
		&fakeSlotRepo{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{Slug: "", ServiceID: 10, Date: now})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
