package public

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/internal/infra/cache/publicbusiness"
	businessStorage "github.com/appointify/appointment-service/internal/infra/storage/business"
	"github.com/appointify/appointment-service/pkg/types"
)

type fakeBusinessRepo struct {
	business *domain.Business
	err      error
	calls    int
}

func (f *fakeBusinessRepo) GetBySlug(_ context.Context, _ string) (*domain.Business, error) {
	f.calls++
	return f.business, f.err
}

type fakeServiceRepo struct {
	services []*domain.Service
}

func (f *fakeServiceRepo) ListByBusiness(_ context.Context, _ int64, onlyActive bool) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(f.services))
	for _, s := range f.services {
		if onlyActive && !s.IsActive {
			continue
		}
		result = append(result, s)
	}
	return result, nil
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
	dates []time.Time
}

func (f *fakeSlotRepo) GetBookedDates(_ context.Context, _ int64, _, _ time.Time) ([]time.Time, error) {
	return f.dates, nil
}

type fakeCardCache struct {
	card    *publicbusiness.Card
	setKeys []string
}

func (f *fakeCardCache) Get(_ context.Context, _ string) (*publicbusiness.Card, error) {
	if f.card == nil {
		return nil, publicbusiness.ErrCacheMiss
	}
	return f.card, nil
}

func (f *fakeCardCache) Set(_ context.Context, slug string, card *publicbusiness.Card) error {
	f.setKeys = append(f.setKeys, slug)
	f.card = card
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBusiness() *domain.Business {
	return &domain.Business{ID: 1, OwnerUserID: 100, Name: "Glow Studio", Slug: "glow-studio", IsPublicEnabled: true}
}

func newTestService(businessRepo *fakeBusinessRepo, cache *fakeCardCache) *Service {
	serviceRepo := &fakeServiceRepo{services: []*domain.Service{
		{ID: 10, BusinessID: 1, Name: "Haircut", DurationMinutes: 60, Price: 1500, IsActive: true},
		{ID: 11, BusinessID: 1, Name: "Retired", DurationMinutes: 30, Price: 500, IsActive: false},
	}}
	scheduleRepo := &fakeScheduleRepo{
		days: []domain.DaySchedule{
			{BusinessID: 1, DayOfWeek: time.Monday, IsOpen: true, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("17:00")},
		},
		holidays: []domain.Holiday{
			{ID: 1, BusinessID: 1, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Name: "New Year"},
		},
	}
	return NewService(businessRepo, serviceRepo, scheduleRepo, &fakeSlotRepo{}, cache, noopLogger{})
}

func TestGetCard_CacheMissBuildsAndCaches(t *testing.T) {
	businessRepo := &fakeBusinessRepo{business: testBusiness()}
	cache := &fakeCardCache{}
	svc := newTestService(businessRepo, cache)

	resp, err := svc.GetCard(context.Background(), "glow-studio")

	require.NoError(t, err)
	assert.Equal(t, "Glow Studio", resp.Name)
	// Только активные услуги попадают в карточку
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
	assert.Equal(t, []string{"2026-01-01"}, resp.Holidays)
	assert.Equal(t, []string{"glow-studio"}, cache.setKeys)
}

func TestGetCard_CacheHitSkipsDB(t *testing.T) {
	businessRepo := &fakeBusinessRepo{business: testBusiness()}
	cache := &fakeCardCache{card: &publicbusiness.Card{
		Business: *testBusiness(),
		Services: []domain.Service{{ID: 10, Name: "Haircut", DurationMinutes: 60, Price: 1500}},
	}}
	svc := newTestService(businessRepo, cache)

	resp, err := svc.GetCard(context.Background(), "glow-studio")

	require.NoError(t, err)
	assert.Equal(t, "Glow Studio", resp.Name)
	assert.Zero(t, businessRepo.calls)
}

func TestGetCard_DisabledPublicPage(t *testing.T) {
	biz := testBusiness()
	biz.IsPublicEnabled = false
	svc := newTestService(&fakeBusinessRepo{business: biz}, &fakeCardCache{})

	_, err := svc.GetCard(context.Background(), "glow-studio")

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestGetBookedDates_Success(t *testing.T) {
	businessRepo := &fakeBusinessRepo{business: testBusiness()}
	serviceRepo := &fakeServiceRepo{}
	scheduleRepo := &fakeScheduleRepo{}
	slotRepo := &fakeSlotRepo{dates: []time.Time{
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}}
	svc := NewService(businessRepo, serviceRepo, scheduleRepo, slotRepo, &fakeCardCache{}, noopLogger{})

	resp, err := svc.GetBookedDates(context.Background(), "glow-studio", 2026, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-02", "2026-01-15"}, resp.Dates)
}

func TestGetBookedDates_InvalidMonth(t *testing.T) {
	svc := newTestService(&fakeBusinessRepo{business: testBusiness()}, &fakeCardCache{})

	_, err := svc.GetBookedDates(context.Background(), "glow-studio", 2026, 13)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBookedDates_UnknownBusiness(t *testing.T) {
	svc := newTestService(&fakeBusinessRepo{err: businessStorage.ErrBusinessNotFound}, &fakeCardCache{})

	_, err := svc.GetBookedDates(context.Background(), "missing", 2026, 1)

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
