package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointify/appointment-service/internal/domain"
	bookingStorage "github.com/appointify/appointment-service/internal/infra/storage/booking"
	slotStorage "github.com/appointify/appointment-service/internal/infra/storage/slot"
	"github.com/appointify/appointment-service/internal/service/bookings/models"
	"github.com/appointify/appointment-service/pkg/types"
)

type fakeBookingRepo struct {
	booking       *domain.Booking
	bookings      []*domain.Booking
	getErr        error
	listErr       error
	updateErr     error
	updatedStatus *domain.BookingStatus
	lastFilter    domain.BookingsFilter
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.bookings, f.listErr
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedStatus = &status
	return nil
}

type fakeSlotRepo struct {
	claimErr    error
	claimedIDs  []int64
	releasedIDs []int64
}

func (f *fakeSlotRepo) ClaimByID(_ context.Context, id int64) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimedIDs = append(f.claimedIDs, id)
	return nil
}

func (f *fakeSlotRepo) Release(_ context.Context, id int64) error {
	f.releasedIDs = append(f.releasedIDs, id)
	return nil
}

type fakeBusinessRepo struct {
	business *domain.Business
	err      error
}

func (f *fakeBusinessRepo) GetByOwner(_ context.Context, _ int64) (*domain.Business, error) {
	return f.business, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBusiness() *domain.Business {
	return &domain.Business{ID: 1, OwnerUserID: 100, Name: "Glow Studio", Slug: "glow-studio"}
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            7,
		BusinessID:    1,
		SlotID:        42,
		CustomerName:  "Anna",
		CustomerPhone: "+79990001122",
		Status:        status,
		SlotDate:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		SlotTime:      types.TimeString("10:00"),
	}
}

func newTestService(bookingRepo *fakeBookingRepo, slotRepo *fakeSlotRepo) *Service {
	return NewService(bookingRepo, slotRepo, &fakeBusinessRepo{business: testBusiness()}, fakeTxManager{}, noopLogger{})
}

func TestGetByID_Success(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{booking: testBooking(domain.StatusPending)}, &fakeSlotRepo{})

	resp, err := svc.GetByID(context.Background(), 7, 100)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2026-01-02", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "pending", resp.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{getErr: bookingStorage.ErrBookingNotFound}, &fakeSlotRepo{})

	_, err := svc.GetByID(context.Background(), 7, 100)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_ForeignBusiness(t *testing.T) {
	booking := testBooking(domain.StatusPending)
	booking.BusinessID = 2
	svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeSlotRepo{})

	_, err := svc.GetByID(context.Background(), 7, 100)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBusinessBookings_ExcludesCancelledByDefault(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{testBooking(domain.StatusPending)}}
	svc := newTestService(repo, &fakeSlotRepo{})

	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{UserID: 100})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.False(t, repo.lastFilter.IncludeCancelled)
	assert.Equal(t, int64(1), repo.lastFilter.BusinessID)
}

func TestGetBusinessBookings_StatusFilter(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeSlotRepo{})
	status := "completed"

	_, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID: 100,
		Status: &status,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusCompleted, *repo.lastFilter.Status)
}

func TestGetBusinessBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeSlotRepo{})
	status := "archived"

	_, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID: 100,
		Status: &status,
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_CancelReleasesSlot(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	slotRepo := &fakeSlotRepo{}
	svc := newTestService(repo, slotRepo)

	resp, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{UserID: 100, Status: "cancelled"})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, []int64{42}, slotRepo.releasedIDs)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCancelled, *repo.updatedStatus)
}

func TestUpdateStatus_CompleteKeepsSlot(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	slotRepo := &fakeSlotRepo{}
	svc := newTestService(repo, slotRepo)

	resp, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{UserID: 100, Status: "completed"})

	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Empty(t, slotRepo.releasedIDs)
	assert.Empty(t, slotRepo.claimedIDs)
}

func TestUpdateStatus_CompletedCanBeCancelled(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusCompleted)}
	slotRepo := &fakeSlotRepo{}
	svc := newTestService(repo, slotRepo)

	resp, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{UserID: 100, Status: "cancelled"})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, []int64{42}, slotRepo.releasedIDs)
}

func TestUpdateStatus_RestoreReclaimsSlot(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusCancelled)}
	slotRepo := &fakeSlotRepo{}
	svc := newTestService(repo, slotRepo)

	resp, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{UserID: 100, Status: "pending"})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, []int64{42}, slotRepo.claimedIDs)
}

func TestUpdateStatus_RestoreFailsWhenSlotTaken(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusCancelled)}
	slotRepo := &fakeSlotRepo{claimErr: slotStorage.ErrSlotTaken}
	svc := newTestService(repo, slotRepo)

	_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{UserID: 100, Status: "pending"})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Nil(t, repo.updatedStatus)
}

func TestUpdateStatus_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current domain.BookingStatus
		next    string
	}{
		{name: "completed to pending", current: domain.StatusCompleted, next: "pending"},
		{name: "cancelled to completed", current: domain.StatusCancelled, next: "completed"},
		{name: "pending to pending", current: domain.StatusPending, next: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{booking: testBooking(tt.current)}
			svc := newTestService(repo, &fakeSlotRepo{})

			_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{UserID: 100, Status: tt.next})

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Nil(t, repo.updatedStatus)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{booking: testBooking(domain.StatusPending)}, &fakeSlotRepo{})

	_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{UserID: 100, Status: "archived"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}
