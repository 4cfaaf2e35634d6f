package get_business_bookings

import (
	"context"

	bookingsModels "github.com/appointify/appointment-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetBusinessBookings(ctx context.Context, req *bookingsModels.GetBusinessBookingsRequest) (*bookingsModels.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
