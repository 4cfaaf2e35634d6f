package get_booked_dates

import (
	"context"

	publicModels "github.com/appointify/appointment-service/internal/service/public/models"
)

type PublicService interface {
	GetBookedDates(ctx context.Context, slug string, year int, month int) (*publicModels.BookedDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
