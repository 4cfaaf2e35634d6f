package get_schedule

import (
	"context"

	scheduleModels "github.com/appointify/appointment-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, userID int64) (*scheduleModels.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
