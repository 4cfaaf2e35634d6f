package update_holidays

import (
	"context"

	scheduleModels "github.com/appointify/appointment-service/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceHolidays(ctx context.Context, req *scheduleModels.ReplaceHolidaysRequest) (*scheduleModels.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
