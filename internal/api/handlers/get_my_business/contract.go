package get_my_business

import (
	"context"

	businessModels "github.com/appointify/appointment-service/internal/service/business/models"
)

type BusinessService interface {
	GetMy(ctx context.Context, userID int64) (*businessModels.BusinessResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
