package onboard_business

import (
	"context"

	businessModels "github.com/appointify/appointment-service/internal/service/business/models"
)

type BusinessService interface {
	Onboard(ctx context.Context, req *businessModels.OnboardRequest) (*businessModels.BusinessResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
