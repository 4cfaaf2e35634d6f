package set_public_enabled

import (
	"context"

	businessModels "github.com/appointify/appointment-service/internal/service/business/models"
)

type BusinessService interface {
	SetPublicEnabled(ctx context.Context, req *businessModels.SetPublicEnabledRequest) (*businessModels.BusinessResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
