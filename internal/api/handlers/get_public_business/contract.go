package get_public_business

import (
	"context"

	publicModels "github.com/appointify/appointment-service/internal/service/public/models"
)

type PublicService interface {
	GetCard(ctx context.Context, slug string) (*publicModels.BusinessCardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
