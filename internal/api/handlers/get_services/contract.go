package get_services

import (
	"context"

	catalogModels "github.com/appointify/appointment-service/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, userID int64) (*catalogModels.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
