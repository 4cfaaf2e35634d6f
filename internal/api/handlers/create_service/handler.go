package create_service

import (
	"errors"
	"net/http"

	"github.com/appointify/appointment-service/internal/api/handlers"
	"github.com/appointify/appointment-service/internal/api/middleware"
	catalogService "github.com/appointify/appointment-service/internal/service/catalog"
	catalogModels "github.com/appointify/appointment-service/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidService     = "некорректные данные услуги"
	msgBusinessNotFound   = "бизнес не найден"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/business/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req catalogModels.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /business/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrInvalidInput):
			h.logger.Warn("POST /business/services - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, catalogService.ErrBusinessNotFound):
			h.logger.Warn("POST /business/services - Business not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("POST /business/services - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /business/services - Service created: service_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
