package delete_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/appointify/appointment-service/internal/api/handlers"
	"github.com/appointify/appointment-service/internal/api/middleware"
	catalogService "github.com/appointify/appointment-service/internal/service/catalog"
)

const (
	msgInvalidServiceID = "некорректный идентификатор услуги"
	msgServiceNotFound  = "услуга не найдена"
	msgBusinessNotFound = "бизнес не найден"
	msgUnauthorized     = "требуется аутентификация"
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

// Handle DELETE /api/v1/business/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID, userID); err != nil {
		switch {
		case errors.Is(err, catalogService.ErrServiceNotFound):
			h.logger.Warn("DELETE /business/services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalogService.ErrBusinessNotFound):
			h.logger.Warn("DELETE /business/services/{id} - Business not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("DELETE /business/services/{id} - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /business/services/{id} - Service deleted: service_id=%d, user_id=%d", serviceID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
