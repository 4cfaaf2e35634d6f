package get_my_business

import (
	"errors"
	"net/http"

	"github.com/appointify/appointment-service/internal/api/handlers"
	"github.com/appointify/appointment-service/internal/api/middleware"
	businessService "github.com/appointify/appointment-service/internal/service/business"
)

const (
	msgBusinessNotFound = "бизнес не найден"
	msgUnauthorized     = "требуется аутентификация"
)

type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/business
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetMy(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, businessService.ErrBusinessNotFound):
			h.logger.Warn("GET /business - Business not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /business - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
