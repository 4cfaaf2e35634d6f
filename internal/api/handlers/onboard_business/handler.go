package onboard_business

import (
	"errors"
	"net/http"

	"github.com/appointify/appointment-service/internal/api/handlers"
	"github.com/appointify/appointment-service/internal/api/middleware"
	businessService "github.com/appointify/appointment-service/internal/service/business"
	businessModels "github.com/appointify/appointment-service/internal/service/business/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidName        = "некорректное название бизнеса"
	msgSlugTaken          = "не удалось сгенерировать адрес страницы, попробуйте еще раз"
	msgUnauthorized       = "требуется аутентификация"
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

// Handle POST /api/v1/business
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req businessModels.OnboardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /business - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Onboard(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, businessService.ErrInvalidInput):
			h.logger.Warn("POST /business - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidName)

		case errors.Is(err, businessService.ErrSlugTaken):
			h.logger.Warn("POST /business - Slug collision: user_id=%d", userID)
			handlers.RespondConflict(w, msgSlugTaken)

		default:
			h.logger.Error("POST /business - Failed to onboard: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /business - Business ready: business_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
