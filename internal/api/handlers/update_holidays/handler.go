package update_holidays

import (
	"errors"
	"net/http"

	"github.com/appointify/appointment-service/internal/api/handlers"
	"github.com/appointify/appointment-service/internal/api/middleware"
	scheduleService "github.com/appointify/appointment-service/internal/service/schedule"
	scheduleModels "github.com/appointify/appointment-service/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHolidays    = "некорректный список праздников"
	msgBusinessNotFound   = "бизнес не найден"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/business/holidays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req scheduleModels.ReplaceHolidaysRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /business/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.ReplaceHolidays(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidHoliday):
			h.logger.Warn("PUT /business/holidays - Invalid holidays: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidHolidays)

		case errors.Is(err, scheduleService.ErrBusinessNotFound):
			h.logger.Warn("PUT /business/holidays - Business not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("PUT /business/holidays - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /business/holidays - Holidays replaced: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
