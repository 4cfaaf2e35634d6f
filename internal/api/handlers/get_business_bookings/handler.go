package get_business_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/appointify/appointment-service/internal/api/handlers"
	"github.com/appointify/appointment-service/internal/api/middleware"
	"github.com/appointify/appointment-service/internal/domain"
	bookingsService "github.com/appointify/appointment-service/internal/service/bookings"
	bookingsModels "github.com/appointify/appointment-service/internal/service/bookings/models"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus    = "некорректный статус бронирования"
	msgBusinessNotFound = "бизнес не найден"
	msgUnauthorized     = "требуется аутентификация"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/business/bookings?date={date}&status={status}&includeCancelled={bool}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()
	req := &bookingsModels.GetBusinessBookingsRequest{
		UserID:           userID,
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /business/bookings - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.GetBusinessBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidStatus):
			h.logger.Warn("GET /business/bookings - Invalid status: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookingsService.ErrBusinessNotFound):
			h.logger.Warn("GET /business/bookings - Business not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /business/bookings - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
