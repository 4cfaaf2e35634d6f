package get_booked_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/appointify/appointment-service/internal/api/handlers"
	publicService "github.com/appointify/appointment-service/internal/service/public"
)

const (
	msgBusinessNotFound = "страница бронирования не найдена"
	msgInvalidPeriod    = "некорректные параметры year/month"
)

type Handler struct {
	service PublicService
	logger  Logger
}

func NewHandler(service PublicService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/businesses/{slug}/booked-dates?year={year}&month={month}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		h.logger.Warn("GET /booked-dates - Invalid year: %s", query.Get("year"))
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		h.logger.Warn("GET /booked-dates - Invalid month: %s", query.Get("month"))
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.GetBookedDates(r.Context(), slug, year, month)
	if err != nil {
		switch {
		case errors.Is(err, publicService.ErrBusinessNotFound):
			h.logger.Warn("GET /booked-dates - Business not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, publicService.ErrInvalidInput):
			h.logger.Warn("GET /booked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /booked-dates - Failed: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
